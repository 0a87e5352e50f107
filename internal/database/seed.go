package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"barrierfree/internal/catalog"
)

// Seed copies the records of src into the videos and documents tables.
// It does nothing when either table already holds rows, so an edited
// database is never overwritten. Positions follow the source order.
func Seed(ctx context.Context, db *sql.DB, src catalog.Source) error {
	var count int
	if err := db.QueryRowContext(ctx,
		"SELECT (SELECT COUNT(*) FROM videos) + (SELECT COUNT(*) FROM documents)",
	).Scan(&count); err != nil {
		return fmt.Errorf("seed check resources: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	videos, err := src.Videos(ctx)
	if err != nil {
		return fmt.Errorf("seed read videos: %w", err)
	}
	documents, err := src.Documents(ctx)
	if err != nil {
		return fmt.Errorf("seed read documents: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i, v := range videos {
		var deck []byte
		if v.Presentation != nil {
			if deck, err = json.Marshal(v.Presentation); err != nil {
				return fmt.Errorf("seed encode presentation %d: %w", v.ID, err)
			}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO videos (id, title, description, category, thumbnail, published,
			                    duration, file_src, drive_id, presentation, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, v.ID, v.Title, v.Description, v.Category, v.Thumbnail, v.Published,
			v.Duration, v.Source.File, v.Source.DriveID, deck, i)
		if err != nil {
			return fmt.Errorf("seed insert video %d: %w", v.ID, err)
		}
	}

	for i, d := range documents {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (id, title, description, category, thumbnail, published,
			                       pages, download_id, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, d.ID, d.Title, d.Description, d.Category, d.Thumbnail, d.Published,
			d.Pages, d.DownloadID, i)
		if err != nil {
			return fmt.Errorf("seed insert document %d: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with catalog",
		"videos", len(videos),
		"documents", len(documents),
	)
	return nil
}
