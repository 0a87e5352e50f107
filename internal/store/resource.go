// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"barrierfree/internal/models"
)

// ResourceStore reads the catalog from PostgreSQL. It satisfies
// catalog.Source so the service layer does not know where records live.
type ResourceStore struct {
	db *sql.DB
}

// NewResourceStore returns a new ResourceStore.
func NewResourceStore(db *sql.DB) *ResourceStore {
	return &ResourceStore{db: db}
}

const videoColumns = `id, title, description, category, thumbnail, published,
	duration, file_src, drive_id, presentation`

const documentColumns = `id, title, description, category, thumbnail, published,
	pages, download_id`

// scanVideo scans a row into a Video, decoding the presentation JSONB.
func scanVideo(scanner interface{ Scan(...any) error }) (models.Video, error) {
	var (
		v    models.Video
		deck []byte
	)
	err := scanner.Scan(
		&v.ID, &v.Title, &v.Description, &v.Category, &v.Thumbnail, &v.Published,
		&v.Duration, &v.Source.File, &v.Source.DriveID, &deck,
	)
	if err != nil {
		return v, err
	}
	if len(deck) > 0 {
		v.Presentation = &models.Presentation{}
		if err := json.Unmarshal(deck, v.Presentation); err != nil {
			return v, fmt.Errorf("decode presentation for video %d: %w", v.ID, err)
		}
	}
	return v, nil
}

// Videos returns every video in catalog order.
func (s *ResourceStore) Videos(ctx context.Context) ([]models.Video, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+videoColumns+` FROM videos ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	items := []models.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// Documents returns every document in catalog order.
func (s *ResourceStore) Documents(ctx context.Context) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	items := []models.Document{}
	for rows.Next() {
		var d models.Document
		err := rows.Scan(
			&d.ID, &d.Title, &d.Description, &d.Category, &d.Thumbnail, &d.Published,
			&d.Pages, &d.DownloadID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// Counts returns how many videos and documents are stored.
func (s *ResourceStore) Counts(ctx context.Context) (videos, documents int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM videos), (SELECT COUNT(*) FROM documents)`,
	).Scan(&videos, &documents)
	if err != nil {
		return 0, 0, fmt.Errorf("count resources: %w", err)
	}
	return videos, documents, nil
}
