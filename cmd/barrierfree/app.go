package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"barrierfree/internal/cache"
	"barrierfree/internal/catalog"
	"barrierfree/internal/config"
	"barrierfree/internal/database"
	"barrierfree/internal/download"
	"barrierfree/internal/storage"
	"barrierfree/internal/store"
)

// seedSource returns the literal catalog definition: CATALOG_FILE when set,
// the embedded catalog otherwise.
func seedSource(cfg *config.Config) (*catalog.Static, error) {
	if cfg.CatalogFile != "" {
		src, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		slog.Info("catalog loaded from file", "path", cfg.CatalogFile)
		return src, nil
	}
	return catalog.Default()
}

// openDatabase connects to PostgreSQL and applies pending migrations.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// openCatalog returns the catalog source selected by CATALOG_SOURCE. The
// returned close function releases any database connection and is never nil.
// With the postgres source, seed fills empty tables from the literal
// definition first.
func openCatalog(ctx context.Context, cfg *config.Config, seed bool) (catalog.Source, func(), error) {
	if !cfg.UsesPostgres() {
		src, err := seedSource(cfg)
		if err != nil {
			return nil, func() {}, err
		}
		return src, func() {}, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, func() {}, err
	}
	closeDB := func() { db.Close() }

	if seed {
		src, err := seedSource(cfg)
		if err != nil {
			closeDB()
			return nil, func() {}, err
		}
		if err := database.Seed(ctx, db, src); err != nil {
			closeDB()
			return nil, func() {}, err
		}
	}

	return store.NewResourceStore(db), closeDB, nil
}

// openPageCache connects to Valkey when configured. A nil cache disables
// page caching.
func openPageCache(cfg *config.Config) (*cache.PageCache, func(), error) {
	if !cfg.CacheEnabled() {
		slog.Warn("valkey not configured, page cache disabled")
		return nil, func() {}, nil
	}

	client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return nil, func() {}, err
	}
	return cache.NewPageCache(client, cfg.PageCacheTTL), func() { client.Close() }, nil
}

// openStorage connects to S3-compatible storage. It returns nil when S3 is
// not configured.
func openStorage(cfg *config.Config) (*storage.Client, error) {
	if !cfg.S3Enabled() {
		return nil, nil
	}
	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3BucketPrivate)
	if err != nil {
		return nil, fmt.Errorf("init s3 storage: %w", err)
	}
	return client, nil
}

// downloadResolver picks presigned S3 links when storage is available and
// Google Drive links otherwise.
func downloadResolver(client *storage.Client) download.Resolver {
	if client == nil {
		return download.Drive{}
	}
	return download.NewS3(client, download.DefaultExpiry)
}
