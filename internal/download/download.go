// Package download builds the external URLs that document and presentation
// download controls redirect to. The site never transfers file bytes itself.
package download

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrNoFile is returned when a record has no file to download.
var ErrNoFile = errors.New("no downloadable file")

// Resolver turns an opaque file identifier into a URL the browser can fetch.
type Resolver interface {
	URL(ctx context.Context, fileID string) (string, error)
}

// driveBase is the Google Drive direct-download endpoint.
const driveBase = "https://drive.google.com/uc"

// Drive resolves identifiers as Google Drive file ids.
type Drive struct{}

// URL returns the Drive direct-download link for fileID.
func (Drive) URL(_ context.Context, fileID string) (string, error) {
	if fileID == "" {
		return "", ErrNoFile
	}
	return driveBase + "?export=download&id=" + url.QueryEscape(fileID), nil
}

// DriveEmbedURL returns the Drive preview URL used to embed a hosted video.
func DriveEmbedURL(fileID string) string {
	return "https://drive.google.com/file/d/" + url.PathEscape(fileID) + "/preview"
}

// Presigner is the part of the storage client the S3 resolver needs.
type Presigner interface {
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// DefaultExpiry is how long an S3 download link stays valid.
const DefaultExpiry = 15 * time.Minute

// S3 resolves identifiers as objects under downloads/ in a private bucket.
type S3 struct {
	presigner Presigner
	expiry    time.Duration
}

// NewS3 creates an S3 resolver. A zero expiry means DefaultExpiry.
func NewS3(p Presigner, expiry time.Duration) *S3 {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &S3{presigner: p, expiry: expiry}
}

// ObjectKey returns the bucket key holding fileID.
func ObjectKey(fileID string) string {
	return "downloads/" + fileID
}

// URL returns a presigned GET URL for fileID.
func (s *S3) URL(ctx context.Context, fileID string) (string, error) {
	if fileID == "" {
		return "", ErrNoFile
	}
	u, err := s.presigner.PresignedURL(ctx, ObjectKey(fileID), s.expiry)
	if err != nil {
		return "", fmt.Errorf("resolve download %s: %w", fileID, err)
	}
	return u, nil
}
