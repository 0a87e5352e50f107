package catalog

import (
	"context"
	"fmt"

	"barrierfree/internal/models"
)

// Query is a catalog search request as entered by a visitor.
type Query struct {
	Text     string `json:"q"`
	Category string `json:"category"`
}

// Normalized returns q with an empty category replaced by AllCategories.
func (q Query) Normalized() Query {
	if q.Category == "" {
		q.Category = AllCategories
	}
	return q
}

// Results is the outcome of a search across both resource kinds.
type Results struct {
	Query      Query             `json:"query"`
	Videos     []models.Video    `json:"videos"`
	Documents  []models.Document `json:"documents"`
	Categories []string          `json:"categories"`
}

// Empty reports whether neither kind matched.
func (r *Results) Empty() bool {
	return len(r.Videos) == 0 && len(r.Documents) == 0
}

// Service answers search and lookup requests against a Source.
type Service struct {
	src Source
}

// NewService creates a Service reading from src.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// Search filters both kinds with the same query and returns the category
// choices derived from the unfiltered catalog.
func (s *Service) Search(ctx context.Context, q Query) (*Results, error) {
	q = q.Normalized()

	videos, err := s.src.Videos(ctx)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	documents, err := s.src.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	return &Results{
		Query:      q,
		Videos:     Filter(videos, q.Text, q.Category),
		Documents:  Filter(documents, q.Text, q.Category),
		Categories: Categories(Labels(videos), Labels(documents)),
	}, nil
}

// Categories returns the filter choices for the whole catalog.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	videos, err := s.src.Videos(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	documents, err := s.src.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return Categories(Labels(videos), Labels(documents)), nil
}

// Featured returns up to n videos in catalog order, for the home page.
func (s *Service) Featured(ctx context.Context, n int) ([]models.Video, error) {
	videos, err := s.src.Videos(ctx)
	if err != nil {
		return nil, fmt.Errorf("featured videos: %w", err)
	}
	n = max(n, 0)
	if len(videos) > n {
		videos = videos[:n]
	}
	return videos, nil
}

// Video looks up a video by a raw identifier.
func (s *Service) Video(ctx context.Context, raw string) (*models.Video, error) {
	videos, err := s.src.Videos(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup video: %w", err)
	}
	v, err := Lookup(videos, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Document looks up a document by a raw identifier.
func (s *Service) Document(ctx context.Context, raw string) (*models.Document, error) {
	documents, err := s.src.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup document: %w", err)
	}
	d, err := Lookup(documents, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Presentation looks up the video a presentation belongs to. A video
// without a presentation is reported as ErrNotFound.
func (s *Service) Presentation(ctx context.Context, raw string) (*models.Video, error) {
	v, err := s.Video(ctx, raw)
	if err != nil {
		return nil, err
	}
	if !v.HasPresentation() {
		return nil, ErrNotFound
	}
	return v, nil
}
