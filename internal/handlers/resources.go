package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"barrierfree/internal/cache"
	"barrierfree/internal/catalog"
	"barrierfree/internal/render"
)

// Resource tabs on the listing page.
const (
	tabVideos    = "videos"
	tabDocuments = "documents"
)

// normalizeTab maps any unknown tab to the videos tab.
func normalizeTab(tab string) string {
	if tab == tabDocuments {
		return tabDocuments
	}
	return tabVideos
}

// Resources renders the searchable listing. The tab comes from the query.
func (p *Public) Resources(w http.ResponseWriter, r *http.Request) {
	p.resources(w, r, r.URL.Query().Get("tab"))
}

// Videos renders the listing with the videos tab selected.
func (p *Public) Videos(w http.ResponseWriter, r *http.Request) {
	p.resources(w, r, tabVideos)
}

// Documents renders the listing with the documents tab selected.
func (p *Public) Documents(w http.ResponseWriter, r *http.Request) {
	p.resources(w, r, tabDocuments)
}

func (p *Public) resources(w http.ResponseWriter, r *http.Request, tab string) {
	tab = normalizeTab(tab)
	q := catalog.Query{
		Text:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}.Normalized()

	// Only the parameters that change the output take part in the key.
	key := cache.ResourcesKey(r.URL.Path, url.Values{
		"q":        {q.Text},
		"category": {q.Category},
		"tab":      {tab},
	})

	p.serveCached(w, r, key, "resources", "", func(ctx context.Context) (*render.PageData, error) {
		res, err := p.catalog.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		return &render.PageData{
			Title:   "Resources",
			Section: "resources",
			Data: map[string]any{
				"Results": res,
				"Tab":     tab,
			},
		}, nil
	})
}

// Video renders a video detail page.
func (p *Public) Video(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p.serveCached(w, r, cache.DetailKey("videos", id), "video", "video", func(ctx context.Context) (*render.PageData, error) {
		v, err := p.catalog.Video(ctx, id)
		if err != nil {
			return nil, err
		}
		return &render.PageData{
			Title:   v.Title,
			Section: "resources",
			Data:    map[string]any{"Video": v},
		}, nil
	})
}

// Document renders a document detail page.
func (p *Public) Document(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p.serveCached(w, r, cache.DetailKey("documents", id), "document", "document", func(ctx context.Context) (*render.PageData, error) {
		d, err := p.catalog.Document(ctx, id)
		if err != nil {
			return nil, err
		}
		return &render.PageData{
			Title:   d.Title,
			Section: "resources",
			Data:    map[string]any{"Document": d},
		}, nil
	})
}

// Presentation renders the presentation attached to a video.
func (p *Public) Presentation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p.serveCached(w, r, cache.DetailKey("presentations", id), "presentation", "presentation", func(ctx context.Context) (*render.PageData, error) {
		v, err := p.catalog.Presentation(ctx, id)
		if err != nil {
			return nil, err
		}
		return &render.PageData{
			Title:   v.Presentation.Title,
			Section: "resources",
			Data:    map[string]any{"Video": v},
		}, nil
	})
}

// DocumentDownload redirects to the hosted copy of a document.
func (p *Public) DocumentDownload(w http.ResponseWriter, r *http.Request) {
	d, err := p.catalog.Document(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) || (err == nil && !d.Downloadable()) {
		p.notFound(w, r, "document")
		return
	}
	if err != nil {
		p.serverError(w, r, "lookup document", err)
		return
	}
	p.redirectDownload(w, r, d.DownloadID)
}

// PresentationDownload redirects to the hosted copy of a presentation.
func (p *Public) PresentationDownload(w http.ResponseWriter, r *http.Request) {
	v, err := p.catalog.Presentation(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) || (err == nil && !v.Presentation.Downloadable()) {
		p.notFound(w, r, "presentation")
		return
	}
	if err != nil {
		p.serverError(w, r, "lookup presentation", err)
		return
	}
	p.redirectDownload(w, r, v.Presentation.DownloadID)
}

func (p *Public) redirectDownload(w http.ResponseWriter, r *http.Request, fileID string) {
	target, err := p.downloads.URL(r.Context(), fileID)
	if err != nil {
		p.serverError(w, r, "resolve download", err)
		return
	}
	// The target may be a short-lived presigned URL.
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, target, http.StatusFound)
}
