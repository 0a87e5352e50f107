// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"net/http"

	"barrierfree/internal/cache"
	"barrierfree/internal/catalog"
	"barrierfree/internal/download"
	"barrierfree/internal/markdown"
	"barrierfree/internal/middleware"
	"barrierfree/internal/render"
)

//go:embed content/about.md
var aboutMarkdown string

// featuredCount is how many videos the homepage highlights.
const featuredCount = 3

// Public groups handlers for the public-facing site. Pages that do not
// depend on the visitor are looked up in the Valkey page cache first and
// stored there after rendering.
type Public struct {
	catalog   *catalog.Service
	renderer  *render.Renderer
	pageCache *cache.PageCache
	downloads download.Resolver
}

// NewPublic creates a new Public handler group. pageCache may be nil when
// Valkey is not configured.
func NewPublic(svc *catalog.Service, renderer *render.Renderer, pageCache *cache.PageCache, downloads download.Resolver) *Public {
	return &Public{
		catalog:   svc,
		renderer:  renderer,
		pageCache: pageCache,
		downloads: downloads,
	}
}

// Offer is one entry of the homepage "What We Offer" section.
type Offer struct {
	Title       string
	Description string
}

var offers = []Offer{
	{"Educational Videos", "Short, practical videos on equity, neurodiversity and inclusive teaching."},
	{"Guides & Documents", "Frameworks and handbooks you can download and share with your team."},
	{"Presentations", "Ready-to-use slide decks and handouts that accompany every video."},
}

// Value is one entry of the about page values list.
type Value struct {
	Title       string
	Description string
}

var values = []Value{
	{"Inclusion", "Every learner deserves to see themselves in what they learn."},
	{"Accessibility", "Resources are designed to work for people of all abilities."},
	{"Equity", "We focus on what each learner needs, not on treating everyone the same."},
	{"Collaboration", "Educators, families and communities build inclusive schools together."},
}

// loader produces the data for a cacheable page.
type loader func(ctx context.Context) (*render.PageData, error)

// serveCached answers from the page cache when possible. On a miss it runs
// load, renders the named template and caches the result. A load returning
// catalog.ErrNotFound yields the notFound page for kind.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key, name, kind string, load loader) {
	ctx := r.Context()
	key = cache.FragmentKey(render.Fragment(r), key)

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		render.Write(w, http.StatusOK, cached)
		return
	}

	data, err := load(ctx)
	if errors.Is(err, catalog.ErrNotFound) {
		p.notFound(w, r, kind)
		return
	}
	if err != nil {
		p.serverError(w, r, "load page", err)
		return
	}

	body, err := p.renderer.Render(r, name, data)
	if err != nil {
		p.serverError(w, r, "render page", err)
		return
	}

	p.pageCache.Set(ctx, key, body)
	render.Write(w, http.StatusOK, body)
}

// Homepage renders the landing page with featured videos.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	p.serveCached(w, r, cache.HomepageKey(), "home", "", func(ctx context.Context) (*render.PageData, error) {
		featured, err := p.catalog.Featured(ctx, featuredCount)
		if err != nil {
			return nil, err
		}
		return &render.PageData{
			Section: "home",
			Data: map[string]any{
				"Offers":   offers,
				"Featured": featured,
			},
		}, nil
	})
}

// About renders the mission statement and values.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	p.serveCached(w, r, cache.AboutKey(), "about", "", func(context.Context) (*render.PageData, error) {
		return &render.PageData{
			Title:   "About",
			Section: "about",
			Data: map[string]any{
				"Mission": markdown.Render(aboutMarkdown),
				"Values":  values,
			},
		}, nil
	})
}

// notFoundKinds maps a resource kind to its not-found heading and noun.
var notFoundKinds = map[string][2]string{
	"video":        {"Video", "video"},
	"document":     {"Document", "document"},
	"presentation": {"Presentation", "presentation"},
	"":             {"Page", "page"},
}

// notFound renders the 404 page for a resource kind.
func (p *Public) notFound(w http.ResponseWriter, r *http.Request, kind string) {
	labels, ok := notFoundKinds[kind]
	if !ok {
		labels = notFoundKinds[""]
	}
	p.renderer.Page(w, r, http.StatusNotFound, "notfound", &render.PageData{
		Title:   labels[0] + " Not Found",
		Section: "resources",
		Data: map[string]any{
			"Kind": labels[0],
			"Noun": labels[1],
		},
	})
}

// NotFound is the router fallback for unknown paths.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.notFound(w, r, "")
}

// serverError logs err and answers 500.
func (p *Public) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op+" failed",
		"error", err,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromCtx(r.Context()),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
