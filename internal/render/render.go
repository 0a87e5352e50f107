// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// It supports full-page and HTMX partial rendering, detecting the request
// type via the HX-Request and HX-Target headers.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"barrierfree/internal/download"
	"barrierfree/internal/markdown"
	"barrierfree/internal/middleware"
	"barrierfree/internal/slug"
)

//go:embed templates/public/*.html
var publicFS embed.FS

// PageData holds all data passed to public templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active navigation entry ("home", "resources", ...)
	CSRFToken string         // CSRF token for forms
	Site      Site           // Footer and contact details
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Site carries details shown on every page.
type Site struct {
	Email string
	Phone string
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "info"
	Message string
}

// fragments lists the blocks an HTMX request may target directly. Any
// other target receives the "content" block.
var fragments = map[string]bool{
	"results": true,
	"content": true,
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
	site      Site
}

// New creates a Renderer by parsing all public templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, pages load TailwindCSS from its CDN; otherwise they
// reference the compiled stylesheet under /static.
func New(devMode bool, site Site) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		site:      site,
		funcMap: template.FuncMap{
			"isDev": func() bool {
				return devMode
			},
			"markdown":   markdown.Render,
			"anchor":     slug.Anchor,
			"driveEmbed": download.DriveEmbedURL,
			// activeClass highlights the current navigation entry.
			"activeClass": func(current, target string) string {
				if current == target {
					return "nav-link active"
				}
				return "nav-link"
			},
		},
	}

	pages, err := fs.Glob(publicFS, "templates/public/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			publicFS, "templates/public/base.html", page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Fragment returns the block an HTMX request asks for, or "" when the
// request wants the full page. History restores after a cache miss need
// the whole document.
func Fragment(r *http.Request) string {
	if r.Header.Get("HX-Request") != "true" || r.Header.Get("HX-History-Restore-Request") == "true" {
		return ""
	}
	if target := r.Header.Get("HX-Target"); fragments[target] {
		return target
	}
	return "content"
}

// Render executes a page into memory, honouring HTMX fragment requests.
// The result can be cached because it does not depend on the visitor.
func (rn *Renderer) Render(r *http.Request, name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	data.Site = rn.site
	if data.Data == nil {
		data.Data = map[string]any{}
	}

	execName := "base.html"
	if frag := Fragment(r); frag != "" {
		execName = frag
		if tmpl.Lookup(frag) == nil {
			execName = "content"
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return nil, fmt.Errorf("execute %s/%s: %w", name, execName, err)
	}
	return buf.Bytes(), nil
}

// Page renders a page with the given status code. Pages with forms get
// the CSRF token from the request context, so Page output must not be
// cached; use Render for cacheable pages.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	body, err := rn.Render(r, name, data)
	if err != nil {
		slog.Error("render page failed", "template", name, "error", err,
			"request_id", middleware.RequestIDFromCtx(r.Context()))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	Write(w, status, body)
}

// Write sends pre-rendered HTML.
func Write(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", "HX-Request, HX-Target, HX-History-Restore-Request")
	w.WriteHeader(status)
	w.Write(body)
}
