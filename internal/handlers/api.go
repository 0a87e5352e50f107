package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"barrierfree/internal/catalog"
	"barrierfree/internal/middleware"
	"barrierfree/internal/models"
)

// API serves the catalog as JSON.
type API struct {
	catalog *catalog.Service
}

// NewAPI creates the JSON handler group.
func NewAPI(svc *catalog.Service) *API {
	return &API{catalog: svc}
}

// presentationResponse is the JSON shape of a presentation lookup.
type presentationResponse struct {
	VideoID    int    `json:"video_id"`
	VideoTitle string `json:"video_title"`
	models.Presentation
}

// errorResponse is the body of every JSON error.
type errorResponse struct {
	Error string `json:"error"`
}

// Search returns videos and documents matching ?q= and ?category=.
func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	res, err := a.catalog.Search(r.Context(), catalog.Query{
		Text:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Categories returns the category choices, "All" first.
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := a.catalog.Categories(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": cats})
}

// Video returns one video by id.
func (a *API) Video(w http.ResponseWriter, r *http.Request) {
	v, err := a.catalog.Video(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Document returns one document by id.
func (a *API) Document(w http.ResponseWriter, r *http.Request) {
	d, err := a.catalog.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Presentation returns the presentation attached to a video.
func (a *API) Presentation(w http.ResponseWriter, r *http.Request) {
	v, err := a.catalog.Presentation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presentationResponse{
		VideoID:      v.ID,
		VideoTitle:   v.Title,
		Presentation: *v.Presentation,
	})
}

// fail maps catalog errors to JSON status codes.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: catalog.ErrNotFound.Error()})
		return
	}
	slog.Error("api request failed",
		"error", err,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromCtx(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode json response", "error", err)
	}
}
