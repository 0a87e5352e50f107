package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"barrierfree/internal/catalog"
	"barrierfree/internal/download"
	"barrierfree/internal/models"
	"barrierfree/internal/render"
)

// testEnv holds the handler groups wired to the embedded catalog.
type testEnv struct {
	Public *Public
	API    *API
}

var testSite = render.Site{Email: "team@example.org", Phone: "+40 700 000 000"}

// newTestEnv wires handlers to the embedded catalog with no page cache and
// Google Drive downloads.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	src, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return newTestEnvWithSource(t, src)
}

func newTestEnvWithSource(t *testing.T, src catalog.Source) *testEnv {
	t.Helper()

	renderer, err := render.New(false, testSite)
	if err != nil {
		t.Fatalf("create renderer: %v", err)
	}

	svc := catalog.NewService(src)
	return &testEnv{
		Public: NewPublic(svc, renderer, nil, download.Drive{}),
		API:    NewAPI(svc),
	}
}

// brokenSource fails every read, like an unreachable database.
type brokenSource struct{}

var errBroken = errors.New("connection refused")

func (brokenSource) Videos(context.Context) ([]models.Video, error)       { return nil, errBroken }
func (brokenSource) Documents(context.Context) ([]models.Document, error) { return nil, errBroken }

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
