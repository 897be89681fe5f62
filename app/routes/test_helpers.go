package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"lumina/app/assistant"
	"lumina/app/repositories"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	draft assistant.Draft
	err   error
}

func (g *fakeGenerator) Generate(ctx context.Context, topic, tone string) (assistant.Draft, error) {
	return g.draft, g.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestRouter(t *testing.T, gen *fakeGenerator) (*mux.Router, *repositories.MemoryRepository) {
	t.Helper()
	repo := repositories.NewMemoryRepository()
	if gen == nil {
		gen = &fakeGenerator{err: assistant.ErrNotConfigured}
	}
	return SetupAPIRoutes(repo, gen, discardLogger()), repo
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func validPostBody() map[string]string {
	return map[string]string{
		"title":    "Test Post",
		"excerpt":  "A short summary",
		"content":  "This is a test post with sufficient content",
		"author":   "Jane",
		"category": "Technology",
		"imageUrl": "https://example.com/a.png",
	}
}
