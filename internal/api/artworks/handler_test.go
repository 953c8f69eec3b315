package artworks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"artpulse-app/internal/domain/works"
	"artpulse-app/internal/gallery"
	"artpulse-app/internal/infra/storage"
	"artpulse-app/internal/store"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) (*gin.Engine, *gallery.Gallery) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(storage.NewMemoryBackend(), []works.Artwork{
		{ID: "1", Title: "Neon Solitude", Artist: "Elena Vance", Description: "city lights", ImageURL: "https://img/1", CreatedAt: 2},
		{ID: "2", Title: "Golden Horizon", Artist: "Sophia Chen", Description: "sunset", ImageURL: "https://img/2", CreatedAt: 1},
	}, nil)
	g := gallery.New(st, nil, nil, gallery.Options{MaxImageBytes: 1 << 20}, nil)
	if _, err := g.Reload(context.Background()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	h := NewHandler(g, nil)
	r := gin.New()
	r.GET("/artworks", h.List)
	r.POST("/artworks", h.Create)
	return r, g
}

func TestListArtworks(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artworks", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Artworks []works.Artwork `json:"artworks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Artworks) != 2 || body.Artworks[0].ID != "1" {
		t.Fatalf("unexpected artworks: %+v", body.Artworks)
	}
	if !strings.Contains(w.Body.String(), `"imageUrl":"https://img/1"`) {
		t.Fatalf("expected camelCase fields, got %s", w.Body.String())
	}
}

func TestListArtworksSearch(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artworks?q=sunset", nil))

	var body struct {
		Artworks []works.Artwork `json:"artworks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Artworks) != 1 || body.Artworks[0].ID != "2" {
		t.Fatalf("unexpected search result: %+v", body.Artworks)
	}
}

func TestCreateArtwork(t *testing.T) {
	r, g := setupRouter(t)

	payload := `{"title":"Quiet Harbor","artist":"Ines Duarte","description":"Boats at dawn"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/artworks", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Artwork works.Artwork `json:"artwork"`
		View    string        `json:"view"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.View != "home" || body.Artwork.ID == "" {
		t.Fatalf("unexpected response: %+v", body)
	}
	if !strings.HasPrefix(body.Artwork.ImageURL, "https://picsum.photos/seed/") {
		t.Fatalf("expected placeholder image, got %q", body.Artwork.ImageURL)
	}

	snap := g.Snapshot()
	if len(snap.Artworks) != 3 || snap.Artworks[0].ID != body.Artwork.ID {
		t.Fatalf("new artwork should lead the list: %+v", snap.Artworks)
	}
}

func TestCreateArtworkValidation(t *testing.T) {
	r, g := setupRouter(t)

	for _, payload := range []string{
		`{"title":"","artist":"a","description":"d"}`,
		`{"title":"t","artist":"a","description":"d","imageUrl":"javascript:alert(1)"}`,
		`not json`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/artworks", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, w.Code)
		}
	}
	if len(g.Snapshot().Artworks) != 2 {
		t.Fatal("rejected submissions must not be stored")
	}
}
