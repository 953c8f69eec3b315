package artworks

import (
	"errors"
	"log/slog"
	"net/http"

	"artpulse-app/internal/domain/works"
	"artpulse-app/internal/gallery"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	gallery *gallery.Gallery
	log     *slog.Logger
}

func NewHandler(g *gallery.Gallery, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{gallery: g, log: logger}
}

// List returns artworks newest first, filtered by ?q= when present.
func (h *Handler) List(c *gin.Context) {
	var list []works.Artwork
	if q := c.Query("q"); q != "" {
		list = h.gallery.SearchArtworks(q)
	} else {
		list = h.gallery.Snapshot().Artworks
	}
	c.JSON(http.StatusOK, gin.H{"artworks": list})
}

func (h *Handler) Create(c *gin.Context) {
	var input gallery.ArtworkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, view, err := h.gallery.SubmitArtwork(c.Request.Context(), input)
	if errors.Is(err, gallery.ErrInvalidArtwork) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil && a.ID == "" {
		h.log.Error("failed to store artwork", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save artwork"})
		return
	}
	if err != nil {
		// stored, but the snapshot could not be refreshed
		h.log.Warn("artwork stored without reload", "id", a.ID, "error", err)
	}

	c.JSON(http.StatusCreated, gin.H{"artwork": a, "view": view})
}
