package views

import (
	"net/http"

	"artpulse-app/internal/domain/works"
	"artpulse-app/internal/gallery"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	gallery *gallery.Gallery
}

func NewHandler(g *gallery.Gallery) *Handler {
	return &Handler{gallery: g}
}

// Show returns the data behind one of the four display modes.
func (h *Handler) Show(c *gin.Context) {
	view, err := works.ParseView(c.Param("view"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown view"})
		return
	}
	c.JSON(http.StatusOK, h.gallery.ViewModel(view))
}
