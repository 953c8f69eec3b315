package exhibitions

import (
	"html"
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

type exhibitionResponse struct {
	gallery.ExhibitionCard
	ThemeHTML string `json:"themeHtml"`
}

// List returns published exhibitions with their artworks resolved.
func (h *Handler) List(c *gin.Context) {
	vm := h.gallery.ViewModel(works.ViewExhibitions)

	out := make([]exhibitionResponse, 0, len(vm.Exhibitions))
	for _, card := range vm.Exhibitions {
		themeHTML, err := renderTheme(card.ThemeDescription)
		if err != nil {
			h.log.Warn("failed to render theme", "id", card.ID, "error", err)
			themeHTML = "<p>" + html.EscapeString(card.ThemeDescription) + "</p>"
		}
		out = append(out, exhibitionResponse{ExhibitionCard: card, ThemeHTML: themeHTML})
	}

	c.JSON(http.StatusOK, gin.H{"exhibitions": out})
}
