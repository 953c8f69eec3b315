package curator

import (
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

type DashboardResponse struct {
	Pending      []gallery.ExhibitionCard `json:"pending"`
	Active       []gallery.ExhibitionCard `json:"active"`
	Artworks     []works.Artwork          `json:"artworks"`
	ArtworkCount int                      `json:"artworkCount"`
	CanCurate    bool                     `json:"canCurate"`
	Curating     bool                     `json:"curating"`
}

func (h *Handler) Dashboard(c *gin.Context) {
	vm := h.gallery.ViewModel(works.ViewDashboard)
	c.JSON(http.StatusOK, DashboardResponse{
		Pending:      vm.Pending,
		Active:       vm.Active,
		Artworks:     h.gallery.Snapshot().Artworks,
		ArtworkCount: vm.ArtworkCount,
		CanCurate:    vm.CanCurate,
		Curating:     h.gallery.Curating(),
	})
}

func (h *Handler) Curate(c *gin.Context) {
	drafts, err := h.gallery.Curate(c.Request.Context())
	if err != nil && len(drafts) == 0 {
		h.fail(c, "curate", err)
		return
	}
	if err != nil {
		h.log.Warn("curation stored without reload", "error", err)
	}
	c.JSON(http.StatusCreated, gin.H{"exhibitions": drafts})
}

func (h *Handler) Publish(c *gin.Context) {
	ex, err := h.gallery.Publish(c.Request.Context(), c.Param("id"))
	if err != nil && ex.ID == "" {
		h.fail(c, "publish", err)
		return
	}
	if err != nil {
		h.log.Warn("publish stored without reload", "id", ex.ID, "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"exhibition": ex})
}

func (h *Handler) Dismiss(c *gin.Context) {
	if err := h.gallery.Dismiss(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "dismiss", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, action string, err error) {
	f := classify(err)
	if f.status >= http.StatusInternalServerError {
		h.log.Error("curator action failed", "action", action, "code", f.code, "error", err)
	} else {
		h.log.Info("curator action rejected", "action", action, "code", f.code, "error", err)
	}
	c.JSON(f.status, gin.H{"error": f.message, "code": f.code})
}
