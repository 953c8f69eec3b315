package routes

import (
	"net/http"

	artworksapi "artpulse-app/internal/api/artworks"
	authapi "artpulse-app/internal/api/auth"
	curatorapi "artpulse-app/internal/api/curator"
	exhibitionsapi "artpulse-app/internal/api/exhibitions"
	viewsapi "artpulse-app/internal/api/views"
	"artpulse-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Artworks    *artworksapi.Handler
	Exhibitions *exhibitionsapi.Handler
	Views       *viewsapi.Handler
	Curator     *curatorapi.Handler
	Auth        *authapi.Handler

	// JWTSecret guards the curator routes; empty leaves them open.
	JWTSecret    string
	MaxBodyBytes int64
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/artworks", h.Artworks.List)
	r.GET("/exhibitions", h.Exhibitions.List)
	r.GET("/views/:view", h.Views.Show)

	public := r.Group("/")
	public.Use(middleware.LimitBody(h.MaxBodyBytes))
	// ✅ Strip markup from submitted text; the image reference is validated, not rewritten
	public.POST("/artworks", middleware.SanitizeAndCleanInputMiddleware("imageUrl"), h.Artworks.Create)
	public.POST("/curator/login", h.Auth.Login)

	curator := r.Group("/curator")
	if h.JWTSecret != "" {
		curator.Use(middleware.AuthMiddleware(h.JWTSecret), middleware.RequireRole(authapi.CuratorRole))
	}
	curator.GET("/dashboard", h.Curator.Dashboard)
	curator.POST("/curate", h.Curator.Curate)
	curator.POST("/exhibitions/:id/publish", h.Curator.Publish)
	curator.DELETE("/exhibitions/:id", h.Curator.Dismiss)
}
