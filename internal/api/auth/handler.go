package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const CuratorRole = "curator"

const defaultTokenTTL = 12 * time.Hour

// Handler exchanges the shared curator password for a signed token.
type Handler struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
	log          *slog.Logger
}

func NewHandler(passwordHash, secret string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          defaultTokenTTL,
		now:          time.Now,
		log:          logger,
	}
}

func (h *Handler) Enabled() bool {
	return len(h.passwordHash) > 0 && len(h.secret) > 0
}

func (h *Handler) Login(c *gin.Context) {
	if !h.Enabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Curator login is not configured"})
		return
	}

	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(input.Password)); err != nil {
		h.log.Info("curator login rejected", "ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := IssueToken(h.secret, CuratorRole, h.now().Add(h.ttl))
	if err != nil {
		h.log.Error("failed to sign token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

func IssueToken(secret []byte, role string, expires time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  role,
		"role": role,
		"exp":  expires.Unix(),
	})
	return token.SignedString(secret)
}
