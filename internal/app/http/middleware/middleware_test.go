package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "middleware-secret"

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/curator")
	g.Use(AuthMiddleware(testSecret), RequireRole("curator"))
	g.GET("/dashboard", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("subject")})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := guardedRouter()
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Token abc", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", status: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signed(t, "other", jwt.MapClaims{"role": "curator", "exp": exp}), status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signed(t, testSecret, jwt.MapClaims{"role": "curator", "exp": time.Now().Add(-time.Hour).Unix()}), status: http.StatusUnauthorized},
		{name: "no role", header: "Bearer " + signed(t, testSecret, jwt.MapClaims{"exp": exp}), status: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + signed(t, testSecret, jwt.MapClaims{"role": "visitor", "exp": exp}), status: http.StatusForbidden},
		{name: "curator", header: "Bearer " + signed(t, testSecret, jwt.MapClaims{"sub": "curator", "role": "curator", "exp": exp}), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/curator/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareWithoutSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", AuthMiddleware(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func echoRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", body)
	})
	return r
}

func TestSanitizeStripsMarkup(t *testing.T) {
	r := echoRouter(SanitizeAndCleanInputMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"title":"<b>Bold</b> move<script>x()</script>","year":2024}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["title"] != "Bold move" {
		t.Fatalf("unexpected title %q", body["title"])
	}
	if body["year"] != float64(2024) {
		t.Fatalf("non-string fields must pass through, got %v", body["year"])
	}
}

func TestSanitizeBodyShapes(t *testing.T) {
	r := echoRouter(SanitizeAndCleanInputMiddleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("empty body should pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`[1,2]`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-object body, got %d", w.Code)
	}
}

func TestLimitBody(t *testing.T) {
	r := echoRouter(LimitBody(16), SanitizeAndCleanInputMiddleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":"b"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("small body should pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"title":"this body is too long"}`)))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
}

func TestSanitizeKeepsTextUnescaped(t *testing.T) {
	r := echoRouter(SanitizeAndCleanInputMiddleware("imageUrl"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(
		`{"title":"Rock & Roll","artist":"O'Keeffe <i>jr</i>","imageUrl":"https://ex.com/a.png?w=1&h=2&x=<y>"}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["title"] != "Rock & Roll" || body["artist"] != "O'Keeffe jr" {
		t.Fatalf("text must not be entity-escaped: %v", body)
	}
	if body["imageUrl"] != "https://ex.com/a.png?w=1&h=2&x=<y>" {
		t.Fatalf("raw fields must pass through untouched, got %v", body["imageUrl"])
	}
}
