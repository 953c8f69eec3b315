package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func setupRouter(t *testing.T, password, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var hash string
	if password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		hash = string(b)
	}

	r := gin.New()
	r.POST("/curator/login", NewHandler(hash, secret, nil).Login)
	return r
}

func login(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/curator/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginIssuesCuratorToken(t *testing.T) {
	r := setupRouter(t, "gallery-night-42", "test-secret")

	w := login(r, `{"password":"gallery-night-42"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	token, err := jwt.Parse(body.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["role"] != CuratorRole {
		t.Fatalf("expected curator role, got %v", claims["role"])
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r := setupRouter(t, "gallery-night-42", "test-secret")

	if w := login(r, `{"password":"nope"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := login(r, `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginDisabledWithoutConfig(t *testing.T) {
	r := setupRouter(t, "", "test-secret")

	if w := login(r, `{"password":"x"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
