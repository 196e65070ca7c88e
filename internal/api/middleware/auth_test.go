package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livestock-supply-api-server/internal/auth"
	"livestock-supply-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append([]gin.HandlerFunc{Authenticate()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": UserID(c)})
	})
	router.GET("/protected", chain...)
	return router
}

func bearerToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := auth.GenerateJWT(userID, "user@example.com", role, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return "Bearer " + token
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearerToken(t, 42, models.RoleOwner))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestAuthenticateRejectsBadRequests(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{"invalid token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthorizeChecksRole(t *testing.T) {
	router := newTestRouter(t, Authorize(models.RoleSupplier))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearerToken(t, 1, models.RoleSupplier))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("supplier: status = %d, want %d", w.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearerToken(t, 2, models.RoleOwner))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("owner: status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestUserIDReadsClaimFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_id", int64(99))
	if got := UserID(c); got != 99 {
		t.Errorf("UserID = %d, want 99", got)
	}
}
