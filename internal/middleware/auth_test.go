package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"perform-assistant/internal/auth"
	"perform-assistant/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(GinRequireAuth(NewAuthMiddleware(store)))
	api.GET("/me", func(c *gin.Context) {
		u, ok := UserFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"identifier": u.Identifier})
	})
	return r
}

func TestGinRequireAuth(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Create(context.Background(), session.Session{
		SessionID: "good",
		User:      auth.User{Identifier: "jdoe"},
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	r := protectedRouter(store)

	tests := []struct {
		name   string
		cookie string
		want   int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"unknown session", "missing", http.StatusUnauthorized},
		{"valid session", "good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"identifier":"jdoe"}`, rec.Body.String())
			}
		})
	}
}
