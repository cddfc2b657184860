package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"perform-assistant/internal/auth"
	"perform-assistant/internal/auth/provider"
	"perform-assistant/internal/logger"
	"perform-assistant/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	providers     *provider.Registry
	sessionStore  session.Store
	publicBaseURL string
	sessionTTL    time.Duration
}

func NewHandler(
	registry *provider.Registry,
	sessionStore session.Store,
	publicBaseURL string,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		providers:     registry,
		sessionStore:  sessionStore,
		publicBaseURL: publicBaseURL,
		sessionTTL:    sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/auth/providers", h.listProviders)
	r.GET("/oauth/login/:provider", h.login)
	r.GET("/oauth/callback/:provider", h.callback)
	r.POST("/auth/logout", h.Logout)
}

// redirectURI is the callback URL registered with the identity provider.
func (h *Handler) redirectURI(providerID string) string {
	return h.publicBaseURL + "/oauth/callback/" + providerID
}

func (h *Handler) listProviders(c *gin.Context) {
	ids := []string{}
	for _, p := range h.providers.List() {
		ids = append(ids, p.ID())
	}
	c.JSON(http.StatusOK, gin.H{"providers": ids})
}

func (h *Handler) login(c *gin.Context) {
	providerID := c.Param("provider")

	p, err := h.providers.Get(providerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state, err := generateState(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to start login",
		})
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, h.redirectURI(providerID)))
}

func (h *Handler) callback(c *gin.Context) {
	providerID := c.Param("provider")

	p, err := h.providers.Get(providerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}
	clearState(c)

	// The user cancelled or the provider refused the request.
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerID,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", map[string]any{
			"provider": providerID,
		})
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()

	credential, err := p.Exchange(ctx, code, h.redirectURI(providerID))
	if err != nil {
		h.authFailed(c, providerID, err)
		return
	}

	_, user, err := p.Resolve(ctx, credential)
	if err != nil {
		h.authFailed(c, providerID, err)
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create session",
		})
		return
	}

	now := time.Now()
	expiresAt := now.Add(h.sessionTTL)

	sess := session.Session{
		SessionID: sessionID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := h.sessionStore.Create(ctx, sess); err != nil {
		logger.Error("session create failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to persist session",
		})
		return
	}

	session.SetCookie(c.Writer, sessionID, expiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("login succeeded", map[string]any{
		"provider":   providerID,
		"identifier": user.Identifier,
		"ip":         c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "authenticated",
		"user":   user,
	})
}

// authFailed maps the login error taxonomy onto HTTP responses.
func (h *Handler) authFailed(c *gin.Context, providerID string, err error) {
	var (
		authzErr *auth.AuthorizationError
		exErr    *auth.AuthExchangeError
		trErr    *auth.TransportError
	)

	switch {
	case errors.As(err, &authzErr):
		logger.Warn("login denied", map[string]any{
			"provider":       providerID,
			"required_group": authzErr.RequiredGroup,
			"groups":         authzErr.Groups,
			"ip":             c.ClientIP(),
		})
		c.JSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("Access denied. User must be member of '%s' group.", authzErr.RequiredGroup),
		})

	case errors.As(err, &exErr):
		logger.Warn("login failed", map[string]any{
			"provider": providerID,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "authentication failed",
		})

	default:
		msg := "login failed"
		if errors.As(err, &trErr) {
			msg = "identity provider request failed"
		}
		logger.Error(msg, map[string]any{
			"provider": providerID,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "login failed, please try again",
		})
	}
}

func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// best-effort
		if err := h.sessionStore.Delete(c.Request.Context(), cookie.Value); err != nil {
			logger.Warn("session delete failed", map[string]any{
				"error": err.Error(),
			})
		}
		logger.Info("logout", map[string]any{
			"ip": c.ClientIP(),
		})
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}
