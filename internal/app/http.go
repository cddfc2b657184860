package app

import (
	"context"
	"net/http"
	"time"

	"perform-assistant/internal/auth/handler"
	"perform-assistant/internal/auth/provider"
	"perform-assistant/internal/auth/provider/org"
	"perform-assistant/internal/chat"
	"perform-assistant/internal/config"
	"perform-assistant/internal/logger"
	"perform-assistant/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Providers
	// ----------------------------

	registry := provider.NewRegistry()

	if missing := cfg.OrgOAuth.Missing(); len(missing) > 0 {
		logger.Warn("organization oauth not configured", map[string]any{
			"missing": missing,
		})
	}
	registry.Register(org.ProviderID, org.New(ctx, cfg.OrgOAuth), cfg.OrgOAuth.Configured())

	// ----------------------------
	// Dependencies
	// ----------------------------

	authHandler := handler.NewHandler(
		registry,
		infra.Sessions,
		cfg.PublicBaseURL,
		cfg.SessionTTL,
	)

	var assistant *chat.Assistant
	if cfg.LLMAPIKey != "" {
		assistant = chat.NewAssistant(chat.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL))
	} else {
		logger.Warn("missing environment variables", map[string]any{
			"missing": []string{"LLM_API_KEY"},
		})
	}

	chatHandler := chat.NewHandler(assistant, infra.Recorder)
	authMiddleware := middleware.NewAuthMiddleware(infra.Sessions)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger.Zap()))

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))
	chatHandler.RegisterRoutes(api)

	return router, infra.Close, nil
}

// requestLogger writes one line per request.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
