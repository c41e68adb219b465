package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/auth0"
	"github.com/annerraquino/auth0-cleanup-sb/internal/cleanup"
	"github.com/annerraquino/auth0-cleanup-sb/internal/config"
	"github.com/annerraquino/auth0-cleanup-sb/internal/ledger"
	"github.com/annerraquino/auth0-cleanup-sb/internal/resolver"
	"github.com/annerraquino/auth0-cleanup-sb/internal/web"
)

func setupHTTP(ctx context.Context, cfg config.Config, log *zap.Logger) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, &cfg, log)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	tokens, err := auth0.NewTokenProvider(
		cfg.Auth0Domain,
		cfg.Auth0ClientID,
		cfg.Auth0ClientSecret,
		cfg.Auth0Audience,
		log,
	)
	if err != nil {
		return nil, nil, err
	}

	mgmt, err := auth0.NewClient(cfg.Auth0Domain, cfg.Auth0Audience, log)
	if err != nil {
		return nil, nil, err
	}

	identityResolver := resolver.NewAuth0Resolver(mgmt, log)
	resultLedger := ledger.NewCSVLedger(infra.Store, cfg.OutputS3Key, log)

	orch := cleanup.NewOrchestrator(tokens, identityResolver, mgmt, resultLedger, log)

	handler := web.NewHandler(cfg, infra.Store, orch, infra.Runs, log)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	handler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, infra.Close, nil
}
