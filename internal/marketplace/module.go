// Package marketplace provides the catalog browsing and filter assistant module.
package marketplace

import (
	apphttp "marketplace_backend/internal/http"
	"marketplace_backend/internal/marketplace/assistant"
	"marketplace_backend/internal/marketplace/catalog"
	"marketplace_backend/internal/marketplace/domain"
	"marketplace_backend/internal/marketplace/handler"
	"marketplace_backend/internal/marketplace/service"
	"marketplace_backend/platform/config"
	"marketplace_backend/platform/logger"
	"marketplace_backend/platform/validator"
)

// ModuleConfig combines the config the marketplace module reads.
type ModuleConfig interface {
	config.MarketplaceConfig
	config.AssistantConfig
}

// Module represents the marketplace domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new marketplace module over the seed catalog.
func NewModule(cat *catalog.Catalog, cfg ModuleConfig, val *validator.Validator, log *logger.Logger) *Module {
	scorer := domain.Scorer{Jitter: cfg.GetScoreJitter()}
	pacer := assistant.NewPacer(cfg.GetAssistantDelayMin(), cfg.GetAssistantDelayMax())
	svc := service.New(cat, scorer, pacer, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "marketplace"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/marketplace")
	group.Use(ctx.PublicRateLimiter.RateLimit())
	m.handler.RegisterRoutes(group, ctx.AssistantRateLimiter.RateLimit())
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
