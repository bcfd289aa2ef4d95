// Package rfp provides the RFP browsing and unlock-with-credits module.
package rfp

import (
	"marketplace_backend/internal/events"
	apphttp "marketplace_backend/internal/http"
	"marketplace_backend/internal/rfp/handler"
	"marketplace_backend/internal/rfp/ports"
	"marketplace_backend/internal/rfp/service"
	"marketplace_backend/platform/config"
	"marketplace_backend/platform/logger"
	"marketplace_backend/platform/validator"
)

// Module represents the RFP domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new RFP module. The ledger and catalog come from the
// credits and marketplace modules through adapters.
func NewModule(catalog ports.RequestCatalog, ledger ports.CreditLedger, eventBus events.Bus, cfg config.MarketplaceConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(catalog, ledger, eventBus, cfg.GetPhoneDefaultRegion(), log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "rfp"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/rfps"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
