// Package credits provides the session credits ledger module.
package credits

import (
	"marketplace_backend/internal/credits/handler"
	"marketplace_backend/internal/credits/repository"
	"marketplace_backend/internal/credits/service"
	"marketplace_backend/internal/events"
	apphttp "marketplace_backend/internal/http"
	"marketplace_backend/platform/logger"
	"marketplace_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Module represents the credits domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new credits module backed by store.
func NewModule(store repository.Store, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(store, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "credits"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// SetPackageReader wires the purchasable credit packages.
func (m *Module) SetPackageReader(r service.PackageReader) {
	m.service.SetPackageReader(r)
}

// SetStream mounts the balance SSE stream under /credits/stream.
func (m *Module) SetStream(stream gin.HandlerFunc) {
	m.handler.SetStream(stream)
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/credits"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
