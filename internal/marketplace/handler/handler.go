package handler

import (
	"net/http"

	"marketplace_backend/internal/marketplace/service"
	"marketplace_backend/internal/marketplace/transport"
	"marketplace_backend/platform/httpkit"
	"marketplace_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the public marketplace.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new marketplace handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the catalog routes. The assistant route gets its
// own, stricter limiter.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, assistantLimit gin.HandlerFunc) {
	rg.GET("/listings", h.ListListings)
	rg.GET("/listings/:id", h.GetListing)
	rg.GET("/proposals", h.ListProposals)
	rg.GET("/filters/default", h.DefaultFilters)
	rg.POST("/assistant", assistantLimit, h.Assist)
}

func (h *Handler) ListListings(c *gin.Context) {
	query, ok := h.bindFilters(c)
	if !ok {
		return
	}

	httpkit.OK(c, h.svc.ListListings(service.FilterStateFromQuery(query)))
}

func (h *Handler) GetListing(c *gin.Context) {
	listing, err := h.svc.GetListing(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, listing)
}

func (h *Handler) ListProposals(c *gin.Context) {
	query, ok := h.bindFilters(c)
	if !ok {
		return
	}

	httpkit.OK(c, h.svc.ListProposals(service.FilterStateFromQuery(query)))
}

func (h *Handler) DefaultFilters(c *gin.Context) {
	httpkit.OK(c, h.svc.DefaultFilters())
}

func (h *Handler) Assist(c *gin.Context) {
	var req transport.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Assist(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) bindFilters(c *gin.Context) (transport.FilterQuery, bool) {
	var query transport.FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return query, false
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return query, false
	}
	return query, true
}
