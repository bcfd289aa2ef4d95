package handler

import (
	"net/http"

	"marketplace_backend/internal/credits/service"
	"marketplace_backend/internal/credits/transport"
	"marketplace_backend/platform/httpkit"
	"marketplace_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the session's credits.
type Handler struct {
	svc    *service.Service
	val    *validator.Validator
	stream gin.HandlerFunc
}

// New creates a new credits handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SetStream injects the SSE handler serving balance changes.
func (h *Handler) SetStream(stream gin.HandlerFunc) {
	h.stream = stream
}

// RegisterRoutes registers the credits routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetAccount)
	rg.GET("/unlocked/:id", h.GetUnlockStatus)
	rg.GET("/packages", h.ListPackages)
	rg.POST("/top-up", h.TopUp)
	rg.POST("/purchase", h.Purchase)
	if h.stream != nil {
		rg.GET("/stream", h.stream)
	}
}

func (h *Handler) GetAccount(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	result, err := h.svc.GetAccount(c.Request.Context(), id.AccountID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) GetUnlockStatus(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	rfpID := c.Param("id")
	unlocked, err := h.svc.IsUnlocked(c.Request.Context(), id.AccountID(), rfpID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.UnlockStatusResponse{ID: rfpID, Unlocked: unlocked})
}

func (h *Handler) ListPackages(c *gin.Context) {
	httpkit.OK(c, h.svc.ListPackages())
}

func (h *Handler) TopUp(c *gin.Context) {
	var req transport.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	result, err := h.svc.TopUp(c.Request.Context(), id.AccountID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) Purchase(c *gin.Context) {
	var req transport.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	result, err := h.svc.Purchase(c.Request.Context(), id.AccountID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
