// Package handler exposes the auth HTTP API.
package handler

import (
	"net/http"

	"github.com/Iamalive23802/Dream-Trade/internal/auth/service"
	"github.com/Iamalive23802/Dream-Trade/internal/auth/transport"
	"github.com/Iamalive23802/Dream-Trade/internal/http/response"
	"github.com/Iamalive23802/Dream-Trade/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the auth routes.
type Handler struct {
	svc *service.Service
}

// New creates the auth handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts login on the public group, throttled harder than the
// rest of the API, and the identity probe on the protected group.
func (h *Handler) RegisterRoutes(v1, protected *gin.RouterGroup, limiter *httpkit.AuthRateLimiter) {
	auth := v1.Group("/auth")
	auth.Use(limiter.RateLimit())
	auth.POST("/login", h.login)

	protected.GET("/auth/me", h.me)
}

func (h *Handler) login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, transport.LoginResponse{
		Token:    result.Token,
		User:     transport.ToUserResponse(result.User),
		NewLeads: result.NewLeads,
	})
}

func (h *Handler) me(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	response.OK(c, gin.H{
		"id":     id.UserID(),
		"role":   id.Role(),
		"teamId": id.TeamID(),
	})
}
