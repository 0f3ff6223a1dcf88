// Package handler exposes the users HTTP API. Every route is admin only.
package handler

import (
	"net/http"

	"github.com/Iamalive23802/Dream-Trade/internal/http/response"
	leadtransport "github.com/Iamalive23802/Dream-Trade/internal/leads/transport"
	"github.com/Iamalive23802/Dream-Trade/internal/users/service"
	"github.com/Iamalive23802/Dream-Trade/internal/users/transport"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves the users routes.
type Handler struct {
	svc *service.Service
}

// New creates the users handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the users API on the admin group.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/users")
	users.GET("", h.list)
	users.GET("/:id", h.get)
	users.POST("", h.create)
	users.PUT("/:id", h.update)
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, transport.ToUserResponses(users))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, transport.ToUserResponse(user))
}

func (h *Handler) create(c *gin.Context) {
	var req transport.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	teamID, err := leadtransport.ParseOptionalID(req.TeamID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "teamId must be a valid id", nil)
		return
	}

	user, err := h.svc.Create(c.Request.Context(), service.CreateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		TeamID:   teamID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, transport.ToUserResponse(user))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transport.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	teamID, err := leadtransport.ParseOptionalID(req.TeamID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "teamId must be a valid id", nil)
		return
	}

	user, err := h.svc.Update(c.Request.Context(), id, service.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
		TeamID:   teamID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, transport.ToUserResponse(user))
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return uuid.Nil, false
	}
	return id, true
}
