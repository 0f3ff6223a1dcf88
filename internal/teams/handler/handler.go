// Package handler exposes the teams HTTP API.
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/http/response"
	"github.com/Iamalive23802/Dream-Trade/internal/teams/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type teamRequest struct {
	Name string `json:"name" binding:"required"`
}

type teamResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Handler serves the teams routes. Teams are simple enough that the handler
// talks to the repository directly.
type Handler struct {
	repo *repository.Repository
}

// New creates the teams handler.
func New(repo *repository.Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts reads for every authenticated user and writes for
// admins.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.GET("/teams", h.list)

	teams := admin.Group("/teams")
	teams.POST("", h.create)
	teams.PUT("/:id", h.rename)
	teams.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	teams, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]teamResponse, 0, len(teams))
	for _, team := range teams {
		out = append(out, teamResponse{ID: team.ID, Name: team.Name, CreatedAt: team.CreatedAt})
	}
	response.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	name, ok := bindTeamName(c)
	if !ok {
		return
	}

	team := &repository.Team{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := h.repo.Create(c.Request.Context(), team); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, teamResponse{ID: team.ID, Name: team.Name, CreatedAt: team.CreatedAt})
}

func (h *Handler) rename(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid team id", nil)
		return
	}

	name, ok := bindTeamName(c)
	if !ok {
		return
	}

	if err := h.repo.Rename(c.Request.Context(), id, name); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"updated": true})
}

// bindTeamName reads and trims the name, rejecting whitespace-only values
// that pass the required binding.
func bindTeamName(c *gin.Context) (string, bool) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "name is required", nil)
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.Error(c, http.StatusBadRequest, "name is required", nil)
		return "", false
	}
	return name, true
}

func (h *Handler) remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid team id", nil)
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
