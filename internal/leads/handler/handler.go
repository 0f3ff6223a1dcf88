// Package handler exposes the leads HTTP API.
package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/http/response"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/importer"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/service"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/transport"
	"github.com/Iamalive23802/Dream-Trade/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 20 << 20 // 20 MiB

// Handler serves the leads routes.
type Handler struct {
	svc *service.Service
	imp *importer.Importer
}

// New creates the leads handler.
func New(svc *service.Service, imp *importer.Importer) *Handler {
	return &Handler{svc: svc, imp: imp}
}

// RegisterRoutes mounts the leads API. Reads and edits live on the
// authenticated group; destructive and bulk operations are admin only.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	leads := protected.Group("/leads")
	leads.GET("", h.list)
	leads.GET("/new-count", h.newCount)
	leads.GET("/status-summary", h.statusSummary)
	leads.GET("/:id", h.get)
	leads.POST("", h.create)
	leads.PUT("/:id", h.update)
	leads.PATCH("/:id/assign", h.assign)

	adminLeads := admin.Group("/leads")
	adminLeads.DELETE("/:id", h.remove)
	adminLeads.POST("/upload", h.upload)
	adminLeads.POST("/google-sheets", h.googleSheets)
}

func (h *Handler) list(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	filters, err := parseFilters(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	leads, err := h.svc.List(c.Request.Context(), caller, filters)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, transport.ToLeadResponses(leads, caller.Role))
}

func (h *Handler) get(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), caller, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, transport.ToLeadResponse(lead, caller.Role))
}

func (h *Handler) create(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, transport.ToLeadResponse(lead, caller.Role))
}

func (h *Handler) update(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, transport.ToLeadResponse(lead, caller.Role))
}

func (h *Handler) assign(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transport.AssignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	target, err := uuid.Parse(strings.TrimSpace(req.AssignedTo))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "assignedTo must be a valid id", nil)
		return
	}

	lead, err := h.svc.Assign(c.Request.Context(), caller, id, target)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, transport.ToLeadResponse(lead, caller.Role))
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) newCount(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	count, err := h.svc.NewAssignedCount(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, transport.NewCountResponse{Count: count})
}

func (h *Handler) statusSummary(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	summary, err := h.svc.StatusSummary(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, summary)
}

func (h *Handler) upload(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.Error(c, http.StatusBadRequest, "file is too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read file", nil)
		return
	}

	svcCaller := service.Caller{ID: caller.ID, Role: caller.Role}
	var result *importer.Result
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		result, err = h.imp.ImportCSV(c.Request.Context(), svcCaller, fileHeader.Filename, data)
	case ".xlsx":
		result, err = h.imp.ImportXLSX(c.Request.Context(), svcCaller, fileHeader.Filename, data)
	default:
		response.Error(c, http.StatusBadRequest, "only .csv and .xlsx files are supported", nil)
		return
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) googleSheets(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "url is required", nil)
		return
	}

	result, err := h.imp.ImportGoogleSheet(c.Request.Context(), service.Caller{ID: caller.ID, Role: caller.Role}, req.URL)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, result)
}

func callerIdentity(c *gin.Context) (service.CallerIdentity, bool) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return service.CallerIdentity{}, false
	}
	return service.CallerIdentity{ID: id.UserID(), Role: id.Role(), TeamID: id.TeamID()}, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseFilters(c *gin.Context) (domain.ListFilters, error) {
	filters := domain.ListFilters{
		Status: c.Query("status"),
		Tag:    c.Query("tag"),
		Name:   c.Query("name"),
	}

	switch assigned := c.Query("assignedTo"); assigned {
	case "":
	case "unassigned":
		filters.Unassigned = true
	default:
		id, err := uuid.Parse(assigned)
		if err == nil {
			filters.AssignedTo = &id
		}
	}

	if from := c.Query("dateFrom"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			filters.DateFrom = &parsed
		}
	}
	if to := c.Query("dateTo"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			end := parsed.Add(24*time.Hour - time.Nanosecond)
			filters.DateTo = &end
		}
	}

	return filters, nil
}
