package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/application/service"
	"github.com/garyjia/leave-master/internal/domain/entity"
	"github.com/garyjia/leave-master/pkg/utils"
)

// APIHandlers contains the JSON API handlers
type APIHandlers struct {
	services Services
	logger   *zap.Logger
}

// NewAPIHandlers creates a new APIHandlers instance
func NewAPIHandlers(services Services, logger *zap.Logger) *APIHandlers {
	return &APIHandlers{services: services, logger: logger}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string                     `json:"status"`
	Timestamp  string                     `json:"timestamp"`
	Version    string                     `json:"version"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// CreateLeaveRequest is the body of POST /api/leaves
type CreateLeaveRequest struct {
	Title          string `json:"title" binding:"required"`
	LeaveType      string `json:"leave_type" binding:"required"`
	LeaveDate      string `json:"leave_date" binding:"required"`
	ApprovalStatus string `json:"approval_status" binding:"required"`
	Holiday        string `json:"holiday"`
}

// CreateLeaveResponse is returned after a create
type CreateLeaveResponse struct {
	ID int64 `json:"id"`
}

// HealthCheck handles GET /health
func (h *APIHandlers) HealthCheck(c *gin.Context) {
	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}
	if h.services.Health == nil {
		c.JSON(http.StatusOK, Response{Success: true, Data: health})
		return
	}

	healthy, components := h.services.Health(c.Request.Context())
	health.Components = components
	if !healthy {
		health.Status = "unhealthy"
		h.logger.Warn("Health check failed", zap.Any("components", components))
		c.JSON(http.StatusServiceUnavailable, Response{Success: false, Data: health, Error: "service unhealthy"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: health})
}

// ListLeaves handles GET /api/leaves
func (h *APIHandlers) ListLeaves(c *gin.Context) {
	var filter entity.LeaveFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.fail(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	records, err := h.services.Master.List(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, "failed to retrieve leave records", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: records})
}

// GetLeave handles GET /api/leaves/:id
func (h *APIHandlers) GetLeave(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	record, err := h.services.Detail.Get(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, "failed to retrieve leave record", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: record})
}

// CreateLeave handles POST /api/leaves
func (h *APIHandlers) CreateLeave(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid create request", zap.Error(err))
		h.fail(c, http.StatusBadRequest, "title, leave_type, leave_date and approval_status are required")
		return
	}

	result, err := h.services.Form.Submit(c.Request.Context(), entity.LeaveRecord{
		Title:          utils.SanitizeString(req.Title),
		LeaveType:      req.LeaveType,
		LeaveDate:      req.LeaveDate,
		ApprovalStatus: req.ApprovalStatus,
		Holiday:        req.Holiday,
	})
	if err != nil {
		h.writeServiceError(c, "failed to create leave record", err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: CreateLeaveResponse{ID: result.ID}})
}

// UpdateLeave handles PATCH /api/leaves/:id
func (h *APIHandlers) UpdateLeave(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var patch entity.LeavePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.services.Detail.Patch(c.Request.Context(), id, patch)
	if err != nil {
		h.writeServiceError(c, "failed to update leave record", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: record})
}

// GetFieldSchema handles GET /api/schema/:field
func (h *APIHandlers) GetFieldSchema(c *gin.Context) {
	field := c.Param("field")
	schema, err := h.services.Schema.Field(c.Request.Context(), field)
	if err != nil {
		if c.Request.Context().Err() != nil {
			c.Abort()
			return
		}
		if errors.Is(err, port.ErrNotFound) {
			h.fail(c, http.StatusNotFound, "unknown field "+field)
			return
		}
		h.writeServiceError(c, "failed to read field schema", &service.FetchError{Op: "read field " + field, Err: err})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: schema})
}

// ListHolidays handles GET /api/holidays
func (h *APIHandlers) ListHolidays(c *gin.Context) {
	holidays, err := h.services.Form.Holidays(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, "failed to retrieve holidays", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: holidays})
}

func (h *APIHandlers) parseID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, "invalid leave ID")
		return 0, false
	}
	return id, true
}

func (h *APIHandlers) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Success: false, Error: msg})
}

// writeServiceError maps service errors to HTTP statuses
func (h *APIHandlers) writeServiceError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrStale):
		h.logger.Debug("Request cancelled before response", zap.String("path", c.Request.URL.Path))
		c.Abort()
	case errors.Is(err, port.ErrNotFound):
		h.fail(c, http.StatusNotFound, "leave record not found")
	case errors.Is(err, service.ErrRequiredField):
		h.fail(c, http.StatusBadRequest, err.Error())
	case service.IsFetchError(err), service.IsWriteError(err):
		h.logger.Error(msg, zap.Error(err))
		h.fail(c, http.StatusBadGateway, msg)
	default:
		h.logger.Error(msg, zap.Error(err))
		h.fail(c, http.StatusInternalServerError, msg)
	}
}
