package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/pkg/response"
)

type AdminHandler struct {
	admin *application.AdminService
	audit *application.AuditService
}

func NewAdminHandler(admin *application.AdminService, audit *application.AuditService) *AdminHandler {
	return &AdminHandler{admin: admin, audit: audit}
}

// MyStats godoc
// @Summary Dashboard counters of the caller's forms
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} application.Stats
// @Router /stats [get]
func (h *AdminHandler) MyStats(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	st, err := h.admin.Stats(p.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Stats godoc
// @Summary Platform-wide counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} application.Stats
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	st, err := h.admin.Stats(0)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GetAuditLogs godoc
// @Summary Query audit logs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Actor user ID"
// @Param resource_type query string false "Resource type"
// @Param resource_id query string false "Resource ID"
// @Param action query string false "Action"
// @Param start_time query string false "RFC3339 lower bound"
// @Param end_time query string false "RFC3339 upper bound"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} audit.AuditLog
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/audit/logs [get]
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	var params repository.AuditQueryParams

	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid user_id"})
			return
		}
		uid := uint(id)
		params.UserID = &uid
	}
	if v := c.Query("resource_type"); v != "" {
		params.ResourceType = &v
	}
	if v := c.Query("resource_id"); v != "" {
		params.ResourceID = &v
	}
	if v := c.Query("action"); v != "" {
		params.Action = &v
	}
	for key, dst := range map[string]**time.Time{"start_time": &params.StartTime, "end_time": &params.EndTime} {
		v := c.Query(key)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid " + key})
			return
		}
		*dst = &t
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.audit.QueryAuditLogs(params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
