package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/pkg/response"
	"github.com/linskybing/formify-go/pkg/utils"
)

var formLabels = map[string]string{
	"Title":       "title",
	"Description": "description",
	"Prompt":      "prompt",
}

type FormHandler struct {
	service *application.FormService
	audit   *application.AuditService
}

func NewFormHandler(service *application.FormService, audit *application.AuditService) *FormHandler {
	return &FormHandler{service: service, audit: audit}
}

// CreateForm godoc
// @Summary Create a draft form
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body form.CreateFormDTO true "Form schema"
// @Success 201 {object} form.Form
// @Failure 400 {object} response.ErrorResponse
// @Router /forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input form.CreateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, formLabels)
		return
	}

	f, err := h.service.CreateForm(c.Request.Context(), p, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// GetMyForms godoc
// @Summary List the caller's forms
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} form.Form
// @Router /forms [get]
func (h *FormHandler) GetMyForms(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	forms, err := h.service.ListForms(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// GetForm godoc
// @Summary Get an owned form
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {object} form.Form
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id}/schema [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	f, err := h.service.GetForm(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// UpdateForm godoc
// @Summary Replace a form's schema
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param input body form.UpdateFormDTO true "Form schema"
// @Success 200 {object} form.Form
// @Router /forms/{id} [put]
func (h *FormHandler) UpdateForm(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input form.UpdateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, formLabels)
		return
	}

	f, err := h.service.UpdateForm(c.Request.Context(), p, c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteForm godoc
// @Summary Delete a form and its submissions
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {object} response.MessageResponse
// @Router /forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.service.DeleteForm(c.Request.Context(), p, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Form deleted"})
}

// PublishForm godoc
// @Summary Publish a form
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param input body form.PublishSettings false "Publish settings"
// @Success 200 {object} form.Form
// @Failure 409 {object} response.ErrorResponse "Form has no elements"
// @Router /forms/{id}/publish [post]
func (h *FormHandler) PublishForm(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var settings form.PublishSettings
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&settings); err != nil {
			bindError(c, err, nil)
			return
		}
	}

	f, err := h.service.PublishForm(c.Request.Context(), p, c.Param("id"), settings)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// UnpublishForm godoc
// @Summary Stop accepting responses
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {object} form.Form
// @Failure 409 {object} response.ErrorResponse "Form is not published"
// @Router /forms/{id}/unpublish [post]
func (h *FormHandler) UnpublishForm(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	f, err := h.service.UnpublishForm(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// FormHistory godoc
// @Summary Lifecycle history of a form
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {array} audit.AuditLog
// @Router /forms/{id}/history [get]
func (h *FormHandler) FormHistory(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if _, err := h.service.GetForm(c.Request.Context(), p, id); err != nil {
		writeError(c, err)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	logs, err := h.audit.FormHistory(id, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetAllForms godoc
// @Summary List every form
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} form.Form
// @Router /admin/forms [get]
func (h *FormHandler) GetAllForms(c *gin.Context) {
	page, limit := utils.ParsePaging(c, 20)
	forms, err := h.service.ListAllForms(page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}
