package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/domain/integration"
	"github.com/linskybing/formify-go/pkg/response"
	"github.com/linskybing/formify-go/pkg/utils"
)

var integrationLabels = map[string]string{
	"Name": "name",
	"Type": "type",
}

// TestResult reports a test delivery.
type TestResult struct {
	Success     bool                    `json:"success"`
	Message     string                  `json:"message"`
	Integration integration.Integration `json:"integration"`
}

type IntegrationHandler struct {
	svc *application.IntegrationService
}

func NewIntegrationHandler(svc *application.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{svc: svc}
}

// ListIntegrations godoc
// @Summary Integrations of a form
// @Tags integrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {array} integration.Integration
// @Router /forms/{id}/integrations [get]
func (h *IntegrationHandler) ListIntegrations(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateIntegration godoc
// @Summary Connect a form to an external service
// @Tags integrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param input body integration.CreateIntegrationInput true "Integration"
// @Success 201 {object} integration.Integration
// @Failure 400 {object} response.ErrorResponse
// @Router /forms/{id}/integrations [post]
func (h *IntegrationHandler) CreateIntegration(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input integration.CreateIntegrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, integrationLabels)
		return
	}

	in, err := h.svc.Create(c.Request.Context(), p, c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, in)
}

// UpdateIntegration godoc
// @Summary Change an integration
// @Description A configuration change resets the status to pending.
// @Tags integrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param iid path int true "Integration ID"
// @Param input body integration.UpdateIntegrationInput true "Changes"
// @Success 200 {object} integration.Integration
// @Router /forms/{id}/integrations/{iid} [put]
func (h *IntegrationHandler) UpdateIntegration(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	iid, err := utils.ParseIDParam(c, "iid")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	var input integration.UpdateIntegrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, integrationLabels)
		return
	}

	in, err := h.svc.Update(c.Request.Context(), p, c.Param("id"), iid, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

// DeleteIntegration godoc
// @Summary Remove an integration
// @Tags integrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param iid path int true "Integration ID"
// @Success 200 {object} response.MessageResponse
// @Router /forms/{id}/integrations/{iid} [delete]
func (h *IntegrationHandler) DeleteIntegration(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	iid, err := utils.ParseIDParam(c, "iid")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), p, c.Param("id"), iid); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Integration deleted"})
}

// TestIntegration godoc
// @Summary Send a sample payload
// @Description A failed delivery is reported in the body; the integration
// @Description status records the outcome either way.
// @Tags integrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param iid path int true "Integration ID"
// @Success 200 {object} TestResult
// @Router /forms/{id}/integrations/{iid}/test [post]
func (h *IntegrationHandler) TestIntegration(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	iid, err := utils.ParseIDParam(c, "iid")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	in, err := h.svc.Test(c.Request.Context(), p, c.Param("id"), iid)
	if err != nil && in.ID == 0 {
		writeError(c, err)
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, TestResult{Success: false, Message: err.Error(), Integration: in})
		return
	}
	c.JSON(http.StatusOK, TestResult{Success: true, Message: "Test payload delivered", Integration: in})
}
