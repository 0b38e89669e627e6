package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/pkg/utils"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type SubmissionPage struct {
	Items []form.Submission `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type SheetsExportInput struct {
	SpreadsheetID string `json:"spreadsheet_id" binding:"required"`
	SheetName     string `json:"sheet_name"`
}

type SheetsExportResponse struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Rows          int    `json:"rows"`
}

type CreateSpreadsheetInput struct {
	Title string `json:"title" binding:"max=200"`
}

type SubmissionHandler struct {
	svc *application.SubmissionService
}

func NewSubmissionHandler(svc *application.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// ListSubmissions godoc
// @Summary Responses to an owned form, newest first
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} SubmissionPage
// @Router /forms/{id}/submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	page, limit := utils.ParsePaging(c, 20)
	subs, total, err := h.svc.List(c.Request.Context(), p, c.Param("id"), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SubmissionPage{Items: subs, Total: total, Page: page, Limit: limit})
}

// ExportSubmissions godoc
// @Summary Download responses as XLSX
// @Tags submissions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {file} file
// @Router /forms/{id}/submissions/export [get]
func (h *SubmissionHandler) ExportSubmissions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	f, data, err := h.svc.Export(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	name := unsafeFilename.ReplaceAllString(f.Title, "_")
	if name == "" || name == "_" {
		name = "form"
	}
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ArchiveSubmissions godoc
// @Summary Store an XLSX export in object storage
// @Description Returns a download link valid for 24 hours.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {object} application.Archive
// @Failure 503 {object} response.ErrorResponse "Storage not configured"
// @Router /forms/{id}/submissions/archive [post]
func (h *SubmissionHandler) ArchiveSubmissions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	archive, err := h.svc.Archive(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, archive)
}

// ExportToSheets godoc
// @Summary Append responses to a Google Sheet
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param input body SheetsExportInput true "Target spreadsheet"
// @Success 200 {object} SheetsExportResponse
// @Failure 503 {object} response.ErrorResponse "Sheets not configured"
// @Router /forms/{id}/submissions/sheets [post]
func (h *SubmissionHandler) ExportToSheets(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input SheetsExportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, map[string]string{"SpreadsheetID": "spreadsheet id"})
		return
	}

	rows, err := h.svc.ExportToSheets(c.Request.Context(), p, c.Param("id"), input.SpreadsheetID, input.SheetName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SheetsExportResponse{SpreadsheetID: input.SpreadsheetID, Rows: rows})
}

// CreateSpreadsheet godoc
// @Summary Create a Google Sheet for responses
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body CreateSpreadsheetInput false "Spreadsheet title"
// @Success 201 {object} SheetsExportResponse
// @Router /sheets [post]
func (h *SubmissionHandler) CreateSpreadsheet(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input CreateSpreadsheetInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err, formLabels)
			return
		}
	}

	id, err := h.svc.CreateSpreadsheet(c.Request.Context(), p, input.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SheetsExportResponse{SpreadsheetID: id})
}
