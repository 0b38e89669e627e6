package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/application/builder"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/pkg/response"
)

// SessionView is the state of an editing session returned by every schema
// operation.
type SessionView struct {
	SessionID  string             `json:"session_id"`
	Form       *form.Form         `json:"form"`
	SelectedID string             `json:"selected_id,omitempty"`
	Sync       builder.SyncStatus `json:"sync"`
}

type previewValueInput struct {
	Value json.RawMessage `json:"value"`
}

type BuilderHandler struct {
	registry *builder.Registry
}

func NewBuilderHandler(registry *builder.Registry) *BuilderHandler {
	return &BuilderHandler{registry: registry}
}

func view(s *builder.Session) SessionView {
	f, selected := s.Snapshot()
	return SessionView{SessionID: s.ID, Form: f, SelectedID: selected, Sync: s.SyncStatus()}
}

// session resolves :sid for the caller, answering the request on failure.
func (h *BuilderHandler) session(c *gin.Context) (*builder.Session, bool) {
	p, ok := principal(c)
	if !ok {
		return nil, false
	}
	s, err := h.registry.Get(p, c.Param("sid"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return s, true
}

func optionIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid option index"})
		return 0, false
	}
	return i, true
}

// Palette godoc
// @Summary Element types that can be dropped on the canvas
// @Tags builder
// @Produce json
// @Success 200 {array} form.PaletteItem
// @Router /builder/palette [get]
func (h *BuilderHandler) Palette(c *gin.Context) {
	c.JSON(http.StatusOK, form.Palette())
}

// OpenSession godoc
// @Summary Open an editing session
// @Description Opens a new untitled draft, or an owned form when form_id is set.
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body form.OpenSessionDTO false "Form to edit"
// @Success 201 {object} SessionView
// @Router /builder/sessions [post]
func (h *BuilderHandler) OpenSession(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input form.OpenSessionDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err, nil)
			return
		}
	}

	s, err := h.registry.Open(c.Request.Context(), p, input.FormID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view(s))
}

// GetSession godoc
// @Summary Current schema of an editing session
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Success 200 {object} SessionView
// @Failure 404 {object} response.ErrorResponse
// @Router /builder/sessions/{sid} [get]
func (h *BuilderHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view(s))
}

// CloseSession godoc
// @Summary Close an editing session
// @Description Pending changes are written before the session goes away.
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Success 200 {object} response.MessageResponse
// @Router /builder/sessions/{sid} [delete]
func (h *BuilderHandler) CloseSession(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.registry.Close(c.Request.Context(), p, c.Param("sid")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Session closed"})
}

// SyncStatus godoc
// @Summary Background save status
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Success 200 {object} builder.SyncStatus
// @Router /builder/sessions/{sid}/sync [get]
func (h *BuilderHandler) SyncStatus(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.SyncStatus())
}

// InsertElement godoc
// @Summary Drop a palette element on the canvas
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param input body form.InsertElementDTO true "Element type and drop target"
// @Success 201 {object} SessionView
// @Failure 422 {object} response.ErrorResponse "Element limit reached"
// @Router /builder/sessions/{sid}/elements [post]
func (h *BuilderHandler) InsertElement(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var input form.InsertElementDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, nil)
		return
	}
	if _, err := s.Insert(input.Type, input.DropTarget); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view(s))
}

// ReorderElements godoc
// @Summary Move an element onto another element's position
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param input body form.ReorderDTO true "Source and target element IDs"
// @Success 200 {object} SessionView
// @Router /builder/sessions/{sid}/elements/order [put]
func (h *BuilderHandler) ReorderElements(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var input form.ReorderDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, nil)
		return
	}
	if err := s.Reorder(input.SourceID, input.TargetID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(s))
}

// RemoveElement godoc
// @Summary Remove an element
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param eid path string true "Element ID"
// @Success 200 {object} SessionView
// @Router /builder/sessions/{sid}/elements/{eid} [delete]
func (h *BuilderHandler) RemoveElement(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Remove(c.Param("eid")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(s))
}

// UpdateElement godoc
// @Summary Edit an element's properties
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param eid path string true "Element ID"
// @Param input body form.ElementPatch true "Changed properties"
// @Success 200 {object} SessionView
// @Failure 400 {object} response.ErrorResponse "Rule does not apply or pattern is invalid"
// @Router /builder/sessions/{sid}/elements/{eid} [patch]
func (h *BuilderHandler) UpdateElement(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var patch form.ElementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err, nil)
		return
	}
	if _, err := s.UpdateElement(c.Param("eid"), patch); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(s))
}

// SelectElement godoc
// @Summary Select the element shown in the inspector
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param input body form.SelectDTO true "Element ID; empty clears the selection"
// @Success 200 {object} SessionView
// @Router /builder/sessions/{sid}/selection [put]
func (h *BuilderHandler) SelectElement(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var input form.SelectDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, nil)
		return
	}
	if _, err := s.Select(input.ElementID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(s))
}

// UpdateHeader godoc
// @Summary Edit the form title and description
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param input body form.HeaderDTO true "Title and description"
// @Success 200 {object} SessionView
// @Router /builder/sessions/{sid}/header [put]
func (h *BuilderHandler) UpdateHeader(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var input form.HeaderDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, formLabels)
		return
	}
	if input.Title != nil {
		if err := s.SetTitle(*input.Title); err != nil {
			writeError(c, err)
			return
		}
	}
	if input.Description != nil {
		if err := s.SetDescription(*input.Description); err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, view(s))
}

// AddOption godoc
// @Summary Append an option to a select or radio element
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param eid path string true "Element ID"
// @Param input body form.OptionDTO true "Option text"
// @Success 200 {object} SessionView
// @Router /builder/sessions/{sid}/elements/{eid}/options [post]
func (h *BuilderHandler) AddOption(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var input form.OptionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, nil)
		return
	}
	if _, err := s.AddOption(c.Param("eid"), input.Value); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(s))
}

// UpdateOption godoc
// @Summary Rename an option
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param eid path string true "Element ID"
// @Param index path int true "Option index"
// @Param input body form.OptionDTO true "Option text"
// @Success 200 {object} SessionView
// @Router /builder/sessions/{sid}/elements/{eid}/options/{index} [put]
func (h *BuilderHandler) UpdateOption(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	i, ok := optionIndex(c)
	if !ok {
		return
	}
	var input form.OptionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, nil)
		return
	}
	if _, err := s.UpdateOption(c.Param("eid"), i, input.Value); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(s))
}

// RemoveOption godoc
// @Summary Remove an option
// @Description Removing the last remaining option is ignored.
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param eid path string true "Element ID"
// @Param index path int true "Option index"
// @Success 200 {object} SessionView
// @Router /builder/sessions/{sid}/elements/{eid}/options/{index} [delete]
func (h *BuilderHandler) RemoveOption(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	i, ok := optionIndex(c)
	if !ok {
		return
	}
	if _, err := s.RemoveOption(c.Param("eid"), i); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(s))
}

// Save godoc
// @Summary Save the session's form
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Success 200 {object} form.Form
// @Failure 409 {object} response.ErrorResponse "Nothing to save"
// @Router /builder/sessions/{sid}/save [post]
func (h *BuilderHandler) Save(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	f, err := s.Save(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Publish godoc
// @Summary Publish the session's form
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param input body form.PublishSettings false "Publish settings"
// @Success 200 {object} form.Form
// @Failure 409 {object} response.ErrorResponse "Form has no elements"
// @Router /builder/sessions/{sid}/publish [post]
func (h *BuilderHandler) Publish(c *gin.Context) {
	s, ok := h.session(c)
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
	f, err := s.Publish(c.Request.Context(), settings)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Unpublish godoc
// @Summary Unpublish the session's form
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Success 200 {object} form.Form
// @Failure 409 {object} response.ErrorResponse "Form is not published"
// @Router /builder/sessions/{sid}/unpublish [post]
func (h *BuilderHandler) Unpublish(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	f, err := s.Unpublish(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// GetPreview godoc
// @Summary Design-time preview state
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Success 200 {object} builder.PreviewState
// @Router /builder/sessions/{sid}/preview [get]
func (h *BuilderHandler) GetPreview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.PreviewState())
}

// SetPreviewValue godoc
// @Summary Enter a value in the preview
// @Description Checkbox elements take a boolean, every other type a string.
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Param eid path string true "Element ID"
// @Param input body previewValueInput true "Value"
// @Success 200 {object} builder.PreviewState
// @Router /builder/sessions/{sid}/preview/values/{eid} [put]
func (h *BuilderHandler) SetPreviewValue(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var input previewValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, nil)
		return
	}

	id := c.Param("eid")
	f, _ := s.Snapshot()
	idx := f.IndexOf(id)
	if idx < 0 {
		writeError(c, builder.ErrElementNotFound)
		return
	}
	values, err := form.DecodeValues(f.Elements[idx:idx+1], map[string]json.RawMessage{id: input.Value})
	if err != nil {
		writeError(c, err)
		return
	}
	v, ok := values[id]
	if !ok {
		v = form.Value{Kind: form.KindFor(f.Elements[idx].Type)}
	}

	state, err := s.PreviewSet(id, v)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SubmitPreview godoc
// @Summary Validate every preview value
// @Description Nothing is recorded; a valid preview is only marked submitted.
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Success 200 {object} builder.PreviewState
// @Failure 400 {object} response.ValidationErrorResponse
// @Router /builder/sessions/{sid}/preview/submit [post]
func (h *BuilderHandler) SubmitPreview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	state, valid, err := s.PreviewSubmit()
	if err != nil {
		writeError(c, err)
		return
	}
	if !valid {
		c.JSON(http.StatusBadRequest, response.ValidationErrorResponse{Error: "preview has invalid values", Fields: state.Errors})
		return
	}
	c.JSON(http.StatusOK, state)
}

// ResetPreview godoc
// @Summary Clear the preview
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Session ID"
// @Success 200 {object} builder.PreviewState
// @Router /builder/sessions/{sid}/preview [delete]
func (h *BuilderHandler) ResetPreview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	state, err := s.PreviewReset()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
