package handlers

import (
	_ "embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/application/builder"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/pkg/response"
	"github.com/linskybing/formify-go/pkg/utils"
)

//go:embed templates/public_form.html
var publicFormHTML string

var publicFormTemplate = template.Must(template.New("public_form").Parse(publicFormHTML))

type optionView struct {
	Value    string
	Selected bool
}

type fieldView struct {
	ID          string
	Type        form.ElementType
	Label       string
	Placeholder string
	Required    bool
	Value       string
	Checked     bool
	Options     []optionView
	Error       string
}

type publicPage struct {
	Form      *form.Form
	Fields    []fieldView
	Progress  builder.Progress
	Percent   int
	Email     string
	Message   string
	Action    string
	Embed     bool
	Submitted bool
}

func newPublicPage(c *gin.Context, f *form.Form, values form.Values, errs map[string]string, progress builder.Progress) publicPage {
	action := "/forms/" + f.ID
	embed := c.Query("embed") == "true"
	if embed {
		action += "?embed=true"
	}

	fields := make([]fieldView, 0, len(f.Elements))
	for _, el := range f.Elements {
		fv := fieldView{
			ID:          el.ID,
			Type:        el.Type,
			Label:       el.Label,
			Placeholder: el.Placeholder,
			Required:    el.Required,
			Error:       errs[el.ID],
		}
		if v := values.Get(el.ID); v != nil {
			fv.Value = v.Str
			fv.Checked = v.Kind == form.KindBool && v.Bool
		}
		for _, opt := range el.Options {
			fv.Options = append(fv.Options, optionView{Value: opt, Selected: opt == fv.Value})
		}
		fields = append(fields, fv)
	}

	return publicPage{
		Form:     f,
		Fields:   fields,
		Progress: progress,
		Percent:  int(progress.Ratio * 100),
		Action:   action,
		Embed:    embed,
	}
}

func renderPublic(c *gin.Context, status int, page publicPage) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if page.Embed {
		c.Header("Content-Security-Policy", "frame-ancestors *")
	}
	if err := publicFormTemplate.Execute(c.Writer, page); err != nil {
		log.Printf("[Public] render form %s: %v", page.Form.ID, err)
	}
}

func optionalPrincipal(c *gin.Context) *session.Principal {
	p, err := utils.GetPrincipalFromContext(c)
	if err != nil {
		return nil
	}
	return &p
}

type PublicHandler struct {
	forms *application.FormService
}

func NewPublicHandler(forms *application.FormService) *PublicHandler {
	return &PublicHandler{forms: forms}
}

// ShowForm godoc
// @Summary Public form page
// @Description Renders a published form. With embed=true the page has no
// @Description chrome and a transparent background for use in an iframe.
// @Tags public
// @Produce html
// @Param id path string true "Form ID"
// @Param embed query bool false "Embed mode"
// @Success 200 {string} string "HTML page"
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id} [get]
func (h *PublicHandler) ShowForm(c *gin.Context) {
	f, err := h.forms.GetPublishedForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}
	preview := builder.NewPreview(f.Elements)
	renderPublic(c, http.StatusOK, newPublicPage(c, f, nil, nil, preview.Progress()))
}

// SubmitForm godoc
// @Summary Submit the public form page
// @Tags public
// @Accept x-www-form-urlencoded
// @Produce html
// @Param id path string true "Form ID"
// @Success 200 {string} string "Thank-you page"
// @Failure 400 {string} string "Form page with errors"
// @Router /forms/{id} [post]
func (h *PublicHandler) SubmitForm(c *gin.Context) {
	ctx := c.Request.Context()
	f, err := h.forms.GetPublishedForm(ctx, c.Param("id"))
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form data")
		return
	}

	values := form.ValuesFromForm(f.Elements, c.Request.PostForm)
	preview := builder.NewPreview(f.Elements)
	for id, v := range values {
		if _, err := preview.Set(id, v); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
	}
	email := strings.TrimSpace(c.PostForm("respondent_email"))

	errs, ok := preview.Submit()
	if ok {
		_, err = h.forms.RecordSubmission(ctx, optionalPrincipal(c), f.ID, values, email)
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			errs, ok = verr.Fields, false
		} else if err != nil {
			page := newPublicPage(c, f, values, nil, preview.Progress())
			page.Email = email
			page.Message = err.Error()
			renderPublic(c, statusFor(err), page)
			return
		}
	}

	page := newPublicPage(c, f, values, errs, preview.Progress())
	page.Email = email
	if !ok {
		page.Message = "Please correct the highlighted fields."
		renderPublic(c, http.StatusBadRequest, page)
		return
	}
	page.Submitted = true
	renderPublic(c, http.StatusOK, page)
}

// GetPublicForm godoc
// @Summary Published form schema
// @Tags public
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} form.Form
// @Failure 404 {object} response.ErrorResponse "Not found or not published"
// @Router /api/public/forms/{id} [get]
func (h *PublicHandler) GetPublicForm(c *gin.Context) {
	f, err := h.forms.GetPublishedForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// CreateSubmission godoc
// @Summary Submit a response
// @Description Checkbox values are booleans; every other value is a string.
// @Tags public
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param input body form.SubmissionDTO true "Values keyed by element ID"
// @Success 201 {object} form.Submission
// @Failure 400 {object} response.ValidationErrorResponse
// @Failure 401 {object} response.ErrorResponse "Form requires sign-in"
// @Failure 404 {object} response.ErrorResponse
// @Router /api/public/forms/{id}/submissions [post]
func (h *PublicHandler) CreateSubmission(c *gin.Context) {
	ctx := c.Request.Context()
	f, err := h.forms.GetPublishedForm(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var input form.SubmissionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, map[string]string{"Values": "values", "RespondentEmail": "respondent email"})
		return
	}
	values, err := form.DecodeValues(f.Elements, input.Values)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	sub, err := h.forms.RecordSubmission(ctx, optionalPrincipal(c), f.ID, values, input.RespondentEmail)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}
