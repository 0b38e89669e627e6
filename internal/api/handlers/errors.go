package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/application/builder"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/domain/integration"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/pkg/response"
	"github.com/linskybing/formify-go/pkg/utils"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrNotAuthenticated),
		errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrNotAuthorized),
		errors.Is(err, application.ErrReservedAdminUser):
		return http.StatusForbidden
	case errors.Is(err, application.ErrFormNotFound),
		errors.Is(err, application.ErrFormNotPublished),
		errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrIntegrationNotFound),
		errors.Is(err, builder.ErrSessionNotFound),
		errors.Is(err, builder.ErrElementNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, form.ErrEmptyForm),
		errors.Is(err, form.ErrInvalidTransition),
		errors.Is(err, builder.ErrNoIdentity),
		errors.Is(err, builder.ErrNothingToSave),
		errors.Is(err, builder.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, builder.ErrElementLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, form.ErrUnknownElementType),
		errors.Is(err, form.ErrDuplicateElementID),
		errors.Is(err, form.ErrMissingElementID),
		errors.Is(err, form.ErrOptionsRequired),
		errors.Is(err, form.ErrOptionsNotAllowed),
		errors.Is(err, form.ErrValueKind),
		errors.Is(err, builder.ErrValidationNotApplicable),
		errors.Is(err, builder.ErrInvalidPattern),
		errors.Is(err, builder.ErrInvalidLengthRange),
		errors.Is(err, builder.ErrOptionsNotApplicable),
		errors.Is(err, builder.ErrOptionIndex),
		errors.Is(err, application.ErrEmailRequired),
		errors.Is(err, application.ErrEmptyPrompt),
		errors.Is(err, application.ErrSpreadsheetID),
		errors.Is(err, integration.ErrUnknownType),
		errors.Is(err, integration.ErrMissingURL),
		errors.Is(err, integration.ErrMissingEmail),
		errors.Is(err, integration.ErrMissingSheet),
		errors.Is(err, integration.ErrInvalidMethod):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrStorageUnavailable),
		errors.Is(err, application.ErrSheetsUnavailable),
		errors.Is(err, application.ErrSessionsUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, builder.ErrSyncFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError renders err with the status statusFor picks. Validation errors
// carry their per-field messages.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}

	var verr *form.ValidationError
	if errors.As(err, &verr) {
		c.JSON(status, response.ValidationErrorResponse{Error: err.Error(), Fields: verr.Fields})
		return
	}
	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}

// bindError turns binding failures into readable messages.
func bindError(c *gin.Context, err error, labels map[string]string) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		field := fe.StructField()
		lbl, ok := labels[field]
		if !ok {
			lbl = strings.ToLower(field)
		}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", lbl)
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", lbl)
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", lbl, fe.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", lbl)
		}
		msgs = append(msgs, msg)
	}
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: strings.Join(msgs, "; ")})
}

// principal reads the authenticated caller, answering 401 when there is none.
func principal(c *gin.Context) (session.Principal, bool) {
	p, err := utils.GetPrincipalFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return session.Principal{}, false
	}
	return p, true
}
