package builder

import (
	"errors"

	"github.com/linskybing/formify-go/internal/domain/form"
)

var (
	ErrElementLimit            = errors.New("element limit reached")
	ErrElementNotFound         = errors.New("element not found")
	ErrUnknownElementType      = form.ErrUnknownElementType
	ErrValidationNotApplicable = errors.New("validation rule does not apply to this element type")
	ErrInvalidPattern          = errors.New("pattern is not a valid regular expression")
	ErrInvalidLengthRange      = errors.New("minimum length exceeds maximum length")
	ErrOptionsNotApplicable    = errors.New("element type has no options")
	ErrOptionIndex             = errors.New("option index out of range")
	ErrEmptyForm               = form.ErrEmptyForm
	ErrInvalidTransition       = form.ErrInvalidTransition
	ErrNoIdentity              = errors.New("form has not been saved yet")
	ErrNothingToSave           = errors.New("add a title or at least one element before saving")
	ErrSyncFailed              = errors.New("form changes could not be saved")
	ErrSessionNotFound         = errors.New("editing session not found")
	ErrSessionClosed           = errors.New("editing session is closed")
	ErrOutboxClosed            = errors.New("sync outbox is closed")
)
