package builder

import (
	"context"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/session"
)

// Gateway is the durable store behind an editing session.
type Gateway interface {
	CreateForm(ctx context.Context, p session.Principal, in form.CreateFormDTO) (*form.Form, error)
	UpdateForm(ctx context.Context, p session.Principal, id string, in form.UpdateFormDTO) (*form.Form, error)
	PublishForm(ctx context.Context, p session.Principal, id string, settings form.PublishSettings) (*form.Form, error)
	UnpublishForm(ctx context.Context, p session.Principal, id string) (*form.Form, error)
	GetForm(ctx context.Context, p session.Principal, id string) (*form.Form, error)
}
