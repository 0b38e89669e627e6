package handlers

import (
	"github.com/linskybing/formify-go/internal/application"
)

type Handlers struct {
	Admin       *AdminHandler
	User        *UserHandler
	Form        *FormHandler
	Builder     *BuilderHandler
	Public      *PublicHandler
	Submission  *SubmissionHandler
	Integration *IntegrationHandler
	Assistant   *AssistantHandler
}

func New(svc *application.Services) *Handlers {
	return &Handlers{
		Admin:       NewAdminHandler(svc.Admin, svc.Audit),
		User:        NewUserHandler(svc.User),
		Form:        NewFormHandler(svc.Form, svc.Audit),
		Builder:     NewBuilderHandler(svc.Builder),
		Public:      NewPublicHandler(svc.Form),
		Submission:  NewSubmissionHandler(svc.Submission),
		Integration: NewIntegrationHandler(svc.Integration),
		Assistant:   NewAssistantHandler(svc.Generator, svc.Chat),
	}
}
