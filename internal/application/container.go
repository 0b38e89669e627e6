package application

import (
	"github.com/linskybing/formify-go/internal/application/builder"
	"github.com/linskybing/formify-go/internal/assistant"
	"github.com/linskybing/formify-go/internal/config"
	"github.com/linskybing/formify-go/internal/integrations"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/internal/storage"
)

// Deps are the external systems the services talk to. Store, Sheets, Mailer
// and AI may be nil; the features that need them then report that they are
// not configured.
type Deps struct {
	Sessions session.Store
	Store    storage.ObjectStore
	Sheets   integrations.SheetsClient
	Mailer   integrations.Mailer
	AI       assistant.Completer
}

type Services struct {
	Admin       *AdminService
	Audit       *AuditService
	User        *UserService
	Form        *FormService
	Submission  *SubmissionService
	Integration *IntegrationService
	Generator   *GeneratorService
	Chat        *ChatService
	Builder     *builder.Registry
}

func New(repos *repository.Repos, deps Deps) *Services {
	forms := NewFormService(repos)
	hooks := NewIntegrationService(repos, forms, integrations.NewDispatcher(deps.Mailer, deps.Sheets))
	forms.Notifier = hooks

	return &Services{
		Admin:       NewAdminService(repos),
		Audit:       NewAuditService(repos),
		User:        NewUserService(repos, deps.Sessions),
		Form:        forms,
		Submission:  NewSubmissionService(repos, forms, deps.Store, deps.Sheets),
		Integration: hooks,
		Generator:   NewGeneratorService(forms, deps.AI),
		Chat:        NewChatService(deps.AI),
		Builder: builder.NewRegistry(forms, builder.Options{
			MaxElements: config.BuilderMaxElements,
			Origin:      config.PublicOrigin,
		}),
	}
}
