package application

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/formify-go/internal/config"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/pkg/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrFormNotFound     = errors.New("form not found")
	ErrFormNotPublished = errors.New("form is not published")
	ErrEmailRequired    = errors.New("this form collects respondent emails")
)

const DefaultFormTitle = "Untitled Form"

// SubmissionNotifier is told about every recorded submission.
type SubmissionNotifier interface {
	Notify(f form.Form, sub form.Submission)
}

// FormService is the persistence gateway for form schemas and submissions.
// Every owner-scoped call checks the principal against the stored owner.
type FormService struct {
	Repos    *repository.Repos
	Origin   string
	Notifier SubmissionNotifier
	now      func() time.Time
}

func NewFormService(repos *repository.Repos) *FormService {
	return &FormService{
		Repos:  repos,
		Origin: config.PublicOrigin,
		now:    time.Now,
	}
}

func (s *FormService) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

func (s *FormService) load(id string) (*form.Form, error) {
	f, err := s.Repos.Form.GetFormByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FormService) loadOwned(ctx context.Context, p session.Principal, id string) (*form.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.UserID == 0 {
		return nil, ErrNotAuthenticated
	}
	f, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != p.UserID {
		return nil, ErrNotAuthorized
	}
	return f, nil
}

func (s *FormService) logAudit(p session.Principal, action, id string, before, after any, msg string) {
	if s.Repos.Audit == nil {
		return
	}
	change := utils.FormChange{Action: action, FormID: id, Before: before, After: after, Message: msg}
	if err := utils.LogFormAudit(p, change, s.Repos.Audit); err != nil {
		log.Printf("[FormService] audit %s %s: %v", action, id, err)
	}
}

func cleanSchema(title, description string, elements []form.Element) (string, string, []form.Element, error) {
	title = form.SanitizeText(title)
	if title == "" {
		title = DefaultFormTitle
	}
	elements = form.SanitizeElements(elements)
	if elements == nil {
		elements = []form.Element{}
	}
	if err := form.CheckElements(elements); err != nil {
		return "", "", nil, err
	}
	return title, form.SanitizeText(description), elements, nil
}

// CreateForm stores a new draft owned by the principal and assigns its id.
func (s *FormService) CreateForm(ctx context.Context, p session.Principal, in form.CreateFormDTO) (*form.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.UserID == 0 {
		return nil, ErrNotAuthenticated
	}

	title, desc, elements, err := cleanSchema(in.Title, in.Description, in.Elements)
	if err != nil {
		return nil, err
	}

	f := &form.Form{
		ID:             uuid.NewString(),
		OwnerID:        p.UserID,
		Title:          title,
		Description:    desc,
		Elements:       elements,
		Status:         form.StatusDraft,
		AllowAnonymous: true,
	}
	if err := s.Repos.Form.CreateForm(f); err != nil {
		return nil, err
	}

	s.logAudit(p, "create", f.ID, nil, f, "Created form "+f.Title)
	return f, nil
}

// UpdateForm replaces the schema of an owned form. Status and PublishedAt are
// only written when present.
func (s *FormService) UpdateForm(ctx context.Context, p session.Principal, id string, in form.UpdateFormDTO) (*form.Form, error) {
	f, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	title, desc, elements, err := cleanSchema(in.Title, in.Description, in.Elements)
	if err != nil {
		return nil, err
	}
	f.Title = title
	f.Description = desc
	f.Elements = elements

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, form.ErrInvalidTransition
		}
		f.Status = *in.Status
	}
	if in.PublishedAt != nil {
		t := in.PublishedAt.UTC()
		f.PublishedAt = &t
	}

	if err := s.Repos.Form.SaveForm(f); err != nil {
		return nil, err
	}
	return f, nil
}

// PublishForm makes an owned form publicly reachable and derives its share
// URL and embed snippet. Publishing again refreshes published_at.
func (s *FormService) PublishForm(ctx context.Context, p session.Principal, id string, settings form.PublishSettings) (*form.Form, error) {
	f, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if len(f.Elements) == 0 {
		return nil, form.ErrEmptyForm
	}

	before := f.Status
	now := s.clock()
	f.Status = form.StatusPublished
	f.PublishedAt = &now
	f.ShareURL = form.ShareURL(s.Origin, f.ID)
	f.EmbedCode = form.EmbedCode(f.ShareURL)
	if settings.AllowAnonymous != nil {
		f.AllowAnonymous = *settings.AllowAnonymous
	}
	if settings.CollectEmails != nil {
		f.CollectEmails = *settings.CollectEmails
	}

	if err := s.Repos.Form.SaveForm(f); err != nil {
		return nil, err
	}

	s.logAudit(p, "publish", f.ID, map[string]any{"status": before}, map[string]any{"status": f.Status, "share_url": f.ShareURL}, "Published form "+f.Title)
	return f, nil
}

// UnpublishForm takes a published form offline. The share URL and embed
// snippet are kept so a later publish hands out the same link.
func (s *FormService) UnpublishForm(ctx context.Context, p session.Principal, id string) (*form.Form, error) {
	f, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if f.Status != form.StatusPublished {
		return nil, form.ErrInvalidTransition
	}

	f.Status = form.StatusUnpublished
	if err := s.Repos.Form.SaveForm(f); err != nil {
		return nil, err
	}

	s.logAudit(p, "unpublish", f.ID, map[string]any{"status": form.StatusPublished}, map[string]any{"status": f.Status}, "Unpublished form "+f.Title)
	return f, nil
}

func (s *FormService) GetForm(ctx context.Context, p session.Principal, id string) (*form.Form, error) {
	return s.loadOwned(ctx, p, id)
}

func (s *FormService) ListForms(ctx context.Context, p session.Principal) ([]form.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.UserID == 0 {
		return nil, ErrNotAuthenticated
	}
	return s.Repos.Form.ListFormsByOwner(p.UserID)
}

// ListAllForms is the admin view across owners.
func (s *FormService) ListAllForms(page, limit int) ([]form.Form, error) {
	return s.Repos.Form.ListFormsPaging(page, limit)
}

// GetPublishedForm needs no principal but fails unless the form is live.
func (s *FormService) GetPublishedForm(ctx context.Context, id string) (*form.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if f.Status != form.StatusPublished {
		return nil, ErrFormNotPublished
	}
	return f, nil
}

// DeleteForm removes an owned form with its submissions and integrations.
func (s *FormService) DeleteForm(ctx context.Context, p session.Principal, id string) error {
	f, err := s.loadOwned(ctx, p, id)
	if err != nil {
		return err
	}

	err = s.Repos.ExecTx(func(r *repository.Repos) error {
		if err := r.Submission.DeleteSubmissionsByForm(id); err != nil {
			return err
		}
		if err := r.Integration.DeleteIntegrationsByForm(id); err != nil {
			return err
		}
		return r.Form.DeleteForm(id)
	})
	if err != nil {
		return err
	}

	s.logAudit(p, "delete", id, f, nil, "Deleted form "+f.Title)
	return nil
}

// RecordSubmission validates values against a published form and stores
// them. p is nil for anonymous respondents.
func (s *FormService) RecordSubmission(ctx context.Context, p *session.Principal, id string, values form.Values, email string) (*form.Submission, error) {
	f, err := s.GetPublishedForm(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.AllowAnonymous && (p == nil || p.UserID == 0) {
		return nil, ErrNotAuthenticated
	}

	if errs := form.ValidateAll(f.Elements, values); len(errs) > 0 {
		return nil, &form.ValidationError{Fields: errs}
	}

	email = strings.TrimSpace(email)
	if email == "" && p != nil {
		email = p.Email
	}
	if f.CollectEmails && email == "" {
		return nil, ErrEmailRequired
	}

	kept := make(form.Values, len(values))
	for _, el := range f.Elements {
		if v, ok := values[el.ID]; ok {
			kept[el.ID] = v
		}
	}

	sub := &form.Submission{
		FormID:          f.ID,
		RespondentEmail: email,
		Data:            datatypes.NewJSONType(kept),
		SubmittedAt:     s.clock(),
	}
	if p != nil && p.UserID != 0 {
		uid := p.UserID
		sub.SubmittedBy = &uid
	}

	if err := s.Repos.Submission.CreateSubmission(sub); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.Notify(*f, *sub)
	}
	return sub, nil
}
