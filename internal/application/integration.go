package application

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/domain/integration"
	"github.com/linskybing/formify-go/internal/integrations"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/internal/session"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrIntegrationNotFound = errors.New("integration not found")

const deliveryTimeout = 15 * time.Second

// Deliverer sends one payload through one integration.
type Deliverer interface {
	Send(ctx context.Context, in integration.Integration, p integrations.Payload) error
}

// IntegrationService manages the outbound integrations of a form and fans
// every recorded submission out to the enabled ones.
type IntegrationService struct {
	Repos    *repository.Repos
	Forms    *FormService
	Delivery Deliverer

	now      func() time.Time
	inflight sync.WaitGroup
}

func NewIntegrationService(repos *repository.Repos, forms *FormService, delivery Deliverer) *IntegrationService {
	return &IntegrationService{
		Repos:    repos,
		Forms:    forms,
		Delivery: delivery,
		now:      time.Now,
	}
}

func (s *IntegrationService) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

func (s *IntegrationService) loadOwned(ctx context.Context, p session.Principal, formID string, id uint) (*form.Form, integration.Integration, error) {
	f, err := s.Forms.GetForm(ctx, p, formID)
	if err != nil {
		return nil, integration.Integration{}, err
	}
	in, err := s.Repos.Integration.GetIntegrationByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && in.FormID != formID) {
		return nil, integration.Integration{}, ErrIntegrationNotFound
	}
	if err != nil {
		return nil, integration.Integration{}, err
	}
	return f, in, nil
}

func (s *IntegrationService) List(ctx context.Context, p session.Principal, formID string) ([]integration.Integration, error) {
	if _, err := s.Forms.GetForm(ctx, p, formID); err != nil {
		return nil, err
	}
	return s.Repos.Integration.ListIntegrationsByForm(formID)
}

func (s *IntegrationService) Create(ctx context.Context, p session.Principal, formID string, input integration.CreateIntegrationInput) (integration.Integration, error) {
	if _, err := s.Forms.GetForm(ctx, p, formID); err != nil {
		return integration.Integration{}, err
	}
	if !input.Type.Valid() {
		return integration.Integration{}, integration.ErrUnknownType
	}
	cfg := input.Config
	if err := cfg.Check(input.Type); err != nil {
		return integration.Integration{}, err
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}
	in := integration.Integration{
		FormID:  formID,
		OwnerID: p.UserID,
		Name:    strings.TrimSpace(input.Name),
		Type:    input.Type,
		Enabled: enabled,
		Config:  datatypes.NewJSONType(cfg),
		Status:  integration.StatusPending,
	}
	if err := s.Repos.Integration.CreateIntegration(&in); err != nil {
		return integration.Integration{}, err
	}
	return in, nil
}

func (s *IntegrationService) Update(ctx context.Context, p session.Principal, formID string, id uint, input integration.UpdateIntegrationInput) (integration.Integration, error) {
	_, in, err := s.loadOwned(ctx, p, formID, id)
	if err != nil {
		return integration.Integration{}, err
	}

	if input.Name != nil {
		in.Name = strings.TrimSpace(*input.Name)
	}
	if input.Enabled != nil {
		in.Enabled = *input.Enabled
	}
	if input.Config != nil {
		cfg := *input.Config
		if err := cfg.Check(in.Type); err != nil {
			return integration.Integration{}, err
		}
		in.Config = datatypes.NewJSONType(cfg)
		in.Status = integration.StatusPending
		in.LastError = ""
	}

	if err := s.Repos.Integration.SaveIntegration(&in); err != nil {
		return integration.Integration{}, err
	}
	return in, nil
}

func (s *IntegrationService) Delete(ctx context.Context, p session.Principal, formID string, id uint) error {
	if _, _, err := s.loadOwned(ctx, p, formID, id); err != nil {
		return err
	}
	return s.Repos.Integration.DeleteIntegration(id)
}

// Test sends a sample payload through the integration and records the
// outcome. A failed delivery is returned alongside the updated integration.
func (s *IntegrationService) Test(ctx context.Context, p session.Principal, formID string, id uint) (integration.Integration, error) {
	f, in, err := s.loadOwned(ctx, p, formID, id)
	if err != nil {
		return integration.Integration{}, err
	}
	sendErr := s.deliver(ctx, &in, integrations.TestPayload(*f, s.clock()))
	return in, sendErr
}

// deliver sends p and stamps the result on in.
func (s *IntegrationService) deliver(ctx context.Context, in *integration.Integration, p integrations.Payload) error {
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	err := s.Delivery.Send(ctx, *in, p)
	now := s.clock()
	in.LastTriggered = &now
	if err != nil {
		in.Status = integration.StatusError
		in.LastError = err.Error()
		log.Printf("[Integrations] %s integration %d for form %s failed: %v", in.Type, in.ID, in.FormID, err)
	} else {
		in.Status = integration.StatusActive
		in.LastError = ""
	}
	if saveErr := s.Repos.Integration.SaveIntegration(in); saveErr != nil {
		log.Printf("[Integrations] failed to save status of integration %d: %v", in.ID, saveErr)
	}
	return err
}

// Notify dispatches a submission to every enabled integration of its form in
// the background.
func (s *IntegrationService) Notify(f form.Form, sub form.Submission) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.dispatch(context.Background(), f, sub)
	}()
}

func (s *IntegrationService) dispatch(ctx context.Context, f form.Form, sub form.Submission) {
	list, err := s.Repos.Integration.ListEnabledIntegrations(f.ID)
	if err != nil {
		log.Printf("[Integrations] failed to list integrations of form %s: %v", f.ID, err)
		return
	}
	if len(list) == 0 {
		return
	}

	payload := integrations.NewPayload(f, sub)
	for i := range list {
		_ = s.deliver(ctx, &list[i], payload)
	}
}

// Wait blocks until background dispatches have finished.
func (s *IntegrationService) Wait() {
	s.inflight.Wait()
}
