package application

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/integrations"
	"github.com/linskybing/formify-go/internal/repository"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/internal/storage"
	"github.com/linskybing/formify-go/pkg/utils"
)

var (
	ErrStorageUnavailable = errors.New("export storage is not configured")
	ErrSheetsUnavailable  = errors.New("google sheets is not configured")
	ErrSpreadsheetID      = errors.New("spreadsheet id is required")
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	archiveLinkTTL  = 24 * time.Hour
)

// Archive is an export stored in object storage.
type Archive struct {
	ObjectName string    `json:"object_name"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expires_at"`
	Rows       int       `json:"rows"`
}

// SubmissionService is the owner's inbox of recorded responses.
type SubmissionService struct {
	Repos  *repository.Repos
	Forms  *FormService
	Store  storage.ObjectStore
	Sheets integrations.SheetsClient
	now    func() time.Time
}

func NewSubmissionService(repos *repository.Repos, forms *FormService, store storage.ObjectStore, sheets integrations.SheetsClient) *SubmissionService {
	return &SubmissionService{
		Repos:  repos,
		Forms:  forms,
		Store:  store,
		Sheets: sheets,
		now:    time.Now,
	}
}

func (s *SubmissionService) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

// List returns one page of submissions, newest first, and the total count.
func (s *SubmissionService) List(ctx context.Context, p session.Principal, formID string, page, limit int) ([]form.Submission, int64, error) {
	if _, err := s.Forms.GetForm(ctx, p, formID); err != nil {
		return nil, 0, err
	}
	return s.Repos.Submission.ListSubmissionsPaging(formID, page, limit)
}

func (s *SubmissionService) all(ctx context.Context, p session.Principal, formID string) (*form.Form, []form.Submission, error) {
	f, err := s.Forms.GetForm(ctx, p, formID)
	if err != nil {
		return nil, nil, err
	}
	subs, err := s.Repos.Submission.ListSubmissionsByForm(formID)
	if err != nil {
		return nil, nil, err
	}
	return f, subs, nil
}

// Export renders every submission of a form as XLSX.
func (s *SubmissionService) Export(ctx context.Context, p session.Principal, formID string) (*form.Form, []byte, error) {
	f, subs, err := s.all(ctx, p, formID)
	if err != nil {
		return nil, nil, err
	}
	data, err := BuildWorkbook(*f, subs)
	if err != nil {
		return nil, nil, err
	}
	return f, data, nil
}

// Archive uploads an XLSX export to object storage and returns a temporary
// download link.
func (s *SubmissionService) Archive(ctx context.Context, p session.Principal, formID string) (Archive, error) {
	if s.Store == nil {
		return Archive{}, ErrStorageUnavailable
	}
	f, subs, err := s.all(ctx, p, formID)
	if err != nil {
		return Archive{}, err
	}
	data, err := BuildWorkbook(*f, subs)
	if err != nil {
		return Archive{}, err
	}

	now := s.clock()
	name := utils.ExportObjectName(f.ID, now)
	if err := s.Store.UploadObject(ctx, name, xlsxContentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return Archive{}, err
	}
	url, err := s.Store.PresignedURL(ctx, name, archiveLinkTTL)
	if err != nil {
		return Archive{}, err
	}
	return Archive{ObjectName: name, URL: url, ExpiresAt: now.Add(archiveLinkTTL), Rows: len(subs)}, nil
}

// ExportToSheets appends the header and every submission to a spreadsheet
// and returns the number of submission rows written.
func (s *SubmissionService) ExportToSheets(ctx context.Context, p session.Principal, formID, spreadsheetID, sheetName string) (int, error) {
	if s.Sheets == nil {
		return 0, ErrSheetsUnavailable
	}
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return 0, ErrSpreadsheetID
	}
	if strings.TrimSpace(sheetName) == "" {
		sheetName = "Sheet1"
	}

	f, subs, err := s.all(ctx, p, formID)
	if err != nil {
		return 0, err
	}
	if err := s.Sheets.Append(ctx, spreadsheetID, sheetName+"!A1", SubmissionRows(*f, subs)); err != nil {
		return 0, err
	}
	return len(subs), nil
}

// CreateSpreadsheet makes a new spreadsheet for the caller.
func (s *SubmissionService) CreateSpreadsheet(ctx context.Context, p session.Principal, title string) (string, error) {
	if p.UserID == 0 {
		return "", ErrNotAuthenticated
	}
	if s.Sheets == nil {
		return "", ErrSheetsUnavailable
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Formify Responses"
	}
	return s.Sheets.Create(ctx, title)
}
