package application

import (
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/repository"
)

// Stats are the dashboard counters.
type Stats struct {
	TotalForms       int64 `json:"total_forms"`
	PublishedForms   int64 `json:"published_forms"`
	DraftForms       int64 `json:"draft_forms"`
	UnpublishedForms int64 `json:"unpublished_forms"`
	TotalSubmissions int64 `json:"total_submissions"`
}

type AdminService struct {
	Repos *repository.Repos
}

func NewAdminService(repos *repository.Repos) *AdminService {
	return &AdminService{Repos: repos}
}

// Stats counts the forms and submissions of one owner, or of everyone when
// ownerID is 0.
func (s *AdminService) Stats(ownerID uint) (Stats, error) {
	byStatus, err := s.Repos.Form.CountFormsByStatus(ownerID)
	if err != nil {
		return Stats{}, err
	}
	subs, err := s.Repos.Submission.CountSubmissions(ownerID)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{
		PublishedForms:   byStatus[form.StatusPublished],
		DraftForms:       byStatus[form.StatusDraft],
		UnpublishedForms: byStatus[form.StatusUnpublished],
		TotalSubmissions: subs,
	}
	for _, n := range byStatus {
		st.TotalForms += n
	}
	return st, nil
}
