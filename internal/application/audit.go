package application

import (
	"github.com/linskybing/formify-go/internal/domain/audit"
	"github.com/linskybing/formify-go/internal/repository"
)

type AuditService struct {
	Repos *repository.Repos
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{
		Repos: repos,
	}
}

func (s *AuditService) QueryAuditLogs(params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	if params.Limit <= 0 || params.Limit > 500 {
		params.Limit = 100
	}
	return s.Repos.Audit.GetAuditLogs(params)
}

// FormHistory lists the lifecycle entries of one form, newest first.
func (s *AuditService) FormHistory(formID string, limit int) ([]audit.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.Repos.Audit.ListFormHistory(formID, limit)
}

// CleanupOldLogs purges entries past the retention window, 30 days when
// days is not positive, and returns how many were removed.
func (s *AuditService) CleanupOldLogs(days int) (int64, error) {
	if days <= 0 {
		days = 30
	}
	return s.Repos.Audit.DeleteOldAuditLogs(days)
}
