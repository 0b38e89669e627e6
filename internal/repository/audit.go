package repository

import (
	"time"

	"github.com/linskybing/formify-go/internal/domain/audit"
	"gorm.io/gorm"
)

type AuditQueryParams struct {
	UserID       *uint
	ResourceType *string
	ResourceID   *string
	Action       *string
	StartTime    *time.Time
	EndTime      *time.Time
	Limit        int
	Offset       int
}

// scopes turns the set fields of p into query conditions.
func (p AuditQueryParams) scopes() []func(*gorm.DB) *gorm.DB {
	var out []func(*gorm.DB) *gorm.DB
	where := func(cond string, arg any) {
		out = append(out, func(db *gorm.DB) *gorm.DB { return db.Where(cond, arg) })
	}
	if p.UserID != nil {
		where("user_id = ?", *p.UserID)
	}
	if p.ResourceType != nil {
		where("resource_type = ?", *p.ResourceType)
	}
	if p.ResourceID != nil {
		where("resource_id = ?", *p.ResourceID)
	}
	if p.Action != nil {
		where("action = ?", *p.Action)
	}
	if p.StartTime != nil {
		where("created_at >= ?", *p.StartTime)
	}
	if p.EndTime != nil {
		where("created_at <= ?", *p.EndTime)
	}
	return out
}

type AuditRepo interface {
	GetAuditLogs(params AuditQueryParams) ([]audit.AuditLog, error)
	ListFormHistory(formID string, limit int) ([]audit.AuditLog, error)
	CreateAuditLog(audit *audit.AuditLog) error
	DeleteOldAuditLogs(retentionDays int) (int64, error)
	WithTx(tx *gorm.DB) AuditRepo
}

type DBAuditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *DBAuditRepo {
	return &DBAuditRepo{
		db: db,
	}
}

// DeleteOldAuditLogs removes entries older than retentionDays and reports
// how many went.
func (r *DBAuditRepo) DeleteOldAuditLogs(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	res := r.db.Where("created_at < ?", cutoff).Delete(&audit.AuditLog{})
	return res.RowsAffected, res.Error
}

func (r *DBAuditRepo) GetAuditLogs(params AuditQueryParams) ([]audit.AuditLog, error) {
	var logs []audit.AuditLog
	query := r.db.Model(&audit.AuditLog{}).Scopes(params.scopes()...).Order("created_at DESC, id DESC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}
	err := query.Find(&logs).Error
	return logs, err
}

// ListFormHistory returns the lifecycle entries of one form, newest first.
func (r *DBAuditRepo) ListFormHistory(formID string, limit int) ([]audit.AuditLog, error) {
	resource := audit.ResourceForm
	return r.GetAuditLogs(AuditQueryParams{ResourceType: &resource, ResourceID: &formID, Limit: limit})
}

func (r *DBAuditRepo) CreateAuditLog(audit *audit.AuditLog) error {
	return r.db.Create(audit).Error
}

func (r *DBAuditRepo) WithTx(tx *gorm.DB) AuditRepo {
	if tx == nil {
		return r
	}
	return &DBAuditRepo{
		db: tx,
	}
}
