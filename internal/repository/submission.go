package repository

import (
	"github.com/linskybing/formify-go/internal/domain/form"
	"gorm.io/gorm"
)

type SubmissionRepo interface {
	CreateSubmission(s *form.Submission) error
	ListSubmissionsPaging(formID string, page, limit int) ([]form.Submission, int64, error)
	ListSubmissionsByForm(formID string) ([]form.Submission, error)
	DeleteSubmissionsByForm(formID string) error
	CountSubmissions(ownerID uint) (int64, error)
	WithTx(tx *gorm.DB) SubmissionRepo
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{
		db: db,
	}
}

func (r *DBSubmissionRepo) CreateSubmission(s *form.Submission) error {
	return r.db.Create(s).Error
}

// ListSubmissionsPaging returns one page, newest first, and the total count.
func (r *DBSubmissionRepo) ListSubmissionsPaging(formID string, page, limit int) ([]form.Submission, int64, error) {
	var (
		subs  []form.Submission
		total int64
	)

	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 20
	}

	query := r.db.Model(&form.Submission{}).Where("form_id = ?", formID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("submitted_at desc").Offset(offset).Limit(limit).Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// ListSubmissionsByForm returns every submission in the order received.
func (r *DBSubmissionRepo) ListSubmissionsByForm(formID string) ([]form.Submission, error) {
	var subs []form.Submission
	err := r.db.Where("form_id = ?", formID).Order("submitted_at asc").Find(&subs).Error
	return subs, err
}

func (r *DBSubmissionRepo) DeleteSubmissionsByForm(formID string) error {
	return r.db.Where("form_id = ?", formID).Delete(&form.Submission{}).Error
}

// CountSubmissions counts submissions to the owner's forms, or to all forms
// when ownerID is 0.
func (r *DBSubmissionRepo) CountSubmissions(ownerID uint) (int64, error) {
	var total int64
	query := r.db.Model(&form.Submission{})
	if ownerID != 0 {
		query = query.Joins("JOIN forms ON forms.id = submissions.form_id").Where("forms.owner_id = ?", ownerID)
	}
	err := query.Count(&total).Error
	return total, err
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	if tx == nil {
		return r
	}
	return &DBSubmissionRepo{
		db: tx,
	}
}
