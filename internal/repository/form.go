package repository

import (
	"github.com/linskybing/formify-go/internal/domain/form"
	"gorm.io/gorm"
)

type FormRepo interface {
	CreateForm(f *form.Form) error
	GetFormByID(id string) (form.Form, error)
	ListFormsByOwner(ownerID uint) ([]form.Form, error)
	ListFormsPaging(page, limit int) ([]form.Form, error)
	SaveForm(f *form.Form) error
	DeleteForm(id string) error
	CountFormsByStatus(ownerID uint) (map[form.Status]int64, error)
	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{
		db: db,
	}
}

func (r *DBFormRepo) CreateForm(f *form.Form) error {
	return r.db.Create(f).Error
}

func (r *DBFormRepo) GetFormByID(id string) (form.Form, error) {
	var f form.Form
	if err := r.db.Where("id = ?", id).First(&f).Error; err != nil {
		return f, err
	}
	return f, nil
}

func (r *DBFormRepo) ListFormsByOwner(ownerID uint) ([]form.Form, error) {
	var forms []form.Form
	err := r.db.Where("owner_id = ?", ownerID).Order("updated_at desc").Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) ListFormsPaging(page, limit int) ([]form.Form, error) {
	var forms []form.Form

	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}

	offset := (page - 1) * limit

	if err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *DBFormRepo) SaveForm(f *form.Form) error {
	return r.db.Save(f).Error
}

func (r *DBFormRepo) DeleteForm(id string) error {
	return r.db.Where("id = ?", id).Delete(&form.Form{}).Error
}

type statusCount struct {
	Status form.Status
	Total  int64
}

// CountFormsByStatus counts forms per status. An ownerID of 0 counts every
// owner's forms.
func (r *DBFormRepo) CountFormsByStatus(ownerID uint) (map[form.Status]int64, error) {
	var rows []statusCount
	query := r.db.Model(&form.Form{})
	if ownerID != 0 {
		query = query.Where("owner_id = ?", ownerID)
	}
	if err := query.Select("status, count(*) as total").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[form.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	if tx == nil {
		return r
	}
	return &DBFormRepo{
		db: tx,
	}
}
