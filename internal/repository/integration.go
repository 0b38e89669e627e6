package repository

import (
	"github.com/linskybing/formify-go/internal/domain/integration"
	"gorm.io/gorm"
)

type IntegrationRepo interface {
	CreateIntegration(in *integration.Integration) error
	GetIntegrationByID(id uint) (integration.Integration, error)
	ListIntegrationsByForm(formID string) ([]integration.Integration, error)
	ListEnabledIntegrations(formID string) ([]integration.Integration, error)
	SaveIntegration(in *integration.Integration) error
	DeleteIntegration(id uint) error
	DeleteIntegrationsByForm(formID string) error
	WithTx(tx *gorm.DB) IntegrationRepo
}

type DBIntegrationRepo struct {
	db *gorm.DB
}

func NewIntegrationRepo(db *gorm.DB) *DBIntegrationRepo {
	return &DBIntegrationRepo{
		db: db,
	}
}

func (r *DBIntegrationRepo) CreateIntegration(in *integration.Integration) error {
	return r.db.Create(in).Error
}

func (r *DBIntegrationRepo) GetIntegrationByID(id uint) (integration.Integration, error) {
	var in integration.Integration
	if err := r.db.First(&in, id).Error; err != nil {
		return in, err
	}
	return in, nil
}

func (r *DBIntegrationRepo) ListIntegrationsByForm(formID string) ([]integration.Integration, error) {
	var list []integration.Integration
	err := r.db.Where("form_id = ?", formID).Order("created_at asc").Find(&list).Error
	return list, err
}

func (r *DBIntegrationRepo) ListEnabledIntegrations(formID string) ([]integration.Integration, error) {
	var list []integration.Integration
	err := r.db.Where("form_id = ? AND enabled = ?", formID, true).Find(&list).Error
	return list, err
}

func (r *DBIntegrationRepo) SaveIntegration(in *integration.Integration) error {
	return r.db.Save(in).Error
}

func (r *DBIntegrationRepo) DeleteIntegration(id uint) error {
	return r.db.Delete(&integration.Integration{}, id).Error
}

func (r *DBIntegrationRepo) DeleteIntegrationsByForm(formID string) error {
	return r.db.Where("form_id = ?", formID).Delete(&integration.Integration{}).Error
}

func (r *DBIntegrationRepo) WithTx(tx *gorm.DB) IntegrationRepo {
	if tx == nil {
		return r
	}
	return &DBIntegrationRepo{
		db: tx,
	}
}
