package repository

import (
	"cleanlog-backend/internal/models"

	"gorm.io/gorm"
)

type AdminRepository interface {
	Get() (*models.Admin, error)
	GetByUsername(username string) (*models.Admin, error)
	Create(admin *models.Admin) error
	Update(admin *models.Admin) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Get() (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, models.AdminRecordID).Error
	return &admin, err
}

func (r *adminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.Where("username = ?", username).First(&admin).Error
	return &admin, err
}

func (r *adminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepository) Update(admin *models.Admin) error {
	return r.db.Save(admin).Error
}
