package repository

import (
	"crackit_backend/internal/model"

	"gorm.io/gorm"
)

type FormulaRepository struct {
	DB *gorm.DB
}

func NewFormulaRepository(db *gorm.DB) *FormulaRepository {
	return &FormulaRepository{DB: db}
}

func (r *FormulaRepository) Create(f *model.Formula) error {
	return r.DB.Create(f).Error
}

func (r *FormulaRepository) Update(f *model.Formula) error {
	return r.DB.Save(f).Error
}

func (r *FormulaRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Formula{}, id).Error
}

func (r *FormulaRepository) FindByID(id uint) (*model.Formula, error) {
	var f model.Formula
	if err := r.DB.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FormulaRepository) List(subject string) ([]model.Formula, error) {
	query := r.DB.Model(&model.Formula{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var items []model.Formula
	err := query.Order("subject ASC, heading ASC").Find(&items).Error
	return items, err
}
