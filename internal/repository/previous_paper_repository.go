package repository

import (
	"crackit_backend/internal/model"

	"gorm.io/gorm"
)

type PreviousPaperRepository struct {
	DB *gorm.DB
}

func NewPreviousPaperRepository(db *gorm.DB) *PreviousPaperRepository {
	return &PreviousPaperRepository{DB: db}
}

func (r *PreviousPaperRepository) Create(p *model.PreviousPaper) error {
	return r.DB.Create(p).Error
}

func (r *PreviousPaperRepository) Update(p *model.PreviousPaper) error {
	return r.DB.Save(p).Error
}

func (r *PreviousPaperRepository) Delete(id uint) error {
	return r.DB.Delete(&model.PreviousPaper{}, id).Error
}

func (r *PreviousPaperRepository) FindByID(id uint) (*model.PreviousPaper, error) {
	var p model.PreviousPaper
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns papers newest year first, optionally filtered by year and exam type.
func (r *PreviousPaperRepository) List(year int, examType string) ([]model.PreviousPaper, error) {
	query := r.DB.Model(&model.PreviousPaper{})
	if year > 0 {
		query = query.Where("year = ?", year)
	}
	if examType != "" {
		query = query.Where("exam_type = ?", examType)
	}

	var items []model.PreviousPaper
	err := query.Order("year DESC, title ASC").Find(&items).Error
	return items, err
}
