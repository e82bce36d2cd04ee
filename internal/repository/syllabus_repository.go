package repository

import (
	"crackit_backend/internal/model"

	"gorm.io/gorm"
)

type SyllabusRepository struct {
	DB *gorm.DB
}

func NewSyllabusRepository(db *gorm.DB) *SyllabusRepository {
	return &SyllabusRepository{DB: db}
}

func (r *SyllabusRepository) Create(s *model.Syllabus) error {
	return r.DB.Create(s).Error
}

func (r *SyllabusRepository) Update(s *model.Syllabus) error {
	return r.DB.Save(s).Error
}

func (r *SyllabusRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Syllabus{}, id).Error
}

func (r *SyllabusRepository) FindByID(id uint) (*model.Syllabus, error) {
	var s model.Syllabus
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns syllabi optionally filtered by board, class level and subject.
func (r *SyllabusRepository) List(board string, classLevel int, subject string) ([]model.Syllabus, error) {
	query := r.DB.Model(&model.Syllabus{})
	if board != "" {
		query = query.Where("board = ?", board)
	}
	if classLevel > 0 {
		query = query.Where("class_level = ?", classLevel)
	}
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var items []model.Syllabus
	err := query.Order("class_level ASC, subject ASC").Find(&items).Error
	return items, err
}
