package repository

import (
	"crackit_backend/internal/model"

	"gorm.io/gorm"
)

type InterviewQuestionRepository struct {
	DB *gorm.DB
}

func NewInterviewQuestionRepository(db *gorm.DB) *InterviewQuestionRepository {
	return &InterviewQuestionRepository{DB: db}
}

func (r *InterviewQuestionRepository) Create(q *model.InterviewQuestion) error {
	return r.DB.Create(q).Error
}

func (r *InterviewQuestionRepository) Update(q *model.InterviewQuestion) error {
	return r.DB.Save(q).Error
}

func (r *InterviewQuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.InterviewQuestion{}, id).Error
}

func (r *InterviewQuestionRepository) FindByID(id uint) (*model.InterviewQuestion, error) {
	var q model.InterviewQuestion
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *InterviewQuestionRepository) ListByDepartment(department string) ([]model.InterviewQuestion, error) {
	query := r.DB.Model(&model.InterviewQuestion{})
	if department != "" {
		query = query.Where("department = ?", department)
	}

	var items []model.InterviewQuestion
	err := query.Order("department ASC, id ASC").Find(&items).Error
	return items, err
}

// Departments returns the distinct department slugs that have questions.
func (r *InterviewQuestionRepository) Departments() ([]string, error) {
	var slugs []string
	err := r.DB.Model(&model.InterviewQuestion{}).
		Distinct("department").
		Order("department ASC").
		Pluck("department", &slugs).Error
	return slugs, err
}
