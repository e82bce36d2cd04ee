package repository

import (
	"crackit_backend/internal/model"

	"gorm.io/gorm"
)

type MockTestRepository struct {
	DB *gorm.DB
}

func NewMockTestRepository(db *gorm.DB) *MockTestRepository {
	return &MockTestRepository{DB: db}
}

func (r *MockTestRepository) Create(t *model.MockTest) error {
	return r.DB.Create(t).Error
}

func (r *MockTestRepository) Update(t *model.MockTest) error {
	return r.DB.Save(t).Error
}

func (r *MockTestRepository) Delete(id uint) error {
	return r.DB.Delete(&model.MockTest{}, id).Error
}

func (r *MockTestRepository) List(subject string, classLevel int) ([]model.MockTest, error) {
	query := r.DB.Model(&model.MockTest{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if classLevel > 0 {
		query = query.Where("class_level = ?", classLevel)
	}

	var tests []model.MockTest
	err := query.Order("date DESC, id DESC").Find(&tests).Error
	return tests, err
}

// FindWithQuestions loads a test and its questions in id order.
func (r *MockTestRepository) FindWithQuestions(id uint) (*model.MockTest, error) {
	var test model.MockTest
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

// AddQuestion appends a question to an existing test.
func (r *MockTestRepository) AddQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *MockTestRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}
