package repository

import (
	"crackit_backend/internal/model"

	"gorm.io/gorm"
)

type TestAttemptRepository struct {
	DB *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) *TestAttemptRepository {
	return &TestAttemptRepository{DB: db}
}

// CreateWithAnswers persists the attempt and its per-question answers in a
// single transaction, so a half-written attempt never becomes visible.
func (r *TestAttemptRepository) CreateWithAnswers(attempt *model.TestAttempt, answers []model.UserAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].TestAttemptID = attempt.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TestAttemptRepository) FindByID(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_id ASC")
	}).Preload("MockTest").First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ListByUser returns a user's attempts, most recent first.
func (r *TestAttemptRepository) ListByUser(userID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.DB.Preload("MockTest").
		Where("user_id = ?", userID).
		Order("taken_on DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}

// CountByUserAndTest counts how many times the user already took the test.
func (r *TestAttemptRepository) CountByUserAndTest(userID, mockTestID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestAttempt{}).
		Where("user_id = ? AND mock_test_id = ?", userID, mockTestID).
		Count(&count).Error
	return count, err
}
