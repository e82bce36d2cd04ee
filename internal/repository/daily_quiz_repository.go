package repository

import (
	"time"

	"crackit_backend/internal/model"

	"gorm.io/gorm"
)

type DailyQuizRepository struct {
	DB *gorm.DB
}

func NewDailyQuizRepository(db *gorm.DB) *DailyQuizRepository {
	return &DailyQuizRepository{DB: db}
}

func (r *DailyQuizRepository) Create(q *model.DailyQuiz) error {
	return r.DB.Create(q).Error
}

func (r *DailyQuizRepository) Update(q *model.DailyQuiz) error {
	return r.DB.Save(q).Error
}

func (r *DailyQuizRepository) Delete(id uint) error {
	return r.DB.Delete(&model.DailyQuiz{}, id).Error
}

func (r *DailyQuizRepository) FindByID(id uint) (*model.DailyQuiz, error) {
	var q model.DailyQuiz
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByDate returns the day's questions ordered by id ascending. Serving
// and grading both go through here so answer positions always line up.
func (r *DailyQuizRepository) ListByDate(date time.Time) ([]model.DailyQuiz, error) {
	var questions []model.DailyQuiz
	err := r.DB.Where("quiz_date = ?", date.Format("2006-01-02")).
		Order("id ASC").
		Find(&questions).Error
	return questions, err
}

// ListUpcoming returns questions scheduled on or after the given date, for
// the admin planning view.
func (r *DailyQuizRepository) ListUpcoming(from time.Time) ([]model.DailyQuiz, error) {
	var questions []model.DailyQuiz
	err := r.DB.Where("quiz_date >= ?", from.Format("2006-01-02")).
		Order("quiz_date ASC, id ASC").
		Find(&questions).Error
	return questions, err
}
