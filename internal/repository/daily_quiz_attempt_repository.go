package repository

import (
	"errors"
	"time"

	"crackit_backend/internal/model"
	"crackit_backend/internal/util"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type DailyQuizAttemptRepository struct {
	DB *gorm.DB
}

func NewDailyQuizAttemptRepository(db *gorm.DB) *DailyQuizAttemptRepository {
	return &DailyQuizAttemptRepository{DB: db}
}

// Create inserts the attempt. The unique (user_id, quiz_date) index is the
// authoritative one-shot gate: a duplicate key error from a concurrent
// submit maps to ErrAlreadyAttempted.
func (r *DailyQuizAttemptRepository) Create(attempt *model.DailyQuizAttempt) error {
	err := r.DB.Create(attempt).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return util.ErrAlreadyAttempted
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrAlreadyAttempted
	}
	return err
}

func (r *DailyQuizAttemptRepository) FindByID(id uint) (*model.DailyQuizAttempt, error) {
	var attempt model.DailyQuizAttempt
	if err := r.DB.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *DailyQuizAttemptRepository) FindByUserAndDate(userID uint, date time.Time) (*model.DailyQuizAttempt, error) {
	var attempt model.DailyQuizAttempt
	err := r.DB.Where("user_id = ? AND quiz_date = ?", userID, date.Format("2006-01-02")).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ListByUser returns a user's attempts, newest quiz date first.
func (r *DailyQuizAttemptRepository) ListByUser(userID uint) ([]model.DailyQuizAttempt, error) {
	var attempts []model.DailyQuizAttempt
	err := r.DB.Where("user_id = ?", userID).
		Order("quiz_date DESC, attempted_at DESC").
		Find(&attempts).Error
	return attempts, err
}
