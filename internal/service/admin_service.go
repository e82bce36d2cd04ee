package service

import (
	"context"
	"errors"
	"time"

	"crackit_backend/internal/model"
	"crackit_backend/internal/repository"
	"crackit_backend/internal/util"

	"gorm.io/gorm"
)

// AdminService covers the question-bank management operations: creating and
// editing mock tests, their questions, and the daily quiz schedule.
type AdminService struct {
	tests     *repository.MockTestRepository
	dailyQuiz *repository.DailyQuizRepository
	quizzes   *DailyQuizService
}

func NewAdminService(tests *repository.MockTestRepository, dailyQuiz *repository.DailyQuizRepository, quizzes *DailyQuizService) *AdminService {
	return &AdminService{tests: tests, dailyQuiz: dailyQuiz, quizzes: quizzes}
}

// Mock tests

func (s *AdminService) CreateMockTest(t *model.MockTest) error {
	for i := range t.Questions {
		opt, err := model.ParseOption(string(t.Questions[i].CorrectOption))
		if err != nil || opt == model.OptionNone {
			return util.ErrInvalidOption
		}
		t.Questions[i].CorrectOption = opt
	}
	return s.tests.Create(t)
}

func (s *AdminService) UpdateMockTest(t *model.MockTest) error {
	return s.tests.Update(t)
}

func (s *AdminService) DeleteMockTest(id uint) error {
	return s.tests.Delete(id)
}

func (s *AdminService) GetMockTest(id uint) (*model.MockTest, error) {
	test, err := s.tests.FindWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMockTestNotFound
		}
		return nil, err
	}
	return test, nil
}

func (s *AdminService) AddQuestion(q *model.Question) error {
	opt, err := model.ParseOption(string(q.CorrectOption))
	if err != nil || opt == model.OptionNone {
		return util.ErrInvalidOption
	}
	q.CorrectOption = opt

	if _, err := s.GetMockTest(q.MockTestID); err != nil {
		return err
	}
	return s.tests.AddQuestion(q)
}

func (s *AdminService) DeleteQuestion(id uint) error {
	return s.tests.DeleteQuestion(id)
}

// Daily quiz schedule

func (s *AdminService) CreateDailyQuiz(ctx context.Context, q *model.DailyQuiz) error {
	opt, err := model.ParseOption(string(q.CorrectOption))
	if err != nil || opt == model.OptionNone {
		return util.ErrInvalidOption
	}
	q.CorrectOption = opt

	if err := s.dailyQuiz.Create(q); err != nil {
		return err
	}
	s.quizzes.InvalidateCache(ctx, q.QuizDate)
	return nil
}

func (s *AdminService) UpdateDailyQuiz(ctx context.Context, q *model.DailyQuiz) error {
	if err := s.dailyQuiz.Update(q); err != nil {
		return err
	}
	s.quizzes.InvalidateCache(ctx, q.QuizDate)
	return nil
}

func (s *AdminService) DeleteDailyQuiz(ctx context.Context, id uint) error {
	q, err := s.dailyQuiz.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	if err := s.dailyQuiz.Delete(id); err != nil {
		return err
	}
	s.quizzes.InvalidateCache(ctx, q.QuizDate)
	return nil
}

func (s *AdminService) ListUpcomingDailyQuiz(from time.Time) ([]model.DailyQuiz, error) {
	return s.dailyQuiz.ListUpcoming(from)
}
