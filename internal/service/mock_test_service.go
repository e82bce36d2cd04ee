package service

import (
	"errors"
	"time"

	"crackit_backend/internal/model"
	"crackit_backend/internal/util"
	"crackit_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockTestStore is the test lookup the workflow needs.
type MockTestStore interface {
	List(subject string, classLevel int) ([]model.MockTest, error)
	FindWithQuestions(id uint) (*model.MockTest, error)
}

// TestAttemptStore persists graded attempts.
type TestAttemptStore interface {
	CreateWithAnswers(attempt *model.TestAttempt, answers []model.UserAnswer) error
	FindByID(id uint) (*model.TestAttempt, error)
	ListByUser(userID uint) ([]model.TestAttempt, error)
	CountByUserAndTest(userID, mockTestID uint) (int64, error)
}

type MockTestService struct {
	tests       MockTestStore
	attempts    TestAttemptStore
	maxAttempts int
}

// NewMockTestService wires the mock test workflow. maxAttempts of zero means
// unlimited retakes.
func NewMockTestService(tests MockTestStore, attempts TestAttemptStore, maxAttempts int) *MockTestService {
	return &MockTestService{
		tests:       tests,
		attempts:    attempts,
		maxAttempts: maxAttempts,
	}
}

func (s *MockTestService) ListTests(subject string, classLevel int) ([]model.MockTest, error) {
	return s.tests.List(subject, classLevel)
}

// SetMaxAttempts applies a reloaded attempt limit without a restart.
func (s *MockTestService) SetMaxAttempts(n int) {
	s.maxAttempts = n
}

type QuestionView struct {
	ID           uint              `json:"id"`
	QuestionText string            `json:"question_text"`
	Options      map[string]string `json:"options"`
}

// GetQuestions returns the test's questions without the correct options.
func (s *MockTestService) GetQuestions(testID uint) ([]QuestionView, error) {
	test, err := s.tests.FindWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMockTestNotFound
		}
		return nil, err
	}

	views := make([]QuestionView, 0, len(test.Questions))
	for _, q := range test.Questions {
		views = append(views, QuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options: map[string]string{
				"A": q.OptionA,
				"B": q.OptionB,
				"C": q.OptionC,
				"D": q.OptionD,
			},
		})
	}
	return views, nil
}

type SubmittedAnswer struct {
	QuestionID     uint               `json:"question_id"`
	SelectedOption model.AnswerOption `json:"selected_option"`
	CorrectOption  model.AnswerOption `json:"correct_option"`
	IsCorrect      bool               `json:"is_correct"`
}

type TestAttemptResult struct {
	AttemptID      uint              `json:"id"`
	MockTestID     uint              `json:"mock_test_id"`
	TestName       string            `json:"test_name"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	CorrectCount   int               `json:"correct_count"`
	Answers        []SubmittedAnswer `json:"answers"`
	TakenOn        time.Time         `json:"taken_on"`
}

// Submit grades answers keyed by question id, stores the attempt and its
// answers atomically, and returns the integer percent score. Unanswered
// questions are not stored and count as incorrect.
func (s *MockTestService) Submit(userID, testID uint, rawAnswers map[uint]string) (*TestAttemptResult, error) {
	test, err := s.tests.FindWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMockTestNotFound
		}
		return nil, err
	}

	if s.maxAttempts > 0 {
		taken, err := s.attempts.CountByUserAndTest(userID, testID)
		if err != nil {
			return nil, err
		}
		if taken >= int64(s.maxAttempts) {
			return nil, util.ErrAttemptsExceeded
		}
	}

	correctCount := 0
	answers := make([]model.UserAnswer, 0, len(test.Questions))
	submitted := make([]SubmittedAnswer, 0, len(test.Questions))
	for _, q := range test.Questions {
		opt, err := model.ParseOption(rawAnswers[q.ID])
		if err != nil {
			return nil, err
		}
		if opt == model.OptionNone {
			continue
		}
		answers = append(answers, model.UserAnswer{
			QuestionID:     q.ID,
			SelectedOption: opt,
		})
		isCorrect := opt.Matches(q.CorrectOption)
		if isCorrect {
			correctCount++
		}
		submitted = append(submitted, SubmittedAnswer{
			QuestionID:     q.ID,
			SelectedOption: opt,
			CorrectOption:  q.CorrectOption,
			IsCorrect:      isCorrect,
		})
	}

	attempt := &model.TestAttempt{
		UserID:     userID,
		MockTestID: test.ID,
		Score:      ScorePercent(correctCount, len(test.Questions)),
	}
	if err := s.attempts.CreateWithAnswers(attempt, answers); err != nil {
		return nil, err
	}

	logger.Log.Info("Mock test submitted",
		zap.Uint("user_id", userID),
		zap.Uint("mock_test_id", testID),
		zap.Int("score", attempt.Score),
	)

	return &TestAttemptResult{
		AttemptID:      attempt.ID,
		MockTestID:     test.ID,
		TestName:       test.Subject,
		Score:          attempt.Score,
		TotalQuestions: len(test.Questions),
		CorrectCount:   correctCount,
		Answers:        submitted,
		TakenOn:        attempt.TakenOn,
	}, nil
}

type TestAttemptSummary struct {
	ID       uint      `json:"id"`
	TestName string    `json:"test_name"`
	Subject  string    `json:"subject"`
	Score    int       `json:"score"`
	TakenOn  time.Time `json:"taken_on"`
}

func (s *MockTestService) ListAttempts(userID uint) ([]TestAttemptSummary, error) {
	attempts, err := s.attempts.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]TestAttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summaries = append(summaries, TestAttemptSummary{
			ID:       a.ID,
			TestName: a.MockTest.Subject,
			Subject:  a.MockTest.Subject,
			Score:    a.Score,
			TakenOn:  a.TakenOn,
		})
	}
	return summaries, nil
}

type AttemptAnswerDetail struct {
	QuestionText  string             `json:"question_text"`
	OptionA       string             `json:"option_a"`
	OptionB       string             `json:"option_b"`
	OptionC       string             `json:"option_c"`
	OptionD       string             `json:"option_d"`
	CorrectOption model.AnswerOption `json:"correct_option"`
	UserAnswer    model.AnswerOption `json:"user_answer"`
	IsCorrect     bool               `json:"is_correct"`
}

type AttemptDetail struct {
	ID             uint                  `json:"id"`
	TestName       string                `json:"test_name"`
	Score          int                   `json:"score"`
	TakenOn        time.Time             `json:"taken_on"`
	TotalQuestions int                   `json:"total_questions"`
	AttendedCount  int                   `json:"attended_count"`
	CorrectCount   int                   `json:"correct_count"`
	IncorrectCount int                   `json:"incorrect_count"`
	Questions      []AttemptAnswerDetail `json:"questions"`
}

// AttemptDetail reports one breakdown row per question of the test, paired
// with the stored answer when one exists. Unanswered questions count as
// incorrect, consistent with grading. Admins may read any attempt, everyone
// else only their own.
func (s *MockTestService) AttemptDetail(userID, attemptID uint, admin bool) (*AttemptDetail, error) {
	attempt, err := s.attempts.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if !admin && attempt.UserID != userID {
		return nil, util.ErrAttemptNotFound
	}

	test, err := s.tests.FindWithQuestions(attempt.MockTestID)
	if err != nil {
		return nil, err
	}

	answered := make(map[uint]model.AnswerOption, len(attempt.Answers))
	for _, a := range attempt.Answers {
		answered[a.QuestionID] = a.SelectedOption
	}

	detail := &AttemptDetail{
		ID:             attempt.ID,
		TestName:       test.Subject,
		Score:          attempt.Score,
		TakenOn:        attempt.TakenOn,
		TotalQuestions: len(test.Questions),
		AttendedCount:  len(attempt.Answers),
		Questions:      []AttemptAnswerDetail{},
	}

	for _, q := range test.Questions {
		userAnswer := answered[q.ID]
		isCorrect := userAnswer.Matches(q.CorrectOption)
		if isCorrect {
			detail.CorrectCount++
		}
		detail.Questions = append(detail.Questions, AttemptAnswerDetail{
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: q.CorrectOption,
			UserAnswer:    userAnswer,
			IsCorrect:     isCorrect,
		})
	}
	detail.IncorrectCount = detail.TotalQuestions - detail.CorrectCount

	return detail, nil
}
