package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"crackit_backend/internal/model"
	"crackit_backend/internal/util"
	"crackit_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DailyQuizStore is the question lookup the workflow needs.
type DailyQuizStore interface {
	ListByDate(date time.Time) ([]model.DailyQuiz, error)
}

// DailyQuizAttemptStore persists attempts. Create must return
// util.ErrAlreadyAttempted on a duplicate (user, quiz_date) insert.
type DailyQuizAttemptStore interface {
	Create(attempt *model.DailyQuizAttempt) error
	FindByID(id uint) (*model.DailyQuizAttempt, error)
	FindByUserAndDate(userID uint, date time.Time) (*model.DailyQuizAttempt, error)
	ListByUser(userID uint) ([]model.DailyQuizAttempt, error)
}

type DailyQuizService struct {
	quizzes  DailyQuizStore
	attempts DailyQuizAttemptStore
	redis    *redis.Client
	location *time.Location
}

func NewDailyQuizService(quizzes DailyQuizStore, attempts DailyQuizAttemptStore, redisClient *redis.Client, loc *time.Location) *DailyQuizService {
	return &DailyQuizService{
		quizzes:  quizzes,
		attempts: attempts,
		redis:    redisClient,
		location: loc,
	}
}

// Today is the current quiz date in the configured timezone, truncated to
// midnight UTC so it compares cleanly against DATE columns.
func (s *DailyQuizService) Today() time.Time {
	now := time.Now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyQuizQuestionView is the student-facing question shape. The correct
// option never leaves the server before grading.
type DailyQuizQuestionView struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

type DailyQuizView struct {
	NoQuizToday    bool                    `json:"no_quiz_today"`
	QuizSubmitted  bool                    `json:"quiz_submitted"`
	Questions      []DailyQuizQuestionView `json:"questions"`
	TotalQuestions int                     `json:"total_questions"`
	Score          *int                    `json:"score"`
	Percent        *int                    `json:"percent"`
	UserAnswers    model.OptionList        `json:"user_answers,omitempty"`
	AttemptID      *uint                   `json:"attempt_id,omitempty"`
	Date           string                  `json:"date"`
}

// GetQuiz returns the quiz for the given date along with the caller's
// attempt state.
func (s *DailyQuizService) GetQuiz(ctx context.Context, userID uint, date time.Time) (*DailyQuizView, error) {
	questions, err := s.questionsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	view := &DailyQuizView{
		Questions:      []DailyQuizQuestionView{},
		TotalQuestions: len(questions),
		Date:           date.Format("2006-01-02"),
	}

	if len(questions) == 0 {
		view.NoQuizToday = true
		return view, nil
	}

	for _, q := range questions {
		view.Questions = append(view.Questions, DailyQuizQuestionView{
			ID:       q.ID,
			Question: q.Question,
			Answers:  []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD},
		})
	}

	attempt, err := s.attempts.FindByUserAndDate(userID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if attempt != nil {
		view.QuizSubmitted = true
		view.Score = &attempt.Score
		view.Percent = &attempt.Percent
		view.UserAnswers = attempt.Answers
		view.AttemptID = &attempt.ID
	}

	return view, nil
}

type DailyQuizSubmitResult struct {
	Success        bool               `json:"success"`
	Score          int                `json:"score"`
	Percent        int                `json:"percent"`
	TotalQuestions int                `json:"total_questions"`
	CorrectAnswers []model.AnswerOption `json:"correct_answers"`
	AttemptID      uint               `json:"attempt_id"`
}

// Submit grades the ordered answers against the date's questions and records
// the single allowed attempt.
func (s *DailyQuizService) Submit(ctx context.Context, userID uint, date time.Time, rawAnswers []string) (*DailyQuizSubmitResult, error) {
	questions, err := s.questionsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuizAvailable
	}

	if _, err := s.attempts.FindByUserAndDate(userID, date); err == nil {
		return nil, util.ErrAlreadyAttempted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	answers := make(model.OptionList, 0, len(rawAnswers))
	for _, raw := range rawAnswers {
		opt, err := model.ParseOption(raw)
		if err != nil {
			return nil, err
		}
		answers = append(answers, opt)
	}

	correct := make([]model.AnswerOption, len(questions))
	for i, q := range questions {
		correct[i] = q.CorrectOption
	}

	outcome := GradeOrdered(correct, answers)

	attempt := &model.DailyQuizAttempt{
		UserID:   userID,
		QuizDate: date,
		Score:    outcome.Correct,
		Percent:  outcome.Percent,
		Answers:  answers,
	}
	if err := s.attempts.Create(attempt); err != nil {
		return nil, err
	}

	logger.Log.Info("Daily quiz submitted",
		zap.Uint("user_id", userID),
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("score", outcome.Correct),
		zap.Int("percent", outcome.Percent),
	)

	return &DailyQuizSubmitResult{
		Success:        true,
		Score:          outcome.Correct,
		Percent:        outcome.Percent,
		TotalQuestions: outcome.Total,
		CorrectAnswers: correct,
		AttemptID:      attempt.ID,
	}, nil
}

type DailyQuizAttemptSummary struct {
	ID      uint   `json:"id"`
	Score   int    `json:"score"`
	Percent int    `json:"percent"`
	Date    string `json:"date"`
}

func (s *DailyQuizService) ListAttempts(userID uint) ([]DailyQuizAttemptSummary, error) {
	attempts, err := s.attempts.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]DailyQuizAttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summaries = append(summaries, DailyQuizAttemptSummary{
			ID:      a.ID,
			Score:   a.Score,
			Percent: a.Percent,
			Date:    a.QuizDate.Format("2006-01-02"),
		})
	}
	return summaries, nil
}

type DailyQuizAnswerDetail struct {
	QuestionText  string             `json:"question_text"`
	OptionA       string             `json:"option_a"`
	OptionB       string             `json:"option_b"`
	OptionC       string             `json:"option_c"`
	OptionD       string             `json:"option_d"`
	CorrectOption model.AnswerOption `json:"correct_option"`
	UserAnswer    model.AnswerOption `json:"user_answer"`
	IsCorrect     bool               `json:"is_correct"`
}

type DailyQuizAttemptDetail struct {
	TotalQuestions int                     `json:"total_questions"`
	AttendedCount  int                     `json:"attended_count"`
	CorrectCount   int                     `json:"correct_count"`
	IncorrectCount int                     `json:"incorrect_count"`
	Questions      []DailyQuizAnswerDetail `json:"questions"`
	Score          int                     `json:"score"`
	Percent        int                     `json:"percent"`
	Date           string                  `json:"date"`
}

// AttemptDetail replays a stored attempt against the day's questions.
// Incorrect count is total minus correct, so skipped questions count as
// incorrect. Admins may read any attempt, everyone else only their own.
func (s *DailyQuizService) AttemptDetail(ctx context.Context, userID, attemptID uint, admin bool) (*DailyQuizAttemptDetail, error) {
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

	questions, err := s.questionsForDate(ctx, attempt.QuizDate)
	if err != nil {
		return nil, err
	}

	detail := &DailyQuizAttemptDetail{
		TotalQuestions: len(questions),
		CorrectCount:   attempt.Score,
		IncorrectCount: len(questions) - attempt.Score,
		Questions:      []DailyQuizAnswerDetail{},
		Score:          attempt.Score,
		Percent:        attempt.Percent,
		Date:           attempt.QuizDate.Format("2006-01-02"),
	}

	for i, q := range questions {
		var userAnswer model.AnswerOption
		if i < len(attempt.Answers) {
			userAnswer = attempt.Answers[i]
		}
		if userAnswer != model.OptionNone {
			detail.AttendedCount++
		}
		detail.Questions = append(detail.Questions, DailyQuizAnswerDetail{
			QuestionText:  q.Question,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: q.CorrectOption,
			UserAnswer:    userAnswer,
			IsCorrect:     userAnswer.Matches(q.CorrectOption),
		})
	}

	return detail, nil
}

// cachedDailyQuiz is the Redis representation of a question. The model's API
// tags hide the correct option, so the cache needs its own serialization to
// keep the grading key intact across a round trip.
type cachedDailyQuiz struct {
	ID            uint               `json:"id"`
	Question      string             `json:"question"`
	OptionA       string             `json:"option_a"`
	OptionB       string             `json:"option_b"`
	OptionC       string             `json:"option_c"`
	OptionD       string             `json:"option_d"`
	CorrectOption model.AnswerOption `json:"correct_option"`
	QuizDate      time.Time          `json:"quiz_date"`
}

func toCachedQuizzes(questions []model.DailyQuiz) []cachedDailyQuiz {
	out := make([]cachedDailyQuiz, 0, len(questions))
	for _, q := range questions {
		out = append(out, cachedDailyQuiz{
			ID:            q.ID,
			Question:      q.Question,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: q.CorrectOption,
			QuizDate:      q.QuizDate,
		})
	}
	return out
}

func fromCachedQuizzes(entries []cachedDailyQuiz) []model.DailyQuiz {
	out := make([]model.DailyQuiz, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.DailyQuiz{
			BaseModel:     model.BaseModel{ID: e.ID},
			Question:      e.Question,
			OptionA:       e.OptionA,
			OptionB:       e.OptionB,
			OptionC:       e.OptionC,
			OptionD:       e.OptionD,
			CorrectOption: e.CorrectOption,
			QuizDate:      e.QuizDate,
		})
	}
	return out
}

// questionsForDate reads through a short-lived Redis cache keyed by date,
// falling back to the database when the cache is cold or unavailable.
func (s *DailyQuizService) questionsForDate(ctx context.Context, date time.Time) ([]model.DailyQuiz, error) {
	key := "dailyquiz:" + date.Format("2006-01-02")

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			var entries []cachedDailyQuiz
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return fromCachedQuizzes(entries), nil
			}
		}
	}

	questions, err := s.quizzes.ListByDate(date)
	if err != nil {
		return nil, err
	}

	if s.redis != nil && len(questions) > 0 {
		if data, err := json.Marshal(toCachedQuizzes(questions)); err == nil {
			if err := s.redis.Set(ctx, key, data, s.cacheTTL()).Err(); err != nil {
				logger.Log.Warn("Failed to cache daily quiz", zap.Error(err))
			}
		}
	}

	return questions, nil
}

// cacheTTL expires at the next midnight in the platform timezone, when the
// quiz rolls over.
func (s *DailyQuizService) cacheTTL() time.Duration {
	now := time.Now().In(s.location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, 1)
	return time.Until(midnight)
}

// InvalidateCache drops the cached question set for a date after admin edits.
func (s *DailyQuizService) InvalidateCache(ctx context.Context, date time.Time) {
	if s.redis == nil {
		return
	}
	key := "dailyquiz:" + date.Format("2006-01-02")
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate daily quiz cache", zap.Error(err))
	}
}
