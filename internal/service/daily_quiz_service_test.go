package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"crackit_backend/internal/model"
	"crackit_backend/internal/util"
	"crackit_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

type fakeDailyQuizStore struct {
	questions map[string][]model.DailyQuiz
}

func (f *fakeDailyQuizStore) ListByDate(date time.Time) ([]model.DailyQuiz, error) {
	return f.questions[date.Format("2006-01-02")], nil
}

type fakeDailyQuizAttemptStore struct {
	nextID   uint
	attempts []*model.DailyQuizAttempt
}

func (f *fakeDailyQuizAttemptStore) Create(attempt *model.DailyQuizAttempt) error {
	for _, a := range f.attempts {
		if a.UserID == attempt.UserID && a.QuizDate.Equal(attempt.QuizDate) {
			return util.ErrAlreadyAttempted
		}
	}
	f.nextID++
	attempt.ID = f.nextID
	f.attempts = append(f.attempts, attempt)
	return nil
}

func (f *fakeDailyQuizAttemptStore) FindByID(id uint) (*model.DailyQuizAttempt, error) {
	for _, a := range f.attempts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDailyQuizAttemptStore) FindByUserAndDate(userID uint, date time.Time) (*model.DailyQuizAttempt, error) {
	for _, a := range f.attempts {
		if a.UserID == userID && a.QuizDate.Equal(date) {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDailyQuizAttemptStore) ListByUser(userID uint) ([]model.DailyQuizAttempt, error) {
	var out []model.DailyQuizAttempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func quizDay() time.Time {
	return time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
}

func newDailyQuizFixture(t *testing.T) (*DailyQuizService, *fakeDailyQuizAttemptStore) {
	t.Helper()

	quizzes := &fakeDailyQuizStore{
		questions: map[string][]model.DailyQuiz{
			"2026-08-28": {
				{BaseModel: model.BaseModel{ID: 1}, Question: "Q1", OptionA: "a1", OptionB: "b1", OptionC: "c1", OptionD: "d1", CorrectOption: model.OptionA, QuizDate: quizDay()},
				{BaseModel: model.BaseModel{ID: 2}, Question: "Q2", OptionA: "a2", OptionB: "b2", OptionC: "c2", OptionD: "d2", CorrectOption: model.OptionB, QuizDate: quizDay()},
				{BaseModel: model.BaseModel{ID: 3}, Question: "Q3", OptionA: "a3", OptionB: "b3", OptionC: "c3", OptionD: "d3", CorrectOption: model.OptionC, QuizDate: quizDay()},
			},
		},
	}
	attempts := &fakeDailyQuizAttemptStore{}

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	return NewDailyQuizService(quizzes, attempts, nil, loc), attempts
}

func TestDailyQuizSubmit_GradesAndStores(t *testing.T) {
	svc, attempts := newDailyQuizFixture(t)

	result, err := svc.Submit(context.Background(), 7, quizDay(), []string{"A", "B", "D"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 66, result.Percent)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, []model.AnswerOption{model.OptionA, model.OptionB, model.OptionC}, result.CorrectAnswers)
	assert.NotZero(t, result.AttemptID)

	require.Len(t, attempts.attempts, 1)
	stored := attempts.attempts[0]
	assert.Equal(t, uint(7), stored.UserID)
	assert.Equal(t, 2, stored.Score)
	assert.Equal(t, 66, stored.Percent)
	assert.Equal(t, model.OptionList{model.OptionA, model.OptionB, model.OptionD}, stored.Answers)
}

func TestDailyQuizSubmit_LowercaseAnswersAccepted(t *testing.T) {
	svc, _ := newDailyQuizFixture(t)

	result, err := svc.Submit(context.Background(), 7, quizDay(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 100, result.Percent)
}

func TestDailyQuizSubmit_ShortAnswerListCountsMissingAsWrong(t *testing.T) {
	svc, _ := newDailyQuizFixture(t)

	result, err := svc.Submit(context.Background(), 7, quizDay(), []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 33, result.Percent)
}

func TestDailyQuizSubmit_NoQuizForDate(t *testing.T) {
	svc, _ := newDailyQuizFixture(t)

	otherDay := quizDay().AddDate(0, 0, 1)
	_, err := svc.Submit(context.Background(), 7, otherDay, []string{"A"})
	assert.ErrorIs(t, err, util.ErrNoQuizAvailable)
}

func TestDailyQuizSubmit_SecondAttemptRejected(t *testing.T) {
	svc, _ := newDailyQuizFixture(t)

	_, err := svc.Submit(context.Background(), 7, quizDay(), []string{"A", "B", "C"})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 7, quizDay(), []string{"A", "B", "C"})
	assert.ErrorIs(t, err, util.ErrAlreadyAttempted)
}

func TestDailyQuizSubmit_DuplicateInsertMapsToAlreadyAttempted(t *testing.T) {
	// Simulates two requests racing past the existence pre-check: the store's
	// unique index is the real gate.
	svc, attempts := newDailyQuizFixture(t)

	attempts.attempts = append(attempts.attempts, &model.DailyQuizAttempt{
		BaseModel: model.BaseModel{ID: 99},
		UserID:    9,
		QuizDate:  quizDay(),
	})
	// Other user is unaffected.
	_, err := svc.Submit(context.Background(), 10, quizDay(), []string{"A", "B", "C"})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 9, quizDay(), []string{"A", "B", "C"})
	assert.ErrorIs(t, err, util.ErrAlreadyAttempted)
}

func TestDailyQuizSubmit_InvalidOptionRejected(t *testing.T) {
	svc, attempts := newDailyQuizFixture(t)

	_, err := svc.Submit(context.Background(), 7, quizDay(), []string{"A", "X", "C"})
	assert.ErrorIs(t, err, util.ErrInvalidOption)
	assert.Empty(t, attempts.attempts, "nothing is stored when validation fails")
}

func TestDailyQuizGetQuiz_ReportsAttemptState(t *testing.T) {
	svc, _ := newDailyQuizFixture(t)
	ctx := context.Background()

	view, err := svc.GetQuiz(ctx, 7, quizDay())
	require.NoError(t, err)
	assert.False(t, view.NoQuizToday)
	assert.False(t, view.QuizSubmitted)
	assert.Len(t, view.Questions, 3)
	assert.Equal(t, uint(1), view.Questions[0].ID)
	assert.Equal(t, []string{"a1", "b1", "c1", "d1"}, view.Questions[0].Answers)
	assert.Nil(t, view.Score)

	_, err = svc.Submit(ctx, 7, quizDay(), []string{"A", "B", "D"})
	require.NoError(t, err)

	view, err = svc.GetQuiz(ctx, 7, quizDay())
	require.NoError(t, err)
	assert.True(t, view.QuizSubmitted)
	require.NotNil(t, view.Score)
	assert.Equal(t, 2, *view.Score)
	require.NotNil(t, view.Percent)
	assert.Equal(t, 66, *view.Percent)
}

func TestDailyQuizGetQuiz_NoQuizToday(t *testing.T) {
	svc, _ := newDailyQuizFixture(t)

	view, err := svc.GetQuiz(context.Background(), 7, quizDay().AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.True(t, view.NoQuizToday)
	assert.Empty(t, view.Questions)
	assert.Equal(t, 0, view.TotalQuestions)
}

func TestDailyQuizAttemptDetail_Aggregates(t *testing.T) {
	svc, _ := newDailyQuizFixture(t)
	ctx := context.Background()

	result, err := svc.Submit(ctx, 7, quizDay(), []string{"A", "", "D"})
	require.NoError(t, err)

	detail, err := svc.AttemptDetail(ctx, 7, result.AttemptID, false)
	require.NoError(t, err)

	assert.Equal(t, 3, detail.TotalQuestions)
	assert.Equal(t, 2, detail.AttendedCount)
	assert.Equal(t, 1, detail.CorrectCount)
	assert.Equal(t, 2, detail.IncorrectCount, "skipped questions count as incorrect")
	assert.Equal(t, 33, detail.Percent)

	require.Len(t, detail.Questions, 3)
	assert.True(t, detail.Questions[0].IsCorrect)
	assert.False(t, detail.Questions[1].IsCorrect)
	assert.Equal(t, model.OptionNone, detail.Questions[1].UserAnswer)
	assert.False(t, detail.Questions[2].IsCorrect)
}

func TestDailyQuizAttemptDetail_OtherUsersAttemptHidden(t *testing.T) {
	svc, _ := newDailyQuizFixture(t)
	ctx := context.Background()

	result, err := svc.Submit(ctx, 7, quizDay(), []string{"A", "B", "C"})
	require.NoError(t, err)

	_, err = svc.AttemptDetail(ctx, 8, result.AttemptID, false)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	// Admins can read any attempt.
	detail, err := svc.AttemptDetail(ctx, 8, result.AttemptID, true)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.CorrectCount)
}

func TestDailyQuizCache_RoundTripKeepsGradingKey(t *testing.T) {
	// The model hides CorrectOption from API payloads, so the cache must use
	// its own serialization or every cache hit would grade against blanks.
	questions := []model.DailyQuiz{
		{BaseModel: model.BaseModel{ID: 1}, Question: "Q1", OptionA: "a1", OptionB: "b1", OptionC: "c1", OptionD: "d1", CorrectOption: model.OptionA, QuizDate: quizDay()},
		{BaseModel: model.BaseModel{ID: 2}, Question: "Q2", CorrectOption: model.OptionD, QuizDate: quizDay()},
	}

	data, err := json.Marshal(toCachedQuizzes(questions))
	require.NoError(t, err)

	var entries []cachedDailyQuiz
	require.NoError(t, json.Unmarshal(data, &entries))

	restored := fromCachedQuizzes(entries)
	require.Len(t, restored, 2)
	assert.Equal(t, model.OptionA, restored[0].CorrectOption)
	assert.Equal(t, model.OptionD, restored[1].CorrectOption)
	assert.Equal(t, uint(1), restored[0].ID)
	assert.Equal(t, "a1", restored[0].OptionA)
}

func TestDailyQuizListAttempts(t *testing.T) {
	svc, _ := newDailyQuizFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 7, quizDay(), []string{"A", "B", "C"})
	require.NoError(t, err)

	summaries, err := svc.ListAttempts(7)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].Score)
	assert.Equal(t, 100, summaries[0].Percent)
	assert.Equal(t, "2026-08-28", summaries[0].Date)
}
