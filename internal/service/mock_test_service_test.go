package service

import (
	"testing"

	"crackit_backend/internal/model"
	"crackit_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMockTestStore struct {
	tests map[uint]*model.MockTest
}

func (f *fakeMockTestStore) List(subject string, classLevel int) ([]model.MockTest, error) {
	var out []model.MockTest
	for _, t := range f.tests {
		if subject != "" && t.Subject != subject {
			continue
		}
		if classLevel > 0 && t.ClassLevel != classLevel {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeMockTestStore) FindWithQuestions(id uint) (*model.MockTest, error) {
	t, ok := f.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

type fakeTestAttemptStore struct {
	nextID   uint
	attempts []*model.TestAttempt
}

func (f *fakeTestAttemptStore) CreateWithAnswers(attempt *model.TestAttempt, answers []model.UserAnswer) error {
	f.nextID++
	attempt.ID = f.nextID
	for i := range answers {
		answers[i].TestAttemptID = attempt.ID
	}
	attempt.Answers = answers
	f.attempts = append(f.attempts, attempt)
	return nil
}

func (f *fakeTestAttemptStore) FindByID(id uint) (*model.TestAttempt, error) {
	for _, a := range f.attempts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTestAttemptStore) ListByUser(userID uint) ([]model.TestAttempt, error) {
	var out []model.TestAttempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeTestAttemptStore) CountByUserAndTest(userID, mockTestID uint) (int64, error) {
	var count int64
	for _, a := range f.attempts {
		if a.UserID == userID && a.MockTestID == mockTestID {
			count++
		}
	}
	return count, nil
}

func newMockTestFixture(maxAttempts int) (*MockTestService, *fakeTestAttemptStore) {
	tests := &fakeMockTestStore{
		tests: map[uint]*model.MockTest{
			1: {
				BaseModel: model.BaseModel{ID: 1},
				Subject:   "Physics",
				Questions: []model.Question{
					{BaseModel: model.BaseModel{ID: 11}, MockTestID: 1, QuestionText: "Q1", CorrectOption: model.OptionA},
					{BaseModel: model.BaseModel{ID: 12}, MockTestID: 1, QuestionText: "Q2", CorrectOption: model.OptionB},
					{BaseModel: model.BaseModel{ID: 13}, MockTestID: 1, QuestionText: "Q3", CorrectOption: model.OptionC},
					{BaseModel: model.BaseModel{ID: 14}, MockTestID: 1, QuestionText: "Q4", CorrectOption: model.OptionD},
				},
			},
			2: {
				BaseModel: model.BaseModel{ID: 2},
				Subject:   "Maths",
			},
		},
	}
	attempts := &fakeTestAttemptStore{}
	return NewMockTestService(tests, attempts, maxAttempts), attempts
}

func TestMockTestSubmit_ScoresAsIntegerPercent(t *testing.T) {
	svc, attempts := newMockTestFixture(0)

	// Two correct, one wrong, one unanswered.
	result, err := svc.Submit(7, 1, map[uint]string{
		11: "A",
		12: "b",
		13: "D",
	})
	require.NoError(t, err)

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 2, result.CorrectCount)
	assert.Equal(t, "Physics", result.TestName)

	require.Len(t, result.Answers, 3, "only answered questions appear in the submit projection")
	assert.Equal(t, uint(11), result.Answers[0].QuestionID)
	assert.True(t, result.Answers[0].IsCorrect)
	assert.Equal(t, model.OptionC, result.Answers[2].CorrectOption)
	assert.False(t, result.Answers[2].IsCorrect)

	require.Len(t, attempts.attempts, 1)
	stored := attempts.attempts[0]
	assert.Equal(t, 50, stored.Score)
	assert.Len(t, stored.Answers, 3, "unanswered questions are not stored")
}

func TestMockTestSubmit_EmptyTestScoresZero(t *testing.T) {
	svc, _ := newMockTestFixture(0)

	result, err := svc.Submit(7, 2, map[uint]string{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
}

func TestMockTestSubmit_UnknownTest(t *testing.T) {
	svc, _ := newMockTestFixture(0)

	_, err := svc.Submit(7, 42, map[uint]string{})
	assert.ErrorIs(t, err, util.ErrMockTestNotFound)
}

func TestMockTestSubmit_InvalidOptionRejected(t *testing.T) {
	svc, attempts := newMockTestFixture(0)

	_, err := svc.Submit(7, 1, map[uint]string{11: "Z"})
	assert.ErrorIs(t, err, util.ErrInvalidOption)
	assert.Empty(t, attempts.attempts)
}

func TestMockTestSubmit_UnlimitedRetakesByDefault(t *testing.T) {
	svc, _ := newMockTestFixture(0)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(7, 1, map[uint]string{11: "A"})
		require.NoError(t, err)
	}
}

func TestMockTestSubmit_MaxAttemptsEnforced(t *testing.T) {
	svc, _ := newMockTestFixture(2)

	_, err := svc.Submit(7, 1, map[uint]string{11: "A"})
	require.NoError(t, err)
	_, err = svc.Submit(7, 1, map[uint]string{11: "A"})
	require.NoError(t, err)

	_, err = svc.Submit(7, 1, map[uint]string{11: "A"})
	assert.ErrorIs(t, err, util.ErrAttemptsExceeded)

	// Another user is not affected by the first user's attempts.
	_, err = svc.Submit(8, 1, map[uint]string{11: "A"})
	assert.NoError(t, err)
}

func TestMockTestGetQuestions_HidesCorrectOption(t *testing.T) {
	svc, _ := newMockTestFixture(0)

	questions, err := svc.GetQuestions(1)
	require.NoError(t, err)
	require.Len(t, questions, 4)
	assert.Equal(t, uint(11), questions[0].ID)
	assert.Contains(t, questions[0].Options, "A")
	assert.Contains(t, questions[0].Options, "D")
}

func TestMockTestAttemptDetail_Aggregates(t *testing.T) {
	svc, _ := newMockTestFixture(0)

	result, err := svc.Submit(7, 1, map[uint]string{
		11: "A",
		12: "C",
		13: "C",
	})
	require.NoError(t, err)

	detail, err := svc.AttemptDetail(7, result.AttemptID, false)
	require.NoError(t, err)

	assert.Equal(t, 4, detail.TotalQuestions)
	assert.Equal(t, 3, detail.AttendedCount)
	assert.Equal(t, 2, detail.CorrectCount)
	assert.Equal(t, 2, detail.IncorrectCount, "unanswered questions count as incorrect")
	assert.Equal(t, 50, detail.Score)

	require.Len(t, detail.Questions, 4, "one breakdown row per question")
	assert.True(t, detail.Questions[0].IsCorrect)
	assert.False(t, detail.Questions[1].IsCorrect)
	assert.True(t, detail.Questions[2].IsCorrect)
	assert.False(t, detail.Questions[3].IsCorrect)
	assert.Equal(t, model.OptionNone, detail.Questions[3].UserAnswer, "the skipped question still gets a row")
}

func TestMockTestAttemptDetail_OtherUsersAttemptHidden(t *testing.T) {
	svc, _ := newMockTestFixture(0)

	result, err := svc.Submit(7, 1, map[uint]string{11: "A"})
	require.NoError(t, err)

	_, err = svc.AttemptDetail(8, result.AttemptID, false)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	// Admins can read any attempt.
	detail, err := svc.AttemptDetail(8, result.AttemptID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.AttendedCount)
}
