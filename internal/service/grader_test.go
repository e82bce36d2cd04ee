package service

import (
	"testing"

	"crackit_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestScorePercent(t *testing.T) {
	assert.Equal(t, 0, ScorePercent(0, 0), "zero questions yields zero, not a division error")
	assert.Equal(t, 100, ScorePercent(3, 3))
	assert.Equal(t, 50, ScorePercent(2, 4))
	assert.Equal(t, 66, ScorePercent(2, 3), "percent is floored")
	assert.Equal(t, 33, ScorePercent(1, 3))
}

func TestGradeOrdered_AllCorrect(t *testing.T) {
	correct := []model.AnswerOption{model.OptionA, model.OptionB, model.OptionC}

	outcome := GradeOrdered(correct, []model.AnswerOption{model.OptionA, model.OptionB, model.OptionC})

	assert.Equal(t, 3, outcome.Total)
	assert.Equal(t, 3, outcome.Attended)
	assert.Equal(t, 3, outcome.Correct)
	assert.Equal(t, 100, outcome.Percent)
}

func TestGradeOrdered_PartiallyCorrect(t *testing.T) {
	correct := []model.AnswerOption{model.OptionA, model.OptionB, model.OptionC}

	outcome := GradeOrdered(correct, []model.AnswerOption{model.OptionA, model.OptionB, model.OptionD})

	assert.Equal(t, 2, outcome.Correct)
	assert.Equal(t, 66, outcome.Percent)
}

func TestGradeOrdered_SkippedAndMissingAnswers(t *testing.T) {
	correct := []model.AnswerOption{model.OptionA, model.OptionB, model.OptionC, model.OptionD}

	// Second answer skipped, fourth missing entirely.
	outcome := GradeOrdered(correct, []model.AnswerOption{model.OptionA, model.OptionNone, model.OptionC})

	assert.Equal(t, 4, outcome.Total)
	assert.Equal(t, 2, outcome.Attended)
	assert.Equal(t, 2, outcome.Correct)
	assert.Equal(t, 50, outcome.Percent)
}

func TestGradeOrdered_ExtraAnswersIgnored(t *testing.T) {
	correct := []model.AnswerOption{model.OptionA}

	outcome := GradeOrdered(correct, []model.AnswerOption{model.OptionA, model.OptionB, model.OptionC})

	assert.Equal(t, 1, outcome.Total)
	assert.Equal(t, 1, outcome.Correct)
	assert.Equal(t, 100, outcome.Percent)
}

func TestGradeOrdered_EmptyQuiz(t *testing.T) {
	outcome := GradeOrdered(nil, nil)

	assert.Equal(t, 0, outcome.Total)
	assert.Equal(t, 0, outcome.Percent)
}
