package service

import "crackit_backend/internal/model"

// GradeOutcome summarizes one graded submission.
type GradeOutcome struct {
	Total    int
	Attended int
	Correct  int
	Percent  int
}

// ScorePercent floors the percentage. Zero questions yields zero, never a
// division error.
func ScorePercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return correct * 100 / total
}

// GradeOrdered grades positionally: submitted[i] answers correct[i]. Missing
// trailing answers and blanks count as not attended and incorrect.
func GradeOrdered(correct, submitted []model.AnswerOption) GradeOutcome {
	outcome := GradeOutcome{Total: len(correct)}

	for i, want := range correct {
		var got model.AnswerOption
		if i < len(submitted) {
			got = submitted[i]
		}
		if got != model.OptionNone {
			outcome.Attended++
		}
		if got.Matches(want) {
			outcome.Correct++
		}
	}

	outcome.Percent = ScorePercent(outcome.Correct, outcome.Total)
	return outcome
}
