package model

import (
	"testing"

	"crackit_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOption_Normalizes(t *testing.T) {
	opt, err := ParseOption("a")
	require.NoError(t, err)
	assert.Equal(t, OptionA, opt)

	opt, err = ParseOption("  D ")
	require.NoError(t, err)
	assert.Equal(t, OptionD, opt)
}

func TestParseOption_BlankIsSkipped(t *testing.T) {
	opt, err := ParseOption("")
	require.NoError(t, err)
	assert.Equal(t, OptionNone, opt)

	opt, err = ParseOption("   ")
	require.NoError(t, err)
	assert.Equal(t, OptionNone, opt)
}

func TestParseOption_RejectsUnknown(t *testing.T) {
	for _, raw := range []string{"E", "AB", "1", "yes"} {
		_, err := ParseOption(raw)
		assert.ErrorIs(t, err, util.ErrInvalidOption, "input %q should be rejected", raw)
	}
}

func TestAnswerOption_Matches(t *testing.T) {
	assert.True(t, OptionB.Matches(OptionB))
	assert.True(t, AnswerOption("b").Matches(OptionB), "comparison ignores case")
	assert.False(t, OptionA.Matches(OptionB))
	assert.False(t, OptionNone.Matches(OptionA), "a skipped answer never matches")
}

func TestDepartmentLabel(t *testing.T) {
	assert.Equal(t, "Computer Science & IT", DepartmentLabel("cse_it"))
	assert.Equal(t, "unknown_slug", DepartmentLabel("unknown_slug"))
}
