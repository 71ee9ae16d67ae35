package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberassess_backend/internals/helpers/errs"
)

func fullSet() []Line {
	out := make([]Line, 0, len(Categories()))
	for i, c := range Categories() {
		out = append(out, Line{Category: c, Amount: float64(i * 100)})
	}
	return out
}

func TestValidateLinesAcceptsCompleteSet(t *testing.T) {
	require.NoError(t, ValidateLines(fullSet()))
}

func TestValidateLinesRejectsMissingCategory(t *testing.T) {
	lines := fullSet()[1:]
	err := ValidateLines(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, err.Error(), Categories()[0])
}

func TestValidateLinesRejectsUnknownCategory(t *testing.T) {
	lines := append(fullSet(), Line{Category: "snacks", Amount: 1})
	err := ValidateLines(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestValidateLinesRejectsDuplicateCategory(t *testing.T) {
	lines := append(fullSet(), Line{Category: CategoryHardware, Amount: 5})
	err := ValidateLines(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestValidateLinesRejectsNegativeAmount(t *testing.T) {
	lines := fullSet()
	lines[2].Amount = -1
	err := ValidateLines(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestValidateLinesAcceptsZeroAmounts(t *testing.T) {
	lines := fullSet()
	for i := range lines {
		lines[i].Amount = 0
	}
	assert.NoError(t, ValidateLines(lines), "a zero figure is a statement, not an omission")
}
