package constants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiscalYearRollsOverOnOctoberFirst(t *testing.T) {
	sep30 := time.Date(2026, time.September, 30, 23, 59, 59, 0, time.UTC)
	oct1 := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	dec31 := time.Date(2026, time.December, 31, 12, 0, 0, 0, time.UTC)
	jan1 := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2026, FiscalYearOf(sep30))
	assert.Equal(t, 2027, FiscalYearOf(oct1))
	assert.Equal(t, 2027, FiscalYearOf(dec31))
	assert.Equal(t, 2027, FiscalYearOf(jan1))
}

func TestDisplayFiscalYearAddsBuddhistOffset(t *testing.T) {
	assert.Equal(t, 2569, DisplayFiscalYear(2026))
	assert.Equal(t, 2570, DisplayFiscalYear(2027))
}
