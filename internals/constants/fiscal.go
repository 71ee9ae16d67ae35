package constants

import "time"

// Fiscal year convention: the reporting year rolls over on 1 October.
// Stored fiscal-year integers are calendar years; the Buddhist Era offset
// is display-only and must never be applied before persistence.
const (
	FiscalYearStartMonth = time.October
	BuddhistYearOffset   = 543
)

// FiscalYearOf returns the stored fiscal-year integer for a point in time.
// October–December belong to the following fiscal year.
func FiscalYearOf(t time.Time) int {
	if t.Month() >= FiscalYearStartMonth {
		return t.Year() + 1
	}
	return t.Year()
}

// DisplayFiscalYear renders a stored fiscal-year integer in Buddhist Era.
func DisplayFiscalYear(stored int) int {
	return stored + BuddhistYearOffset
}
