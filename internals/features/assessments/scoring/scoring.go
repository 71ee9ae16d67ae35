// file: internals/features/assessments/scoring/scoring.go
//
// Pure scoring functions. No I/O, no clock, no hidden state: identical
// inputs always produce identical outputs.
package scoring

import "math"

/* ========================================================
   Breach severity (closed set)
======================================================== */

type BreachSeverity string

const (
	BreachNone     BreachSeverity = "none"
	BreachLow      BreachSeverity = "low"
	BreachMedium   BreachSeverity = "medium"
	BreachHigh     BreachSeverity = "high"
	BreachCritical BreachSeverity = "critical"
)

/* ========================================================
   Legacy 0–15 penalty scale
======================================================== */

const LegacyMaxScore = 15

// IncidentPenalty is a non-increasing step function of recovery hours with
// breakpoints at exactly 4, 24 and 72 hours. No incident scores zero.
// Product decision: recovery_hours == 0 with had_incident == true is scored
// as "no incident" (matches the primary data-entry path).
func IncidentPenalty(hadIncident bool, recoveryHours int) int {
	if !hadIncident || recoveryHours <= 0 {
		return 0
	}
	switch {
	case recoveryHours <= 4:
		return -2
	case recoveryHours <= 24:
		return -5
	case recoveryHours <= 72:
		return -8
	default:
		return -15
	}
}

// BreachPenalty looks up the fixed severity→penalty table.
// Unknown severities score as the critical bucket rather than silently zero.
func BreachPenalty(hadBreach bool, severity BreachSeverity) int {
	if !hadBreach {
		return 0
	}
	switch severity {
	case BreachNone:
		return 0
	case BreachLow:
		return 2
	case BreachMedium:
		return 5
	case BreachHigh:
		return 8
	case BreachCritical:
		return 15
	default:
		return 15
	}
}

// LegacyImpactTotal combines both penalties on the legacy 0–15 scale,
// clamped at zero.
func LegacyImpactTotal(hadIncident bool, recoveryHours int, hadBreach bool, severity BreachSeverity) int {
	total := LegacyMaxScore + IncidentPenalty(hadIncident, recoveryHours) - BreachPenalty(hadBreach, severity)
	if total < 0 {
		return 0
	}
	return total
}

/* ========================================================
   Canonical 0–100 two-component scale
   (system of record; legacy rows are normalized before aggregation)
======================================================== */

const (
	ComponentMax = 50.0
	ImpactMax    = 100.0
)

// IncidentComponent scores the incident half on 0–50. Defaults to the
// maximum when no incident occurred.
func IncidentComponent(hadIncident bool, recoveryHours int) float64 {
	if !hadIncident || recoveryHours <= 0 {
		return ComponentMax
	}
	switch {
	case recoveryHours <= 4:
		return 40
	case recoveryHours <= 24:
		return 30
	case recoveryHours <= 72:
		return 20
	default:
		return 0
	}
}

// BreachComponent scores the breach half on 0–50. Defaults to the maximum
// when no breach occurred.
func BreachComponent(hadBreach bool, severity BreachSeverity) float64 {
	if !hadBreach {
		return ComponentMax
	}
	switch severity {
	case BreachNone:
		return ComponentMax
	case BreachLow:
		return 40
	case BreachMedium:
		return 25
	case BreachHigh:
		return 10
	case BreachCritical:
		return 0
	default:
		return 0
	}
}

// ImpactTotal is the canonical 0–100 impact score.
func ImpactTotal(hadIncident bool, recoveryHours int, hadBreach bool, severity BreachSeverity) float64 {
	return IncidentComponent(hadIncident, recoveryHours) + BreachComponent(hadBreach, severity)
}

// NormalizeLegacy converts a historical 0–15 total onto the canonical
// 0–100 scale. This is the one sanctioned conversion; mixing raw scales in
// an aggregate is a bug.
func NormalizeLegacy(legacyTotal int) float64 {
	if legacyTotal <= 0 {
		return 0
	}
	if legacyTotal >= LegacyMaxScore {
		return ImpactMax
	}
	return math.Round(float64(legacyTotal)*ImpactMax/LegacyMaxScore*100) / 100
}
