// file: internals/features/assessments/scoring/weights.go
package scoring

import "math"

// Assessment categories. One assessment item exists per category; the
// category set is a fixed business constant, not user-configurable.
const (
	CategoryGovernance       = "governance_policy"
	CategoryAccessControl    = "access_control"
	CategoryNetworkSecurity  = "network_security"
	CategoryDataProtection   = "data_protection"
	CategoryIncidentResponse = "incident_response"
	CategoryBackupRecovery   = "backup_recovery"
	CategoryAwareness        = "awareness_training"
)

// Weights per category. They must sum to AssessmentMaxScore.
var categoryWeights = map[string]float64{
	CategoryGovernance:       15,
	CategoryAccessControl:    15,
	CategoryNetworkSecurity:  15,
	CategoryDataProtection:   15,
	CategoryIncidentResponse: 15,
	CategoryBackupRecovery:   15,
	CategoryAwareness:        10,
}

const (
	AssessmentMaxScore = 100.0
	ItemMaxScore       = 10.0
)

// Item status values and their raw scores on the 0–10 item scale.
const (
	ItemStatusPass    = "pass"
	ItemStatusPartial = "partial"
	ItemStatusFail    = "fail"
)

func ItemScoreForStatus(status string) float64 {
	switch status {
	case ItemStatusPass:
		return ItemMaxScore
	case ItemStatusPartial:
		return ItemMaxScore / 2
	default:
		return 0
	}
}

// Categories returns the fixed category list in report order.
func Categories() []string {
	return []string{
		CategoryGovernance,
		CategoryAccessControl,
		CategoryNetworkSecurity,
		CategoryDataProtection,
		CategoryIncidentResponse,
		CategoryBackupRecovery,
		CategoryAwareness,
	}
}

// CategoryWeight returns the weight of a category, zero for unknown ones.
func CategoryWeight(category string) float64 {
	return categoryWeights[category]
}

// ScoredItem is the slice element AssessmentTotal folds over; it mirrors
// the two columns of assessment_items the total depends on.
type ScoredItem struct {
	Category string
	Score    float64 // raw item score on 0–ItemMaxScore
}

// AssessmentTotal computes the weighted total on 0–AssessmentMaxScore.
// Each item contributes weight × score/ItemMaxScore; items in unknown
// categories contribute nothing.
func AssessmentTotal(items []ScoredItem) float64 {
	var total float64
	for _, it := range items {
		w := categoryWeights[it.Category]
		if w == 0 {
			continue
		}
		score := it.Score
		if score < 0 {
			score = 0
		}
		if score > ItemMaxScore {
			score = ItemMaxScore
		}
		total += w * score / ItemMaxScore
	}
	return math.Round(total*100) / 100
}
