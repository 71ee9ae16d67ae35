// file: internals/features/assessments/impact/dto/impact_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "cyberassess_backend/internals/features/assessments/impact/model"
)

// CommitImpactRequest replaces the assessment's impact facts in one
// explicit write. There is no field-at-a-time autosave; the client sends
// the whole form and gets the derived scores back.
type CommitImpactRequest struct {
	HadIncident   bool `json:"had_incident"`
	RecoveryHours int  `json:"recovery_hours" validate:"gte=0,lte=8760"`

	HadBreach      bool   `json:"had_breach"`
	BreachSeverity string `json:"breach_severity" validate:"omitempty,oneof=none low medium high critical"`

	Facts datatypes.JSON `json:"facts" validate:"omitempty"`
}

type ImpactResponse struct {
	ImpactScoreID uuid.UUID `json:"impact_score_id"`
	AssessmentID  uuid.UUID `json:"assessment_id"`

	HadIncident    bool   `json:"had_incident"`
	RecoveryHours  int    `json:"recovery_hours"`
	HadBreach      bool   `json:"had_breach"`
	BreachSeverity string `json:"breach_severity"`

	Facts datatypes.JSON `json:"facts,omitempty"`

	SchemaVersion     int     `json:"schema_version"`
	IncidentComponent float64 `json:"incident_component"`
	BreachComponent   float64 `json:"breach_component"`
	Total             float64 `json:"total"`
	LegacyTotal       int     `json:"legacy_total"`

	UpdatedAt time.Time `json:"updated_at"`
}

func FromImpactModel(m *model.ImpactScoreModel) ImpactResponse {
	return ImpactResponse{
		ImpactScoreID:     m.ImpactScoreID,
		AssessmentID:      m.ImpactScoreAssessmentID,
		HadIncident:       m.ImpactScoreHadIncident,
		RecoveryHours:     m.ImpactScoreRecoveryHours,
		HadBreach:         m.ImpactScoreHadBreach,
		BreachSeverity:    m.ImpactScoreBreachSeverity,
		Facts:             m.ImpactScoreFacts,
		SchemaVersion:     m.ImpactScoreSchemaVersion,
		IncidentComponent: m.ImpactScoreIncidentComponent,
		BreachComponent:   m.ImpactScoreBreachComponent,
		Total:             m.ImpactScoreTotal,
		LegacyTotal:       m.ImpactScoreLegacyTotal,
		UpdatedAt:         m.ImpactScoreUpdatedAt,
	}
}
