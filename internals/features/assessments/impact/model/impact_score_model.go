// file: internals/features/assessments/impact/model/impact_score_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Impact schema versions. Version 1 is the historical 0–15 penalty scale;
// version 2 (canonical) is the 0–100 two-component percentage scale.
const (
	ImpactSchemaLegacy    = 1
	ImpactSchemaCanonical = 2
)

// ImpactScoreModel maps the `impact_scores` table: at most one row per
// assessment, holding the incident/breach facts and their derived scores.
type ImpactScoreModel struct {
	ImpactScoreID uuid.UUID `json:"impact_score_id" gorm:"column:impact_score_id;type:uuid;primaryKey"`

	ImpactScoreAssessmentID uuid.UUID `json:"impact_score_assessment_id" gorm:"column:impact_score_assessment_id;type:uuid;not null;uniqueIndex:uq_impact_scores_assessment"`

	// Raw facts
	ImpactScoreHadIncident    bool   `json:"impact_score_had_incident" gorm:"column:impact_score_had_incident;not null;default:false"`
	ImpactScoreRecoveryHours  int    `json:"impact_score_recovery_hours" gorm:"column:impact_score_recovery_hours;not null;default:0"`
	ImpactScoreHadBreach      bool   `json:"impact_score_had_breach" gorm:"column:impact_score_had_breach;not null;default:false"`
	ImpactScoreBreachSeverity string `json:"impact_score_breach_severity" gorm:"column:impact_score_breach_severity;type:varchar(12);not null;default:'none'"`

	// Free-form incident detail captured alongside the structured facts.
	ImpactScoreFacts datatypes.JSON `json:"impact_score_facts" gorm:"column:impact_score_facts;type:jsonb"`

	// Derived values. Canonical rows carry the 0–100 component split; the
	// legacy total is kept for audit regardless of version.
	ImpactScoreSchemaVersion     int     `json:"impact_score_schema_version" gorm:"column:impact_score_schema_version;not null;default:2"`
	ImpactScoreIncidentComponent float64 `json:"impact_score_incident_component" gorm:"column:impact_score_incident_component;type:numeric(5,2);not null;default:50"`
	ImpactScoreBreachComponent   float64 `json:"impact_score_breach_component" gorm:"column:impact_score_breach_component;type:numeric(5,2);not null;default:50"`
	ImpactScoreTotal             float64 `json:"impact_score_total" gorm:"column:impact_score_total;type:numeric(5,2);not null;default:100"`
	ImpactScoreLegacyTotal       int     `json:"impact_score_legacy_total" gorm:"column:impact_score_legacy_total;not null;default:15"`

	ImpactScoreUpdatedBy uuid.UUID `json:"impact_score_updated_by" gorm:"column:impact_score_updated_by;type:uuid;not null"`

	ImpactScoreCreatedAt time.Time      `json:"impact_score_created_at" gorm:"column:impact_score_created_at;not null;autoCreateTime"`
	ImpactScoreUpdatedAt time.Time      `json:"impact_score_updated_at" gorm:"column:impact_score_updated_at;not null;autoUpdateTime"`
	ImpactScoreDeletedAt gorm.DeletedAt `json:"impact_score_deleted_at" gorm:"column:impact_score_deleted_at;index"`
}

func (ImpactScoreModel) TableName() string {
	return "impact_scores"
}
