// file: internals/features/assessments/evidence/model/evidence_file_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner kinds: an evidence file belongs to exactly one assessment item or
// one impact-score field.
const (
	EvidenceOwnerItem        = "assessment_item"
	EvidenceOwnerImpactField = "impact_field"
)

// EvidenceFileModel maps the `evidence_files` table: the metadata row for
// one stored blob. A blob without a row is an orphan and gets reaped.
type EvidenceFileModel struct {
	EvidenceFileID uuid.UUID `json:"evidence_file_id" gorm:"column:evidence_file_id;type:uuid;primaryKey"`

	EvidenceFileAssessmentID uuid.UUID `json:"evidence_file_assessment_id" gorm:"column:evidence_file_assessment_id;type:uuid;not null;index:idx_evidence_files_owner,priority:1"`
	EvidenceFileOwnerKind    string    `json:"evidence_file_owner_kind" gorm:"column:evidence_file_owner_kind;type:varchar(24);not null;index:idx_evidence_files_owner,priority:2"`
	EvidenceFileOwnerID      uuid.UUID `json:"evidence_file_owner_id" gorm:"column:evidence_file_owner_id;type:uuid;not null;index:idx_evidence_files_owner,priority:3"`

	EvidenceFileBlobKey   string `json:"evidence_file_blob_key" gorm:"column:evidence_file_blob_key;type:text;not null;uniqueIndex:uq_evidence_files_blob_key"`
	EvidenceFilePublicURL string `json:"evidence_file_public_url" gorm:"column:evidence_file_public_url;type:text;not null"`

	EvidenceFileName        string `json:"evidence_file_name" gorm:"column:evidence_file_name;type:varchar(255);not null"`
	EvidenceFileSizeBytes   int64  `json:"evidence_file_size_bytes" gorm:"column:evidence_file_size_bytes;not null;default:0"`
	EvidenceFileContentType string `json:"evidence_file_content_type" gorm:"column:evidence_file_content_type;type:varchar(120);not null;default:''"`

	EvidenceFileUploadedBy uuid.UUID `json:"evidence_file_uploaded_by" gorm:"column:evidence_file_uploaded_by;type:uuid;not null"`

	EvidenceFileCreatedAt time.Time      `json:"evidence_file_created_at" gorm:"column:evidence_file_created_at;not null;autoCreateTime"`
	EvidenceFileUpdatedAt time.Time      `json:"evidence_file_updated_at" gorm:"column:evidence_file_updated_at;not null;autoUpdateTime"`
	EvidenceFileDeletedAt gorm.DeletedAt `json:"evidence_file_deleted_at" gorm:"column:evidence_file_deleted_at;index"`
}

func (EvidenceFileModel) TableName() string {
	return "evidence_files"
}
