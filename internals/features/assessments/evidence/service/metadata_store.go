// file: internals/features/assessments/evidence/service/metadata_store.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "cyberassess_backend/internals/features/assessments/evidence/model"
	"cyberassess_backend/internals/helpers/errs"
)

// OwnerContext pins an evidence file to exactly one assessment item or one
// impact-score field.
type OwnerContext struct {
	AssessmentID uuid.UUID
	OwnerKind    string // model.EvidenceOwnerItem | model.EvidenceOwnerImpactField
	OwnerID      uuid.UUID
}

// MetadataStore is the metadata half of the evidence pair. The GORM
// implementation is the production one; tests swap in an in-memory fake.
type MetadataStore interface {
	Create(ctx context.Context, row *model.EvidenceFileModel) error
	Get(ctx context.Context, fileID uuid.UUID) (*model.EvidenceFileModel, error)
	Delete(ctx context.Context, fileID uuid.UUID) error
	ListForOwner(ctx context.Context, owner OwnerContext) ([]model.EvidenceFileModel, error)
	CountForOwner(ctx context.Context, owner OwnerContext) (int64, error)
}

type gormMetadataStore struct {
	db *gorm.DB
}

func NewMetadataStore(db *gorm.DB) MetadataStore {
	return &gormMetadataStore{db: db}
}

func (s *gormMetadataStore) Create(ctx context.Context, row *model.EvidenceFileModel) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *gormMetadataStore) Get(ctx context.Context, fileID uuid.UUID) (*model.EvidenceFileModel, error) {
	var row model.EvidenceFileModel
	if err := s.db.WithContext(ctx).
		Where("evidence_file_id = ?", fileID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("evidence file %s", fileID)
		}
		return nil, err
	}
	return &row, nil
}

func (s *gormMetadataStore) Delete(ctx context.Context, fileID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("evidence_file_id = ?", fileID).
		Delete(&model.EvidenceFileModel{}).Error
}

func (s *gormMetadataStore) ListForOwner(ctx context.Context, owner OwnerContext) ([]model.EvidenceFileModel, error) {
	var rows []model.EvidenceFileModel
	err := s.db.WithContext(ctx).
		Where("evidence_file_assessment_id = ? AND evidence_file_owner_kind = ? AND evidence_file_owner_id = ?",
			owner.AssessmentID, owner.OwnerKind, owner.OwnerID).
		Order("evidence_file_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *gormMetadataStore) CountForOwner(ctx context.Context, owner OwnerContext) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.EvidenceFileModel{}).
		Where("evidence_file_assessment_id = ? AND evidence_file_owner_kind = ? AND evidence_file_owner_id = ?",
			owner.AssessmentID, owner.OwnerKind, owner.OwnerID).
		Count(&n).Error
	return n, err
}
