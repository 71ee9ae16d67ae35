// file: internals/features/assessments/evidence/service/evidence_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	model "cyberassess_backend/internals/features/assessments/evidence/model"
	"cyberassess_backend/internals/configs"
	"cyberassess_backend/internals/helpers/errs"
	ossHelper "cyberassess_backend/internals/helpers/oss"
)

// Service is the resilient evidence layer: one metadata row per stored
// blob, compensating cleanup on partial failure, retry-with-backoff on
// reads. Ordering within one operation is fixed: on upload the blob write
// precedes the metadata write; on delete the blob delete precedes the
// metadata delete.
type Service struct {
	Blob    ossHelper.BlobService
	Meta    MetadataStore
	Session SessionChecker
	Retry   RetryPolicy

	MaxFileSizeBytes int64
	MaxFilesPerOwner int
	Prefix           string

	now func() time.Time
}

func NewService(blob ossHelper.BlobService, meta MetadataStore, session SessionChecker) *Service {
	return &Service{
		Blob:             blob,
		Meta:             meta,
		Session:          session,
		Retry:            DefaultRetryPolicy(),
		MaxFileSizeBytes: configs.GetEnvInt64("EVIDENCE_MAX_FILE_BYTES", 10*1024*1024),
		MaxFilesPerOwner: configs.GetEnvInt("EVIDENCE_MAX_FILES_PER_ITEM", 5),
		Prefix:           configs.GetEnv("EVIDENCE_PREFIX", "evidence/"),
		now:              time.Now,
	}
}

type UploadInput struct {
	FileName    string
	Data        []byte
	ContentType string
	Owner       OwnerContext
	UploadedBy  uuid.UUID
}

// Upload validates, stores the blob, then records metadata. A metadata
// failure triggers a compensating blob delete so no orphan survives a
// failed save.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*model.EvidenceFileModel, error) {
	// Validation happens before any network call.
	if len(in.Data) == 0 {
		return nil, errs.Validationf("empty file")
	}
	if int64(len(in.Data)) > s.MaxFileSizeBytes {
		return nil, errs.Validationf("file exceeds the %d byte limit", s.MaxFileSizeBytes)
	}
	n, err := s.Meta.CountForOwner(ctx, in.Owner)
	if err != nil {
		return nil, err
	}
	if n >= int64(s.MaxFilesPerOwner) {
		return nil, errs.Validationf("at most %d files per item", s.MaxFilesPerOwner)
	}

	data := in.Data
	name := SanitizeFileName(in.FileName)
	contentType := in.ContentType
	if ossHelper.IsImagePayload(data) {
		if compressed, newExt, cerr := ossHelper.CompressImageToWebP(data); cerr == nil {
			data = compressed
			name = ossHelper.ReplaceExt(name, newExt)
			contentType = "image/webp"
		}
		// Compression failure is not fatal; the original payload is kept.
	}

	key := BuildObjectKey(s.Prefix, in.Owner.AssessmentID, in.Owner.OwnerID, s.now(), name)

	if err := s.Blob.Put(ctx, key, data, contentType); err != nil {
		if ossHelper.IsRetriable(err) {
			return nil, errs.Transientf("blob upload: %v", err)
		}
		return nil, err
	}

	row := &model.EvidenceFileModel{
		EvidenceFileID:           uuid.New(),
		EvidenceFileAssessmentID: in.Owner.AssessmentID,
		EvidenceFileOwnerKind:    in.Owner.OwnerKind,
		EvidenceFileOwnerID:      in.Owner.OwnerID,
		EvidenceFileBlobKey:      key,
		EvidenceFilePublicURL:    s.Blob.PublicURL(key),
		EvidenceFileName:         name,
		EvidenceFileSizeBytes:    int64(len(data)),
		EvidenceFileContentType:  contentType,
		EvidenceFileUploadedBy:   in.UploadedBy,
	}
	if err := s.Meta.Create(ctx, row); err != nil {
		// Compensating action: remove the just-uploaded blob so the store
		// holds no orphan for this path.
		if delErr := s.Blob.Delete(ctx, key); delErr != nil {
			log.Printf("[EVIDENCE] compensating delete of %q failed: %v (reaper will sweep it)", key, delErr)
			return nil, errs.Reconcilef("evidence save failed and cleanup failed: %v", err)
		}
		// The input was fine; the metadata store refused the write. Report
		// a backend failure so the client retries instead of re-validating.
		return nil, errs.Transientf("evidence save failed, upload rolled back: %v", err)
	}
	return row, nil
}

// Download revalidates the session, then fetches the blob. Not-found is
// reported distinctly from transient trouble.
func (s *Service) Download(ctx context.Context, fileID uuid.UUID) (*model.EvidenceFileModel, []byte, error) {
	if err := s.Session.EnsureFresh(ctx); err != nil {
		return nil, nil, errs.Permissionf("session revalidation failed: %v", err)
	}

	row, err := s.Meta.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.Blob.Get(ctx, row.EvidenceFileBlobKey)
	if err != nil {
		switch {
		case ossHelper.IsNotFound(err):
			return nil, nil, errs.NotFoundf("blob %s", row.EvidenceFileBlobKey)
		case ossHelper.IsRetriable(err):
			return nil, nil, errs.Transientf("blob fetch: %v", err)
		default:
			return nil, nil, err
		}
	}
	return row, data, nil
}

// Delete removes the blob first and the metadata row second. If the blob
// delete fails the metadata row survives, so the cleanup can be retried
// later instead of losing track of the blob.
func (s *Service) Delete(ctx context.Context, fileID uuid.UUID) error {
	row, err := s.Meta.Get(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.Blob.Delete(ctx, row.EvidenceFileBlobKey); err != nil && !ossHelper.IsNotFound(err) {
		if ossHelper.IsRetriable(err) {
			return errs.Transientf("blob delete: %v", err)
		}
		return err
	}
	return s.Meta.Delete(ctx, fileID)
}

// ListForOwner reads the metadata rows under the retry policy. Exhausted
// retries degrade to an empty, usable listing (degraded=true) instead of
// an error screen.
func (s *Service) ListForOwner(ctx context.Context, owner OwnerContext) (rows []model.EvidenceFileModel, degraded bool, err error) {
	opErr := s.Retry.Do(ctx, func(ctx context.Context) error {
		var e error
		rows, e = s.Meta.ListForOwner(ctx, owner)
		return e
	})
	if opErr != nil {
		if errs.IsTransient(opErr) {
			log.Printf("[EVIDENCE] listing degraded for owner %s: %v", owner.OwnerID, opErr)
			return nil, true, nil
		}
		return nil, false, opErr
	}
	return rows, false, nil
}
