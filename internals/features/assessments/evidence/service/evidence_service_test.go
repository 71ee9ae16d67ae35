package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "cyberassess_backend/internals/features/assessments/evidence/model"
	"cyberassess_backend/internals/helpers/errs"
	ossHelper "cyberassess_backend/internals/helpers/oss"
)

/* ========================================================
   In-memory fakes
======================================================== */

type fakeMetaStore struct {
	rows       map[uuid.UUID]*model.EvidenceFileModel
	failCreate error
	failList   error
	listCalls  int
}

func newFakeMetaStore() *fakeMetaStore {
	return &fakeMetaStore{rows: map[uuid.UUID]*model.EvidenceFileModel{}}
}

func (f *fakeMetaStore) Create(_ context.Context, row *model.EvidenceFileModel) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	cp := *row
	f.rows[row.EvidenceFileID] = &cp
	return nil
}

func (f *fakeMetaStore) Get(_ context.Context, fileID uuid.UUID) (*model.EvidenceFileModel, error) {
	row, ok := f.rows[fileID]
	if !ok {
		return nil, errs.NotFoundf("evidence file %s", fileID)
	}
	cp := *row
	return &cp, nil
}

func (f *fakeMetaStore) Delete(_ context.Context, fileID uuid.UUID) error {
	delete(f.rows, fileID)
	return nil
}

func (f *fakeMetaStore) ListForOwner(_ context.Context, owner OwnerContext) ([]model.EvidenceFileModel, error) {
	f.listCalls++
	if f.failList != nil {
		return nil, f.failList
	}
	var out []model.EvidenceFileModel
	for _, row := range f.rows {
		if row.EvidenceFileAssessmentID == owner.AssessmentID &&
			row.EvidenceFileOwnerKind == owner.OwnerKind &&
			row.EvidenceFileOwnerID == owner.OwnerID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeMetaStore) CountForOwner(ctx context.Context, owner OwnerContext) (int64, error) {
	rows, err := f.ListForOwner(ctx, owner)
	f.listCalls-- // counting is not a listing attempt
	return int64(len(rows)), err
}

type fakeBlobStore struct {
	objects    map[string][]byte
	failPut    error
	failDelete error
	failGet    error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) asService() *ossHelper.MockBlobService {
	return &ossHelper.MockBlobService{
		PutFn: func(_ context.Context, key string, data []byte, _ string) error {
			if f.failPut != nil {
				return f.failPut
			}
			f.objects[key] = data
			return nil
		},
		GetFn: func(_ context.Context, key string) ([]byte, error) {
			if f.failGet != nil {
				return nil, f.failGet
			}
			data, ok := f.objects[key]
			if !ok {
				return nil, oss.ServiceError{StatusCode: 404, Code: "NoSuchKey"}
			}
			return data, nil
		},
		DeleteFn: func(_ context.Context, key string) error {
			if f.failDelete != nil {
				return f.failDelete
			}
			delete(f.objects, key)
			return nil
		},
	}
}

func newTestService(meta *fakeMetaStore, blob *fakeBlobStore) *Service {
	svc := &Service{
		Blob:             blob.asService(),
		Meta:             meta,
		Session:          NoopSession{},
		Retry:            RetryPolicy{BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, MaxAttempts: 3, Sleep: func(context.Context, time.Duration) error { return nil }, Rand: func() float64 { return 0 }},
		MaxFileSizeBytes: 1024,
		MaxFilesPerOwner: 2,
		Prefix:           "evidence/",
		now:              func() time.Time { return time.Unix(1700000000, 0) },
	}
	return svc
}

func testOwner() OwnerContext {
	return OwnerContext{
		AssessmentID: uuid.New(),
		OwnerKind:    model.EvidenceOwnerItem,
		OwnerID:      uuid.New(),
	}
}

/* ========================================================
   Upload
======================================================== */

func TestUploadHappyPath(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)
	owner := testOwner()

	row, err := svc.Upload(context.Background(), UploadInput{
		FileName:   "my report!.pdf",
		Data:       []byte("pdf-bytes"),
		Owner:      owner,
		UploadedBy: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, "my_report.pdf", row.EvidenceFileName)
	assert.Contains(t, row.EvidenceFileBlobKey, "evidence/"+owner.AssessmentID.String())
	assert.Len(t, meta.rows, 1)
	assert.Len(t, blob.objects, 1)
	_, ok := blob.objects[row.EvidenceFileBlobKey]
	assert.True(t, ok, "blob key in metadata matches the stored object")
}

func TestUploadValidatesBeforeAnyNetworkCall(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	blob.failPut = errors.New("must never be reached")
	svc := newTestService(meta, blob)

	_, err := svc.Upload(context.Background(), UploadInput{
		FileName: "big.bin",
		Data:     make([]byte, 2048), // over the 1024 test ceiling
		Owner:    testOwner(),
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Empty(t, blob.objects)
}

func TestUploadEnforcesPerItemCount(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)
	owner := testOwner()

	for i := 0; i < 2; i++ {
		_, err := svc.Upload(context.Background(), UploadInput{
			FileName: "f.txt", Data: []byte("x"), Owner: owner,
		})
		require.NoError(t, err)
	}
	_, err := svc.Upload(context.Background(), UploadInput{
		FileName: "f.txt", Data: []byte("x"), Owner: owner,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Len(t, blob.objects, 2, "third blob never uploaded")
}

// An upload whose blob write succeeds but whose metadata write fails must
// leave zero metadata rows AND zero blobs for that path.
func TestUploadCompensatesOnMetadataFailure(t *testing.T) {
	meta := newFakeMetaStore()
	meta.failCreate = errors.New("metadata write refused")
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)

	_, err := svc.Upload(context.Background(), UploadInput{
		FileName: "report.pdf", Data: []byte("x"), Owner: testOwner(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTransient, "backend failure, client should retry")
	assert.NotErrorIs(t, err, errs.ErrValidation, "the upload itself was valid")
	assert.Empty(t, meta.rows, "no metadata row")
	assert.Empty(t, blob.objects, "compensating delete removed the blob")
}

func TestUploadSurfacesReconcileWhenCompensationFails(t *testing.T) {
	meta := newFakeMetaStore()
	meta.failCreate = errors.New("metadata write refused")
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)

	// The delete only starts failing after the put happened.
	blob.failDelete = errors.New("store down")

	_, err := svc.Upload(context.Background(), UploadInput{
		FileName: "report.pdf", Data: []byte("x"), Owner: testOwner(),
	})
	assert.ErrorIs(t, err, errs.ErrReconcile)
	assert.Len(t, blob.objects, 1, "orphan remains for the reaper")
	assert.Empty(t, meta.rows)
}

func TestUploadTransientPutError(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	blob.failPut = oss.ServiceError{StatusCode: 503}
	svc := newTestService(meta, blob)

	_, err := svc.Upload(context.Background(), UploadInput{
		FileName: "report.pdf", Data: []byte("x"), Owner: testOwner(),
	})
	assert.ErrorIs(t, err, errs.ErrTransient)
	assert.Empty(t, meta.rows)
}

/* ========================================================
   Download
======================================================== */

func TestDownloadDistinguishesNotFound(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)
	owner := testOwner()

	row, err := svc.Upload(context.Background(), UploadInput{
		FileName: "a.txt", Data: []byte("hello"), Owner: owner,
	})
	require.NoError(t, err)

	_, data, err := svc.Download(context.Background(), row.EvidenceFileID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	// Blob vanished out from under the metadata.
	delete(blob.objects, row.EvidenceFileBlobKey)
	_, _, err = svc.Download(context.Background(), row.EvidenceFileID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// Transient trouble is not a not-found.
	blob.objects[row.EvidenceFileBlobKey] = []byte("hello")
	blob.failGet = oss.ServiceError{StatusCode: 502}
	_, _, err = svc.Download(context.Background(), row.EvidenceFileID)
	assert.ErrorIs(t, err, errs.ErrTransient)
}

func TestDownloadRefreshesNearExpirySession(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)
	owner := testOwner()

	row, err := svc.Upload(context.Background(), UploadInput{
		FileName: "a.txt", Data: []byte("hello"), Owner: owner,
	})
	require.NoError(t, err)

	refreshed := false
	sess := NewTokenSession(time.Now().Add(10*time.Second), time.Minute,
		func(ctx context.Context) (time.Time, error) {
			refreshed = true
			return time.Now().Add(time.Hour), nil
		})
	svc.Session = sess

	_, _, err = svc.Download(context.Background(), row.EvidenceFileID)
	require.NoError(t, err)
	assert.True(t, refreshed, "near-expiry session was refreshed before the network call")

	// Second download: session is now fresh, no second refresh.
	refreshed = false
	_, _, err = svc.Download(context.Background(), row.EvidenceFileID)
	require.NoError(t, err)
	assert.False(t, refreshed)
}

/* ========================================================
   Delete
======================================================== */

func TestDeleteKeepsMetadataWhenBlobDeleteFails(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)

	row, err := svc.Upload(context.Background(), UploadInput{
		FileName: "a.txt", Data: []byte("hello"), Owner: testOwner(),
	})
	require.NoError(t, err)

	blob.failDelete = oss.ServiceError{StatusCode: 503}
	err = svc.Delete(context.Background(), row.EvidenceFileID)
	require.Error(t, err)
	assert.Len(t, meta.rows, 1, "metadata survives so cleanup can be retried")

	blob.failDelete = nil
	require.NoError(t, svc.Delete(context.Background(), row.EvidenceFileID))
	assert.Empty(t, meta.rows)
	assert.Empty(t, blob.objects)
}

/* ========================================================
   Listing with retry
======================================================== */

func TestListRetriesAndRecovers(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)
	owner := testOwner()

	_, err := svc.Upload(context.Background(), UploadInput{
		FileName: "a.txt", Data: []byte("hello"), Owner: owner,
	})
	require.NoError(t, err)

	// First listing attempts fail transiently; retry succeeds within budget.
	calls := 0
	meta.failList = oss.ServiceError{StatusCode: 503}
	svc.Retry.Retriable = func(err error) bool {
		calls++
		if calls >= 2 {
			meta.failList = nil
		}
		return ossHelper.IsRetriable(err)
	}

	rows, degraded, err := svc.ListForOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Len(t, rows, 1)
}

func TestListDegradesAfterExhaustion(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)
	owner := testOwner()

	meta.failList = oss.ServiceError{StatusCode: 503}
	rows, degraded, err := svc.ListForOwner(context.Background(), owner)
	require.NoError(t, err, "exhausted transient errors degrade, they do not fail")
	assert.True(t, degraded)
	assert.Empty(t, rows)
	assert.Equal(t, 3, meta.listCalls, "bounded attempt count respected")
}

func TestListTerminalErrorSurfaces(t *testing.T) {
	meta := newFakeMetaStore()
	blob := newFakeBlobStore()
	svc := newTestService(meta, blob)

	meta.failList = errors.New("relation does not exist")
	_, degraded, err := svc.ListForOwner(context.Background(), testOwner())
	require.Error(t, err)
	assert.False(t, degraded)
	assert.Equal(t, 1, meta.listCalls, "terminal errors are not retried")
}
