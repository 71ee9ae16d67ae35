package helper

import (
	"context"
	"errors"
)

/*
BlobService is the uniform upload/download/delete facade consumed by the
evidence layer. Keys are relative to the service prefix; PublicURL renders
the externally visible address for a stored key.
*/
type BlobService interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// --------------------------------------------------
// Aliyun OSS implementation
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// NewOSSBlobServiceFromEnv builds an instance from ENV. prefix is optional
// (e.g. "evidence/").
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return b.svc.PutObject(ctx, key, data, contentType)
}

func (b *OSSBlobService) Get(ctx context.Context, key string) ([]byte, error) {
	return b.svc.GetObject(ctx, key)
}

func (b *OSSBlobService) Delete(ctx context.Context, key string) error {
	return b.svc.DeleteObject(ctx, key)
}

func (b *OSSBlobService) PublicURL(key string) string {
	return b.svc.PublicURL(key)
}

// --------------------------------------------------
// Mock for unit tests
// --------------------------------------------------

type MockBlobService struct {
	PutFn       func(ctx context.Context, key string, data []byte, contentType string) error
	GetFn       func(ctx context.Context, key string) ([]byte, error)
	DeleteFn    func(ctx context.Context, key string) error
	PublicURLFn func(key string) string
}

func (m *MockBlobService) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if m.PutFn == nil {
		return errors.New("not implemented")
	}
	return m.PutFn(ctx, key, data, contentType)
}

func (m *MockBlobService) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.GetFn(ctx, key)
}

func (m *MockBlobService) Delete(ctx context.Context, key string) error {
	if m.DeleteFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteFn(ctx, key)
}

func (m *MockBlobService) PublicURL(key string) string {
	if m.PublicURLFn == nil {
		return "https://mock.local/" + key
	}
	return m.PublicURLFn(key)
}
