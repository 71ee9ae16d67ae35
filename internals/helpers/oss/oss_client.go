// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

// OSSService wraps one bucket with an optional key prefix.
type OSSService struct {
	Client *oss.Client
	Bucket *oss.Bucket
	Prefix string

	endpoint   string
	bucketName string
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	ep = strings.TrimPrefix(ep, "https://")
	ep = strings.TrimPrefix(ep, "http://")
	return ep
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := normalizeEndpoint(getEnv("ALI_OSS_ENDPOINT"))
	accessKey := getEnv("ALI_OSS_ACCESS_KEY")
	secretKey := getEnv("ALI_OSS_SECRET_KEY")
	bucketName := getEnv("ALI_OSS_BUCKET")

	if endpoint == "" || accessKey == "" || secretKey == "" || bucketName == "" {
		return nil, fmt.Errorf("incomplete ALI_OSS_* environment")
	}

	cli, err := oss.New("https://"+endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("oss client init: %w", err)
	}
	bkt, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket: %w", err)
	}

	return &OSSService{
		Client:     cli,
		Bucket:     bkt,
		Prefix:     strings.TrimPrefix(prefix, "/"),
		endpoint:   endpoint,
		bucketName: bucketName,
	}, nil
}

func (s *OSSService) fullKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.Prefix == "" {
		return key
	}
	return strings.TrimSuffix(s.Prefix, "/") + "/" + key
}

// PublicURL renders the virtual-host style URL for a stored key.
func (s *OSSService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, s.endpoint, s.fullKey(key))
}

func (s *OSSService) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	opts := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	return s.Bucket.PutObject(s.fullKey(key), bytes.NewReader(data), opts...)
}

func (s *OSSService) GetObject(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.Bucket.GetObject(s.fullKey(key), oss.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(s.fullKey(key), oss.WithContext(ctx))
}

// ListKeysOlderThan walks the prefix and returns keys last modified before the
// cutoff. Keys are returned without the service prefix stripped.
func (s *OSSService) ListKeysOlderThan(ctx context.Context, subPrefix string, cutoff time.Time) ([]string, error) {
	marker := oss.Marker("")
	full := s.fullKey(subPrefix)
	var out []string
	for {
		lor, err := s.Bucket.ListObjects(oss.Prefix(full), marker, oss.MaxKeys(1000))
		if err != nil {
			return nil, err
		}
		for _, obj := range lor.Objects {
			if obj.Key == "" {
				continue
			}
			if obj.LastModified.Before(cutoff) {
				out = append(out, obj.Key)
			}
		}
		if lor.IsTruncated {
			marker = oss.Marker(lor.NextMarker)
		} else {
			break
		}
	}
	return out, nil
}

/* =======================================================================
   Error classification
======================================================================= */

// Backend-not-ready code reported by the store while it warms up.
const backendNotReadyCode = "ServiceUnavailable"

// IsNotFound reports whether err is the store's missing-object signal.
func IsNotFound(err error) bool {
	var se oss.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode == 404 || se.Code == "NoSuchKey"
	}
	return false
}

// IsRetriable reports whether err matches the retriable signal set:
// backend-not-ready, HTTP 502/503/504, or a plain network timeout.
// Everything else is terminal for that attempt.
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}
	var se oss.ServiceError
	if errors.As(err, &se) {
		if se.Code == backendNotReadyCode {
			return true
		}
		switch se.StatusCode {
		case 502, 503, 504:
			return true
		}
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
