package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"

	"github.com/katakuxiko/biz-rag-backend/internal/metrics"
)

// GCSStore — документы в бакете Cloud Storage (Firebase Storage), ключ instances/<userId>.json
type GCSStore struct {
	bucket *storage.BucketHandle
	keys   KeyFormat
}

func NewGCSStore(client *storage.Client, bucket string, keys KeyFormat) *GCSStore {
	return &GCSStore{bucket: client.Bucket(bucket), keys: keys}
}

func (s *GCSStore) Fetch(ctx context.Context, userID string) (doc []byte, err error) {
	defer func(start time.Time) {
		metrics.ObserveVendor(metrics.VendorStorage, start, err)
	}(time.Now())

	key := s.keys.Key(userID)
	r, err := s.bucket.Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("object %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open object %q: %w", key, err)
	}
	defer r.Close()

	doc, err = io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return doc, nil
}
