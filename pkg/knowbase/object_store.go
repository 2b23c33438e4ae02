package knowbase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
)

// ObjectStoreSource fetches KB documents from a GCS bucket. When a redis
// client is supplied, decoded payloads are cached read-through so repeated
// generations against the same project do not re-download the document.
type ObjectStoreSource struct {
	client   *storage.Client
	bucket   string
	rdb      *redis.Client
	cacheTTL time.Duration
}

var _ KnowledgeSource = &ObjectStoreSource{}

func NewObjectStoreSource(client *storage.Client, bucket string, rdb *redis.Client) *ObjectStoreSource {
	return &ObjectStoreSource{
		client:   client,
		bucket:   bucket,
		rdb:      rdb,
		cacheTTL: 10 * time.Minute,
	}
}

func (s *ObjectStoreSource) FetchProject(ctx context.Context, key string) (*Project, error) {
	objectName := key + ".json"

	if data, ok := s.cacheGet(ctx, objectName); ok {
		return ParseProject(key, data)
	}

	reader, err := s.client.Bucket(s.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("open KB object %s/%s: %w", s.bucket, objectName, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read KB object %s/%s: %w", s.bucket, objectName, err)
	}

	project, err := ParseProject(key, data)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, objectName, data)
	return project, nil
}

func (s *ObjectStoreSource) cacheGet(ctx context.Context, objectName string) ([]byte, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, cacheKey(objectName)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *ObjectStoreSource) cacheSet(ctx context.Context, objectName string, data []byte) {
	if s.rdb == nil {
		return
	}
	// Cache failures are invisible to callers; the bucket remains the truth.
	s.rdb.Set(ctx, cacheKey(objectName), data, s.cacheTTL)
}

func cacheKey(objectName string) string {
	return "knowbase:kb:" + objectName
}
