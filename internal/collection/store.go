package collection

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"event-registry-service/internal/blob"
)

// Store treats one blob as the sole source of truth for an entire entity
// collection, serialized as a single JSON array. It provides the load/save
// halves of the read-modify-write cycle; callers own the mutate step.
//
// Nothing here guards against concurrent writers: between a Load and the
// paired Save another writer may rewrite the same blob, and whichever Save
// lands last wins. Repositories serialize the cycle per collection within
// this process.
type Store struct {
	client *blob.Client
	log    *zap.Logger
}

// NewStore creates a collection store over the given blob client.
func NewStore(client *blob.Client, log *zap.Logger) *Store {
	return &Store{client: client, log: log}
}

// Load fetches and decodes the collection stored at key.
//
// A missing blob is first-run bootstrap, not an error: the result is an
// empty slice. Content that does not decode as a JSON array is treated the
// same way, so a corrupted blob degrades to an empty collection instead of
// wedging every caller. Transport failures surface as StorageUnavailable.
func Load[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	data, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, blob.ErrObjectNotFound) {
			s.log.Debug("collection blob missing, starting empty", zap.String("key", key))
			return []T{}, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn("collection blob is not a well-formed array, treating as empty",
			zap.String("key", key),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

// Save serializes items as a canonical JSON array and overwrites the blob
// at key in full.
func Save[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	if err := s.client.Put(ctx, key, data); err != nil {
		return err
	}

	s.log.Debug("collection saved", zap.String("key", key), zap.Int("count", len(items)))
	return nil
}
