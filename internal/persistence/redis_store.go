package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/petrijr/featuretour/pkg/api"
)

// RedisTourStore is a TourStore backed by Redis.
// It uses a simple key structure:
//
//	<prefix>tour:<id>   => JSON-encoded TourDocument
//	<prefix>idx:tours   => ZSET of all tour IDs (score 0, lexical order)
type RedisTourStore struct {
	client *redis.Client
	prefix string
}

var _ TourStore = (*RedisTourStore)(nil)

// NewRedisTourStore creates a RedisTourStore.
// prefix is optional but recommended (e.g. "featuretour:").
func NewRedisTourStore(client *redis.Client, prefix string) *RedisTourStore {
	if prefix == "" {
		prefix = "featuretour:"
	}
	return &RedisTourStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisTourStore) keyTour(id string) string {
	return s.prefix + "tour:" + id
}

func (s *RedisTourStore) keyIndex() string {
	return s.prefix + "idx:tours"
}

func (s *RedisTourStore) SaveTour(ctx context.Context, doc api.TourDocument) error {
	if err := validateForSave(doc); err != nil {
		return err
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keyTour(doc.TourID), data, 0)
		pipe.ZAdd(ctx, s.keyIndex(), redis.Z{Score: 0, Member: doc.TourID})
		return nil
	})
	return err
}

func (s *RedisTourStore) GetTour(ctx context.Context, tourID string) (api.TourDocument, error) {
	data, err := s.client.Get(ctx, s.keyTour(tourID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return api.TourDocument{}, ErrTourNotFound
		}
		return api.TourDocument{}, err
	}
	return DecodeDocument(data)
}

func (s *RedisTourStore) ListTours(ctx context.Context) ([]api.TourDocument, error) {
	ids, err := s.client.ZRange(ctx, s.keyIndex(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]api.TourDocument, 0, len(ids))
	for _, id := range ids {
		doc, err := s.GetTour(ctx, id)
		if errors.Is(err, ErrTourNotFound) {
			// Stale index entry; the document was removed out of band.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *RedisTourStore) DeleteTour(ctx context.Context, tourID string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.keyTour(tourID))
		pipe.ZRem(ctx, s.keyIndex(), tourID)
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrTourNotFound
	}
	return nil
}
