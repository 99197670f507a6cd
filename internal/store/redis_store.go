package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
)

// RedisStore keeps the booking set as one JSON value under BookingsKey.
// It is the default backend: the collection is small (one consultation
// track) so a whole-blob GET/SET round trip is cheaper than modelling
// individual records.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore returns a store backed by the given client.  The client
// must be non-nil and already connected.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, key: BookingsKey}
}

// Load fetches and decodes the booking set.  A missing key is an empty
// set, not an error.
func (s *RedisStore) Load(ctx context.Context) ([]model.Booking, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Booking{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	var bookings []model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return bookings, nil
}

// SaveAll encodes the set and replaces the value in one SET.  Bookings
// have no expiry; the set lives until explicitly cleared.
func (s *RedisStore) SaveAll(ctx context.Context, bookings []model.Booking) error {
	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
