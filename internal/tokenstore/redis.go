package tokenstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the entries under <prefix>:token and <prefix>:user.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a Redis-backed implementation.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "hr-console:session"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(entry string) string {
	return s.prefix + ":" + entry
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	user, err := encodeIdentity(rec.Identity)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(EntryToken), rec.Token, 0)
		pipe.Set(ctx, s.key(EntryUser), user, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("tokenstore: redis save: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (Record, error) {
	values, err := s.client.MGet(ctx, s.key(EntryToken), s.key(EntryUser)).Result()
	if err != nil {
		return Record{}, fmt.Errorf("tokenstore: redis load: %w", err)
	}
	token, hasToken := values[0].(string)
	user, hasUser := values[1].(string)
	return decodeEntries(token, hasToken, user, hasUser)
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(EntryToken), s.key(EntryUser)).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis clear: %w", err)
	}
	return nil
}
