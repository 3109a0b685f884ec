package credentials

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"github.com/dmitrijs2005/cyphergate/internal/gate/models"
	"github.com/redis/go-redis/v9"
)

const (
	BackendRedis = "redis"

	DefaultRedisKeyPrefix = "cyphergate:"

	fieldUsername     = "username"
	fieldPasswordHash = "password_hash"
)

type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to url (redis://...) and verifies the connection.
// The record is kept in the hash "<prefix>credentials".
func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	if url == "" {
		return nil, storageError("redis", errors.New("redis url is required"))
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, storageError("parse redis url", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, storageError("ping redis", err)
	}

	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisStore{client: client, key: prefix + "credentials"}, nil
}

func (s *RedisStore) Backend() string { return BackendRedis }

// Location names the hash key; the URL is not shown since it may carry a
// password.
func (s *RedisStore) Location() string { return "key " + s.key }

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Save(ctx context.Context, rec models.CredentialRecord) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.key)
		p.HSet(ctx, s.key, fieldUsername, rec.Username, fieldPasswordHash, rec.PasswordHash)
		return nil
	})
	if err != nil {
		return storageError("save", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (models.CredentialRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return models.CredentialRecord{}, storageError("load", err)
	}
	if len(fields) == 0 {
		return models.CredentialRecord{}, common.ErrNotFound
	}

	user, hash := fields[fieldUsername], fields[fieldPasswordHash]
	if user == "" || hash == "" {
		return models.CredentialRecord{}, storageError("load", errCorruptRecord)
	}
	return models.CredentialRecord{Username: user, PasswordHash: []byte(hash)}, nil
}

func (s *RedisStore) Exists(ctx context.Context) (bool, error) {
	n, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		return false, storageError("exists", err)
	}
	return n > 0, nil
}
