// Package session provides the redis-backed implementation of the session
// store. Each session is a redis hash holding the owning user, the client
// category, and the bound attributes, expiring together under a single TTL.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/iota-uz/authgate/modules/core/domain/entities/session"
)

const (
	fieldUserID   = "_userId"
	fieldCategory = "_category"
)

type RedisStore struct {
	rdb       redis.UniversalClient
	keyPrefix string
	duration  time.Duration
}

func NewRedisStore(rdb redis.UniversalClient, keyPrefix string, duration time.Duration) session.Store {
	return &RedisStore{
		rdb:       rdb,
		keyPrefix: keyPrefix,
		duration:  duration,
	}
}

func newSessionToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "failed to generate session token")
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (s *RedisStore) key(token string) string {
	return s.keyPrefix + ":" + token
}

func (s *RedisStore) Start(ctx context.Context, userID uint, category string) (*session.Token, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	key := s.key(token)
	if err := s.rdb.HSet(ctx, key,
		fieldUserID, strconv.FormatUint(uint64(userID), 10),
		fieldCategory, category,
	).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}
	if err := s.rdb.Expire(ctx, key, s.duration).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to set session expiry")
	}

	return &session.Token{
		Value:     token,
		ExpiresIn: s.duration,
	}, nil
}

func (s *RedisStore) SetAttr(ctx context.Context, token, key, value string) error {
	exists, err := s.rdb.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return errors.Wrap(err, "failed to check session")
	}
	if exists == 0 {
		return errors.New("session not found")
	}
	if err := s.rdb.HSet(ctx, s.key(token), key, value).Err(); err != nil {
		return errors.Wrap(err, "failed to set session attribute")
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*session.Session, error) {
	key := s.key(token)
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	if len(fields) == 0 {
		return nil, nil
	}

	userID, err := strconv.ParseUint(fields[fieldUserID], 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "corrupt session record")
	}

	ttl, err := s.rdb.TTL(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session TTL")
	}

	attrs := make(map[string]string, len(fields))
	for k, v := range fields {
		if k == fieldUserID || k == fieldCategory {
			continue
		}
		attrs[k] = v
	}

	return &session.Session{
		Token:     token,
		UserID:    uint(userID),
		Category:  fields[fieldCategory],
		Attrs:     attrs,
		ExpiresIn: ttl,
	}, nil
}

// Destroy removes the session. Destroying a token that already expired is a
// no-op, not an error.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return errors.Wrap(err, "failed to destroy session")
	}
	return nil
}
