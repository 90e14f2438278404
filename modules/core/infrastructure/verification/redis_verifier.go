// Package verification implements the one-time login code contract over
// redis. Code issuance (SMS delivery and throttling) is owned by a separate
// system that writes codes under the same key prefix; this side only checks.
package verification

import (
	"context"
	"crypto/subtle"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/iota-uz/authgate/modules/core/services"
)

const defaultKeyPrefix = "authgate:logincode"

type RedisCodeVerifier struct {
	rdb       redis.UniversalClient
	keyPrefix string
}

func NewRedisCodeVerifier(rdb redis.UniversalClient, keyPrefix string) services.CodeVerifier {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisCodeVerifier{
		rdb:       rdb,
		keyPrefix: keyPrefix,
	}
}

// Verify consumes the stored code on a successful match so a code can only
// be used once.
func (v *RedisCodeVerifier) Verify(ctx context.Context, phone, code string) (bool, error) {
	key := v.keyPrefix + ":" + phone
	stored, err := v.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to load login code")
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	if err := v.rdb.Del(ctx, key).Err(); err != nil {
		return false, errors.Wrap(err, "failed to consume login code")
	}
	return true, nil
}
