// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/constants"
)

// saveIfNewer writes ARGV[1] with a PX of ARGV[3] unless the stored
// snapshot's version is at least ARGV[2].
var saveIfNewer = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
	local stored = cjson.decode(current)
	if tonumber(stored.version) >= tonumber(ARGV[2]) then
		return 0
	end
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// RedisRepository implements [Repository] using Redis.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis-backed session store.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func sessionKey(id string) string {
	return constants.RedisPrefixReaderSession + id
}

/*
Save stores a snapshot if it is newer than the stored one.

Timer callbacks and request handlers save concurrently, so writes can
arrive out of order; the version check runs inside Redis to keep the
newest snapshot.
*/
func (repository *RedisRepository) Save(context context.Context, rec Record, ttl time.Duration) (bool, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	written, err := saveIfNewer.Run(context, repository.client,
		[]string{sessionKey(rec.ID)},
		payload, strconv.FormatUint(rec.Version, 10), ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return written == 1, nil
}

// Load retrieves a snapshot by session ID.
func (repository *RedisRepository) Load(context context.Context, id string) (*Record, error) {
	payload, err := repository.client.Get(context, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Reader session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	rec := &Record{}
	if err := json.Unmarshal(payload, rec); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	return rec, nil
}

// Delete removes a snapshot.
func (repository *RedisRepository) Delete(context context.Context, id string) error {
	if err := repository.client.Del(context, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
