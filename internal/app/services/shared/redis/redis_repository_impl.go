package redis

import (
	"context"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := r.client.Del(ctx, keys...).Err()
	if err != nil {
		return exceptions.ErrRedisDeleteData(err)
	}
	return nil
}

// Set stores value as JSON. Raw strings are therefore stored quoted.
func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = r.client.Set(ctx, key, jsonValue, exp).Err()
	if err != nil {
		return exceptions.ErrRedisSetData(err)
	}
	return nil
}

// Get returns an empty string when the key does not exist.
func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrRedisGetData(err)
	}
	return data, nil
}

func (r *redisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	err := r.client.Expire(ctx, key, exp).Err()
	if err != nil {
		return exceptions.ErrRedisSetData(err)
	}
	return nil
}

func (r *redisRepository) PushToList(ctx context.Context, key string, values ...interface{}) error {
	err := r.client.RPush(ctx, key, values...).Err()
	if err != nil {
		return exceptions.ErrRedisRightPushToList(err)
	}
	return nil
}

func (r *redisRepository) PopFromList(ctx context.Context, key string) (string, error) {
	value, err := r.client.LPop(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrRedisLeftPopList(err)
	}
	return value, nil
}

// DrainList reads and removes the whole list in one transaction.
func (r *redisRepository) DrainList(ctx context.Context, key string) ([]string, error) {
	var values *redis.StringSliceCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		values = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, exceptions.ErrRedisLeftPopList(err)
	}
	return values.Val(), nil
}

func (r *redisRepository) AddToSet(ctx context.Context, key string, values ...interface{}) error {
	err := r.client.SAdd(ctx, key, values...).Err()
	if err != nil {
		return exceptions.ErrRedisSAdd(err)
	}
	return nil
}

func (r *redisRepository) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	setMembers, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, exceptions.ErrRedisSMembers(err)
	}
	return setMembers, nil
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	acquired, err := r.client.SetNX(ctx, key, jsonValue, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSetData(err)
	}
	return acquired, nil
}
