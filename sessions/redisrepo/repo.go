// Package redisrepo is the production session store adapter. Each user's
// refresh token lives under a single key, so the store's native single-key
// atomicity is all the coordination the service needs.
package redisrepo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/workmap/auth-service/sessions"
)

const keyPrefix = "refresh_token:"

var _ sessions.Repo = (*Repo)(nil)

type Repo struct {
	client *redis.Client
}

func NewRepo(client *redis.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Get(ctx context.Context, userID string) (string, error) {
	token, err := r.client.Get(ctx, keyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", sessions.ErrNotFound
		}
		return "", errors.Wrap(err, "[Repo.Get] redis get")
	}
	return token, nil
}

func (r *Repo) Store(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, keyPrefix+userID, token, ttl).Err(); err != nil {
		return errors.Wrap(err, "[Repo.Store] redis set")
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, userID string) (bool, error) {
	deleted, err := r.client.Del(ctx, keyPrefix+userID).Result()
	if err != nil {
		return false, errors.Wrap(err, "[Repo.Remove] redis del")
	}
	return deleted > 0, nil
}
