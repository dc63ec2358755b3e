// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// blog.go caches the post list and single posts as JSON in Valkey so the
// public read endpoints skip the database on a hit. Posts never change once
// written, so only the list needs invalidating after a new insert.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"autoblog/internal/models"
)

const (
	// blogKeyPrefix is the Valkey key prefix for every cached blog entry.
	blogKeyPrefix = "blog:"

	listKey = blogKeyPrefix + "list"

	// DefaultBlogTTL is how long a cached entry lives.
	DefaultBlogTTL = 5 * time.Minute
)

// BlogCache is a best-effort cache: errors are logged and reported as a
// miss. A nil *BlogCache is valid and never hits.
type BlogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBlogCache creates a blog cache backed by the given Valkey client.
func NewBlogCache(client *redis.Client, ttl time.Duration) *BlogCache {
	if ttl == 0 {
		ttl = DefaultBlogTTL
	}
	return &BlogCache{client: client, ttl: ttl}
}

// postKey uses the canonical lowercase form so any spelling of an id maps
// to one entry.
func postKey(id uuid.UUID) string {
	return blogKeyPrefix + "post:" + id.String()
}

// GetList returns the cached post list.
func (bc *BlogCache) GetList(ctx context.Context) ([]models.BlogPost, bool) {
	var posts []models.BlogPost
	if !bc.get(ctx, listKey, &posts) {
		return nil, false
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	return posts, true
}

// SetList caches the post list.
func (bc *BlogCache) SetList(ctx context.Context, posts []models.BlogPost) {
	bc.set(ctx, listKey, posts)
}

// GetPost returns a cached post by id.
func (bc *BlogCache) GetPost(ctx context.Context, id uuid.UUID) (*models.BlogPost, bool) {
	var post models.BlogPost
	if !bc.get(ctx, postKey(id), &post) {
		return nil, false
	}
	return &post, true
}

// SetPost caches a single post under its id.
func (bc *BlogCache) SetPost(ctx context.Context, post *models.BlogPost) {
	if post == nil {
		return
	}
	bc.set(ctx, postKey(post.ID), post)
}

// Invalidate drops the cached list. Called after every successful insert.
func (bc *BlogCache) Invalidate(ctx context.Context) {
	if bc == nil {
		return
	}
	if err := bc.client.Del(ctx, listKey).Err(); err != nil {
		slog.Warn("blog cache invalidate error", "error", err)
		return
	}
	slog.Debug("blog cache invalidated")
}

// InvalidateAll removes every cached blog entry by scanning for the prefix.
func (bc *BlogCache) InvalidateAll(ctx context.Context) {
	if bc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, next, err := bc.client.Scan(ctx, cursor, blogKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("blog cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := bc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("blog cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("blog cache fully cleared", "deleted", deleted)
	}
}

func (bc *BlogCache) get(ctx context.Context, key string, dst any) bool {
	if bc == nil {
		return false
	}
	val, err := bc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("blog cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("blog cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("blog cache hit", "key", key)
	return true
}

func (bc *BlogCache) set(ctx context.Context, key string, v any) {
	if bc == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("blog cache encode error", "key", key, "error", err)
		return
	}
	if err := bc.client.Set(ctx, key, data, bc.ttl).Err(); err != nil {
		slog.Warn("blog cache set error", "key", key, "error", err)
	}
}
