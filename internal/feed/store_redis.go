// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/minhle/reelo/internal/platform/constants"
)

// # Sample Cache

// RedisSampleCache implements the SampleCache interface on Redis. Each
// browsing session stores its shuffled id sample under one key with the
// session's lifetime as TTL.
type RedisSampleCache struct {
	client *redis.Client
}

// NewSampleCache creates a new Redis implementation of the SampleCache.
func NewSampleCache(client *redis.Client) *RedisSampleCache {
	return &RedisSampleCache{client: client}
}

/*
Get returns the cached sample for a session.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - []string: The cached ids, or nil when the session is unknown or expired
  - error: Cache failures
*/
func (cache *RedisSampleCache) Get(context context.Context, sessionID string) ([]string, error) {
	payload, err := cache.client.Get(context, sampleKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_sample_cache_get_failed: %w", err)
	}

	var videoIDs []string
	if err := json.Unmarshal(payload, &videoIDs); err != nil {
		return nil, fmt.Errorf("redis_sample_cache_decode_failed: %w", err)
	}

	return videoIDs, nil
}

/*
Set stores a session's sample with the session TTL.

Parameters:
  - context: context.Context
  - sessionID: string
  - videoIDs: []string

Returns:
  - error: Cache failures
*/
func (cache *RedisSampleCache) Set(context context.Context, sessionID string, videoIDs []string) error {
	payload, err := json.Marshal(videoIDs)
	if err != nil {
		return fmt.Errorf("redis_sample_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, sampleKey(sessionID), payload, constants.FeedSessionTTL).Err(); err != nil {
		return fmt.Errorf("redis_sample_cache_set_failed: %w", err)
	}

	return nil
}

func sampleKey(sessionID string) string {
	return constants.RedisPrefixFeedSample + sessionID
}
