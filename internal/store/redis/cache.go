package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/davmoraru/wayfind/internal/domain"
)

const (
	// DefaultGeocodeTTL is the TTL for cached geocode lookups (7 days;
	// places do not move)
	DefaultGeocodeTTL = 7 * 24 * time.Hour
	// DefaultArticleTTL is the TTL for cached article resolutions (24 hours)
	DefaultArticleTTL = 24 * time.Hour
)

// Store caches external lookup results so repeated searches for the
// same city do not re-spend third-party quota. All operations are
// best effort: a nil *Store is valid and behaves as an empty cache.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// CacheGeocode stores a query -> place resolution
func (s *Store) CacheGeocode(ctx context.Context, query string, place *domain.Place, ttl time.Duration) error {
	if s == nil || place == nil {
		return nil
	}
	data, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("failed to marshal place: %w", err)
	}
	if err := s.client.Set(ctx, GeocodeKey(query), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache geocode: %w", err)
	}
	return nil
}

// GetCachedGeocode retrieves a cached place; (nil, nil) on cache miss
func (s *Store) GetCachedGeocode(ctx context.Context, query string) (*domain.Place, error) {
	if s == nil {
		return nil, nil
	}
	data, err := s.client.Get(ctx, GeocodeKey(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached geocode: %w", err)
	}
	var place domain.Place
	if err := json.Unmarshal(data, &place); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached place: %w", err)
	}
	return &place, nil
}

// CacheArticle stores a resolved article for (lang, poi, city)
func (s *Store) CacheArticle(ctx context.Context, lang, poiName, cityName string, article *domain.Article, ttl time.Duration) error {
	if s == nil || article == nil {
		return nil
	}
	data, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("failed to marshal article: %w", err)
	}
	if err := s.client.Set(ctx, ArticleKey(lang, poiName, cityName), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache article: %w", err)
	}
	return nil
}

// GetCachedArticle retrieves a cached article; (nil, nil) on cache miss
func (s *Store) GetCachedArticle(ctx context.Context, lang, poiName, cityName string) (*domain.Article, error) {
	if s == nil {
		return nil, nil
	}
	data, err := s.client.Get(ctx, ArticleKey(lang, poiName, cityName)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached article: %w", err)
	}
	var article domain.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached article: %w", err)
	}
	return &article, nil
}

// FlushLookups removes all cached lookups
func (s *Store) FlushLookups(ctx context.Context) error {
	if s == nil {
		return nil
	}
	for _, prefix := range []string{KeyPrefixGeocode, KeyPrefixArticle} {
		iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("failed to delete cache key: %w", err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to flush lookups: %w", err)
		}
	}
	return nil
}

// Ping reports cache availability for the ops endpoints
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("cache disabled")
	}
	return s.client.Ping(ctx).Err()
}
