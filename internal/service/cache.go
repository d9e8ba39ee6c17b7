// internal/service/cache.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/patrickmn/go-cache"
)

// CacheService provides caching functionality with type safety and error handling
type CacheService struct {
	cache *cache.Cache
}

// CacheConfig holds configuration for the cache service
type CacheConfig struct {
	TTL         time.Duration
	CleanupFreq time.Duration
}

func NewCacheService(config CacheConfig) *CacheService {
	return &CacheService{
		cache: cache.New(config.TTL, config.CleanupFreq),
	}
}

// Set stores a value under the default TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return domain.ErrInvalidInput
	}
	s.cache.SetDefault(key, value)
	return nil
}

// Get retrieves a value from the cache with type conversion
func (s *CacheService) Get(ctx context.Context, key string, result interface{}) error {
	if key == "" {
		return domain.ErrInvalidInput
	}

	value, found := s.cache.Get(key)
	if !found {
		return domain.ErrNotFound
	}

	switch v := value.(type) {
	case []byte:
		if err := json.Unmarshal(v, result); err != nil {
			return fmt.Errorf("unmarshaling cached value: %w", err)
		}
	default:
		if err := assignValue(value, result); err != nil {
			return fmt.Errorf("assigning cached value: %w", err)
		}
	}
	return nil
}

// GetOrSet retrieves a value from cache or sets it if not found
func (s *CacheService) GetOrSet(ctx context.Context, key string, result interface{}, fetchFunc func() (interface{}, error)) error {
	err := s.Get(ctx, key, result)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("getting from cache: %w", err)
	}

	value, err := fetchFunc()
	if err != nil {
		return fmt.Errorf("fetching value: %w", err)
	}

	if err := s.Set(ctx, key, value); err != nil {
		return fmt.Errorf("storing in cache: %w", err)
	}

	if err := assignValue(value, result); err != nil {
		return fmt.Errorf("assigning fetched value: %w", err)
	}
	return nil
}

// Delete removes a value from the cache
func (s *CacheService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidInput
	}
	s.cache.Delete(key)
	return nil
}

// Close drops every cached item.
func (s *CacheService) Close() {
	s.cache.Flush()
}

// assignValue handles type conversion for different types
func assignValue(src interface{}, dst interface{}) error {
	if v, ok := dst.(*interface{}); ok {
		*v = src
		return nil
	}

	// Convert to JSON and back for complex types
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("marshaling value: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshaling value: %w", err)
	}
	return nil
}
