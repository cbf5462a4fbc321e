package costs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"menuscan/internal/api"
)

type Service struct {
	client *api.Client
	cache  *Cache
	now    func() time.Time
}

// NewService builds the cost panel service. cache may be nil; every load
// then goes to the backend.
func NewService(client *api.Client, cache *Cache) *Service {
	return &Service{client: client, cache: cache, now: time.Now}
}

// Load returns the cost report for a period ("month" or "year"),
// preferring a report cached earlier the same day. Cache failures degrade
// to a direct fetch.
func (s *Service) Load(ctx context.Context, period string) (*Report, error) {
	if period == "" {
		period = "month"
	}
	today := s.now().Format("2006-01-02")

	if s.cache != nil {
		payload, ok, err := s.cache.Get(period, today)
		if err != nil {
			log.Printf("[costs] cache read failed, fetching fresh: %v", err)
		} else if ok {
			var report Report
			if err := json.Unmarshal([]byte(payload), &report); err == nil {
				log.Printf("[costs] using cached data for period=%s", period)
				return &report, nil
			}
			log.Printf("[costs] discarding corrupt cache entry for period=%s", period)
		}
	}

	q := url.Values{}
	q.Set("period", period)
	var report Report
	if err := s.client.Get(ctx, "/costs", q, &report); err != nil {
		return nil, fmt.Errorf("load costs: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(&report); err == nil {
			if err := s.cache.Put(period, today, string(payload)); err != nil {
				log.Printf("[costs] cache write failed: %v", err)
			}
		}
	}
	return &report, nil
}

// InvalidateCDN requests a purge of all cached paths.
func (s *Service) InvalidateCDN(ctx context.Context) (*Invalidation, error) {
	body := map[string]any{"paths": []string{"/*"}}
	var out Invalidation
	if err := s.client.Post(ctx, "/cache/invalidate", body, &out); err != nil {
		return nil, fmt.Errorf("cache invalidation: %w", err)
	}
	return &out, nil
}
