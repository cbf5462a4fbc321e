package stats

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"menuscan/internal/api"
)

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Count returns the unique visitor count.
func (s *Service) Count(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.client.Get(ctx, "/counter", nil, &out); err != nil {
		return 0, fmt.Errorf("visitor counter: %w", err)
	}
	return out.Count, nil
}

// Detailed returns the aggregated analytics. Recent visitors come back
// sorted most recent first.
func (s *Service) Detailed(ctx context.Context) (*Detailed, error) {
	q := url.Values{}
	q.Set("stats", "detailed")
	var out Detailed
	if err := s.client.Get(ctx, "/stats", q, &out); err != nil {
		return nil, fmt.Errorf("detailed stats: %w", err)
	}
	sort.SliceStable(out.RecentVisitors, func(i, j int) bool {
		return out.RecentVisitors[i].Visit > out.RecentVisitors[j].Visit
	})
	return &out, nil
}
