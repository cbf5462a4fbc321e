package restaurant

import (
	"context"
	"log"

	"menuscan/internal/api"
)

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// List fetches the restaurant reference list. On any failure the built-in
// fallback list is returned and no error is reported; the selection just
// has to work.
func (s *Service) List(ctx context.Context) []Restaurant {
	var restaurants []Restaurant
	if err := s.client.Get(ctx, "/restaurants", nil, &restaurants); err != nil {
		log.Printf("[restaurants] falling back to built-in list: %v", err)
		return Fallback()
	}
	if len(restaurants) == 0 {
		return Fallback()
	}
	return restaurants
}
