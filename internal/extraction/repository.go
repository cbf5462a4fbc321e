package extraction

import (
	"context"
	"fmt"
	"net/url"

	"menuscan/internal/api"
)

type Repository interface {
	List(ctx context.Context) ([]Extraction, error)
	SaveCorrection(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
}

type HTTPRepository struct {
	client *api.Client
}

func NewHTTPRepository(client *api.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Extraction, error) {
	var out struct {
		Extractions []Extraction `json:"extractions"`
	}
	if err := r.client.Get(ctx, "/extractions", nil, &out); err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	return out.Extractions, nil
}

func (r *HTTPRepository) SaveCorrection(ctx context.Context, id, text string) error {
	body := map[string]string{"id": id, "text": text}
	if err := r.client.Put(ctx, "/extractions", body, nil); err != nil {
		return fmt.Errorf("save correction: %w", err)
	}
	return nil
}

func (r *HTTPRepository) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", id)
	if err := r.client.Delete(ctx, "/extractions", q, nil); err != nil {
		return fmt.Errorf("delete extraction: %w", err)
	}
	return nil
}
