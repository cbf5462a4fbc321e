package menuitem

import (
	"context"
	"fmt"
	"net/url"

	"menuscan/internal/api"
)

type Repository interface {
	ListByExtraction(ctx context.Context, extractionID string) ([]MenuItem, error)
	Create(ctx context.Context, item MenuItem) (id, imageKey string, err error)
	Update(ctx context.Context, item MenuItem) error
	Delete(ctx context.Context, id string) error
}

type HTTPRepository struct {
	client *api.Client
}

func NewHTTPRepository(client *api.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) ListByExtraction(ctx context.Context, extractionID string) ([]MenuItem, error) {
	q := url.Values{}
	q.Set("extraction_id", extractionID)
	var out struct {
		MenuItems []MenuItem `json:"menu_items"`
	}
	if err := r.client.Get(ctx, "/menu", q, &out); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return out.MenuItems, nil
}

// Create posts the item. The backend generates the dish image as part of
// the same call and returns the stored id and image key.
func (r *HTTPRepository) Create(ctx context.Context, item MenuItem) (string, string, error) {
	var out struct {
		ID       string `json:"id"`
		ImageKey string `json:"image_key"`
	}
	if err := r.client.Post(ctx, "/menu", item, &out); err != nil {
		return "", "", fmt.Errorf("create menu item: %w", err)
	}
	return out.ID, out.ImageKey, nil
}

func (r *HTTPRepository) Update(ctx context.Context, item MenuItem) error {
	if err := r.client.Put(ctx, "/menu", item, nil); err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

func (r *HTTPRepository) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", id)
	if err := r.client.Delete(ctx, "/menu", q, nil); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}
