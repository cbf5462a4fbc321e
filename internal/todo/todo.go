package todo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"menuscan/internal/api"
)

type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Timestamp string `json:"timestamp,omitempty"`
}

var ErrTodoNotFound = errors.New("todo not found")

type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context) ([]Todo, error) {
	var out struct {
		Todos []Todo `json:"todos"`
	}
	if err := s.client.Get(ctx, "/todos", nil, &out); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return out.Todos, nil
}

func (s *Service) Add(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("todo text is empty")
	}
	var out struct {
		ID string `json:"id"`
	}
	body := map[string]any{"text": text, "completed": false}
	if err := s.client.Post(ctx, "/todos", body, &out); err != nil {
		return "", fmt.Errorf("add todo: %w", err)
	}
	return out.ID, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", id)
	if err := s.client.Delete(ctx, "/todos", q, nil); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// Toggle flips a todo's completed flag. The backend has no toggle
// operation, so this is a read-modify-write: fetch the list, find the
// todo, PUT the flipped state. A concurrent edit between the read and the
// write wins or loses whole; that race is inherited from the backend's
// API shape and accepted.
func (s *Service) Toggle(ctx context.Context, id string) (bool, error) {
	todos, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, item := range todos {
		if item.ID != id {
			continue
		}
		body := map[string]any{"id": id, "completed": !item.Completed}
		if err := s.client.Put(ctx, "/todos", body, nil); err != nil {
			return false, fmt.Errorf("toggle todo: %w", err)
		}
		return !item.Completed, nil
	}
	return false, fmt.Errorf("toggle todo %s: %w", id, ErrTodoNotFound)
}
