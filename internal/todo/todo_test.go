package todo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuscan/internal/api"
)

func newTodoServer(t *testing.T) (*Service, *[]map[string]any) {
	var puts []map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/todos", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"todos":[
				{"id":"t1","text":"buy flour","completed":false},
				{"id":"t2","text":"fix CDN cache","completed":true}
			]}`))
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			var payload map[string]any
			json.Unmarshal(body, &payload)
			puts = append(puts, payload)
			w.Write([]byte(`{}`))
		case http.MethodPost:
			w.Write([]byte(`{"id":"t3"}`))
		case http.MethodDelete:
			w.Write([]byte(`{"deleted":"` + r.URL.Query().Get("id") + `"}`))
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewService(api.NewClient(server.URL)), &puts
}

func TestList(t *testing.T) {
	service, _ := newTodoServer(t)
	todos, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "buy flour", todos[0].Text)
	assert.True(t, todos[1].Completed)
}

func TestAdd(t *testing.T) {
	service, _ := newTodoServer(t)
	id, err := service.Add(context.Background(), "  call supplier  ")
	require.NoError(t, err)
	assert.Equal(t, "t3", id)
}

func TestAdd_Blank(t *testing.T) {
	service, _ := newTodoServer(t)
	_, err := service.Add(context.Background(), "   ")
	assert.Error(t, err)
}

func TestToggle_FlipsOnlyTarget(t *testing.T) {
	service, puts := newTodoServer(t)

	nowCompleted, err := service.Toggle(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, nowCompleted)

	require.Len(t, *puts, 1)
	assert.Equal(t, "t1", (*puts)[0]["id"])
	assert.Equal(t, true, (*puts)[0]["completed"])
}

func TestToggle_CompletedBackToOpen(t *testing.T) {
	service, puts := newTodoServer(t)

	nowCompleted, err := service.Toggle(context.Background(), "t2")
	require.NoError(t, err)
	assert.False(t, nowCompleted)
	assert.Equal(t, false, (*puts)[0]["completed"])
}

func TestToggle_UnknownID(t *testing.T) {
	service, puts := newTodoServer(t)

	_, err := service.Toggle(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrTodoNotFound))
	assert.Empty(t, *puts, "no write for an unknown todo")
}
