package restaurant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"menuscan/internal/api"
)

func TestList_FromBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restaurants", r.URL.Path)
		w.Write([]byte(`[{"id":7,"name":"Da Enzo"}]`))
	}))
	defer server.Close()

	service := NewService(api.NewClient(server.URL))
	got := service.List(context.Background())

	assert.Equal(t, []Restaurant{{ID: 7, Name: "Da Enzo"}}, got)
}

func TestList_FallbackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewService(api.NewClient(server.URL))
	got := service.List(context.Background())

	assert.Equal(t, Fallback(), got)
	assert.Len(t, got, 5)
}

func TestList_FallbackOnEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	service := NewService(api.NewClient(server.URL))
	assert.Equal(t, Fallback(), service.List(context.Background()))
}
