package upload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuscan/internal/api"
)

func writeTempImage(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.jpg")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// backend fakes both the API and the presigned storage URL.
type backend struct {
	mux       *http.ServeMux
	server    *httptest.Server
	calls     []string
	uploaded  []byte
	presign   func(w http.ResponseWriter, r *http.Request)
	ocrText   string
	ocrFail   bool
	storeFail bool
}

func newBackend(t *testing.T) *backend {
	b := &backend{mux: http.NewServeMux(), ocrText: "Pizza Margherita 8.50"}
	b.server = httptest.NewServer(b.mux)
	t.Cleanup(b.server.Close)

	b.mux.HandleFunc("/presign", func(w http.ResponseWriter, r *http.Request) {
		b.calls = append(b.calls, "presign")
		if b.presign != nil {
			b.presign(w, r)
			return
		}
		w.Write([]byte(`{"url":"` + b.server.URL + `/store/r/1/menu.jpg","s3_key":"r/1/menu.jpg"}`))
	})
	b.mux.HandleFunc("/store/", func(w http.ResponseWriter, r *http.Request) {
		b.calls = append(b.calls, "store")
		if b.storeFail {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		b.uploaded, _ = io.ReadAll(r.Body)
	})
	b.mux.HandleFunc("/ocr", func(w http.ResponseWriter, r *http.Request) {
		b.calls = append(b.calls, "ocr")
		if b.ocrFail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"textract unavailable"}`))
			return
		}
		assert.Equal(t, "r/1/menu.jpg", r.URL.Query().Get("s3_key"))
		w.Write([]byte(`{"id":"e1","text":"` + b.ocrText + `","avg_confidence":92,"line_count":1,` +
			`"lines":[{"indent":0,"words":[{"text":"Pizza","confidence":96}]}]}`))
	})
	return b
}

func TestUpload_FullPipeline(t *testing.T) {
	b := newBackend(t)
	content := []byte("jpeg-bytes")
	path := writeTempImage(t, content)

	var gotHash string
	b.presign = func(w http.ResponseWriter, r *http.Request) {
		gotHash = r.URL.Query().Get("hash")
		assert.Equal(t, "menu.jpg", r.URL.Query().Get("key"))
		assert.Equal(t, "3", r.URL.Query().Get("restaurant"))
		w.Write([]byte(`{"url":"` + b.server.URL + `/store/r/3/menu.jpg","s3_key":"r/1/menu.jpg"}`))
	}

	service := NewService(api.NewClient(b.server.URL))

	var percents []int
	result, err := service.Upload(context.Background(), path, "3", func(pct int, label string) {
		percents = append(percents, pct)
	})
	require.NoError(t, err)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), gotHash)
	assert.Equal(t, content, b.uploaded)
	assert.Equal(t, []string{"presign", "store", "ocr"}, b.calls)

	assert.Equal(t, "e1", result.Extraction.ID)
	assert.Equal(t, "Pizza Margherita 8.50", result.Extraction.Text)
	assert.Equal(t, 92.0, result.Extraction.AvgConfidence)
	assert.True(t, result.Extraction.HasWordData())
	assert.False(t, result.NoText)
	assert.Equal(t, "Text extracted successfully!", result.StatusMessage())

	// Progress only ever moves forward and ends at 100.
	require.NotEmpty(t, percents)
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
	assert.Equal(t, 100, percents[len(percents)-1])
}

func TestUpload_DuplicateSkipsUploadAndOCR(t *testing.T) {
	b := newBackend(t)
	b.presign = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Image has already been processed"}`))
	}
	path := writeTempImage(t, []byte("dup"))

	service := NewService(api.NewClient(b.server.URL))
	_, err := service.Upload(context.Background(), path, "1", nil)

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.Equal(t, []string{"presign"}, b.calls, "duplicate must short-circuit before upload and OCR")
}

func TestUpload_StorageFailureAborts(t *testing.T) {
	b := newBackend(t)
	b.storeFail = true
	path := writeTempImage(t, []byte("x"))

	service := NewService(api.NewClient(b.server.URL))
	_, err := service.Upload(context.Background(), path, "1", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload failed")
	assert.NotContains(t, b.calls, "ocr")
}

func TestUpload_OCRFailureAborts(t *testing.T) {
	b := newBackend(t)
	b.ocrFail = true
	path := writeTempImage(t, []byte("x"))

	service := NewService(api.NewClient(b.server.URL))
	_, err := service.Upload(context.Background(), path, "1", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OCR failed")

	var statusErr *api.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestUpload_EmptyTextGetsPlaceholder(t *testing.T) {
	b := newBackend(t)
	b.ocrText = "   \\n  "
	path := writeTempImage(t, []byte("blank"))

	service := NewService(api.NewClient(b.server.URL))
	result, err := service.Upload(context.Background(), path, "1", nil)

	require.NoError(t, err, "empty OCR text is not an error")
	assert.True(t, result.NoText)
	assert.Equal(t, PlaceholderNoText, result.Extraction.Text)
	assert.Equal(t, "No text found in the image.", result.StatusMessage())
}

func TestUpload_MissingRestaurantRejectedLocally(t *testing.T) {
	b := newBackend(t)
	path := writeTempImage(t, []byte("x"))

	service := NewService(api.NewClient(b.server.URL))
	_, err := service.Upload(context.Background(), path, "", nil)

	require.Error(t, err)
	assert.Empty(t, b.calls, "no network call without a restaurant")
}
