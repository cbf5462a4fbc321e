package upload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"menuscan/internal/api"
	"menuscan/internal/extraction"
)

// ErrAlreadyProcessed reports a duplicate upload: the backend has seen this
// file's digest before. The pipeline stops before any bytes are sent.
var ErrAlreadyProcessed = errors.New("this image has already been processed")

// Placeholder shown instead of an empty OCR result. An empty result is a
// successful extraction, not an error.
const PlaceholderNoText = "(No text detected in this image)"

// ProgressFunc receives pipeline progress. Percentages are monotonically
// increasing within one Upload call.
type ProgressFunc func(pct int, label string)

type presignResponse struct {
	URL   string `json:"url"`
	S3Key string `json:"s3_key"`
}

type ocrResponse struct {
	ID            string            `json:"id"`
	Text          string            `json:"text"`
	AvgConfidence float64           `json:"avg_confidence"`
	LineCount     int               `json:"line_count"`
	Lines         []extraction.Line `json:"lines"`
}

// Result is what the review overlay consumes after a successful run.
type Result struct {
	Extraction extraction.Extraction
	// NoText is set when OCR succeeded but found nothing; Extraction.Text
	// then holds PlaceholderNoText.
	NoText bool
}

// Service drives the hash -> presign -> upload -> OCR sequence. Any
// failure aborts the run; there are no partial retries, the user resubmits.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Upload(ctx context.Context, path string, restaurantID string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(int, string) {}
	}
	if restaurantID == "" {
		return nil, errors.New("please select a restaurant")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	filename := filepath.Base(path)

	progress(5, "Computing file hash...")
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	progress(10, "Getting upload URL...")
	q := url.Values{}
	q.Set("key", filename)
	q.Set("hash", digest)
	q.Set("restaurant", restaurantID)
	var presign presignResponse
	if err := s.client.Get(ctx, "/presign", q, &presign); err != nil {
		if errors.Is(err, api.ErrDuplicate) {
			return nil, ErrAlreadyProcessed
		}
		return nil, fmt.Errorf("failed to get upload URL: %w", err)
	}

	progress(30, "Uploading image...")
	if err := s.client.PutRaw(ctx, presign.URL, data); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	progress(50, "Image uploaded. Starting OCR...")

	progress(60, "Extracting text from image...")
	oq := url.Values{}
	oq.Set("s3_key", presign.S3Key)
	var ocr ocrResponse
	err = s.client.Get(ctx, "/ocr", oq, &ocr)
	progress(80, "Processing...")
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	progress(100, "Done!")

	log.Printf("[upload] done file=%s key=%s text_length=%d", filename, presign.S3Key, len(ocr.Text))

	result := &Result{
		Extraction: extraction.Extraction{
			ID:            ocr.ID,
			Filename:      filename,
			S3Key:         presign.S3Key,
			Text:          ocr.Text,
			AvgConfidence: ocr.AvgConfidence,
			LineCount:     ocr.LineCount,
			Lines:         ocr.Lines,
			FileExists:    true,
		},
	}
	if strings.TrimSpace(ocr.Text) == "" {
		result.Extraction.Text = PlaceholderNoText
		result.NoText = true
	}
	return result, nil
}

// StatusMessage is the human-readable line shown after a successful run.
func (r *Result) StatusMessage() string {
	if r.NoText {
		return "No text found in the image."
	}
	return "Text extracted successfully!"
}
