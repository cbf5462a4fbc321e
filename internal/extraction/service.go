package extraction

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
)

// Service is the history manager: it lists, deletes, and builds download
// links for past extractions. The backend is the source of truth; list
// order is whatever it returns (most recent first).
type Service struct {
	repo         Repository
	imageBaseURL string
}

func NewService(repo Repository, imageBaseURL string) *Service {
	return &Service{
		repo:         repo,
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
	}
}

func (s *Service) History(ctx context.Context) ([]Extraction, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("[history] loaded %d extractions", len(items))
	return items, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("missing extraction id")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[history] deleted extraction id=%s", id)
	return nil
}

// DownloadURL points at the original uploaded object in storage.
func (s *Service) DownloadURL(s3Key string) string {
	if s3Key == "" {
		return ""
	}
	return s.imageBaseURL + "/" + url.PathEscape(s3Key)
}
