package menuitem

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
)

// Form is the shared create/edit form. A non-empty EditID makes Save an
// update, otherwise a create — the same distinction the item form on the
// page carried in its edit-target attribute.
type Form struct {
	EditID      string
	DishName    string
	Description string
	Ingredients []Ingredient
	TTS         string
	PTB         float64
	// ImageKey previews a generated image; it is persisted by Save, not
	// by the generate call itself.
	ImageKey string
}

// Service is the menu item manager, scoped per call to one extraction.
type Service struct {
	repo         Repository
	imageBaseURL string
}

func NewService(repo Repository, imageBaseURL string) *Service {
	return &Service{repo: repo, imageBaseURL: strings.TrimRight(imageBaseURL, "/")}
}

func (s *Service) List(ctx context.Context, extractionID string) ([]MenuItem, error) {
	if extractionID == "" {
		return nil, errors.New("missing extraction id")
	}
	return s.repo.ListByExtraction(ctx, extractionID)
}

// Save creates or updates depending on the form's edit target. Dish name
// is required locally; nameless ingredient rows are dropped.
func (s *Service) Save(ctx context.Context, extractionID string, form Form) (MenuItem, error) {
	if form.DishName == "" {
		return MenuItem{}, errors.New("dish name is required")
	}
	if extractionID == "" {
		return MenuItem{}, errors.New("missing extraction id")
	}

	item := MenuItem{
		ID:           form.EditID,
		ExtractionID: extractionID,
		DishName:     form.DishName,
		Description:  form.Description,
		Ingredients:  filterIngredients(form.Ingredients),
		TTS:          form.TTS,
		PTB:          form.PTB,
		ImageKey:     form.ImageKey,
	}

	if form.EditID != "" {
		if err := s.repo.Update(ctx, item); err != nil {
			return MenuItem{}, err
		}
		log.Printf("[menu] updated item id=%s dish=%q", item.ID, item.DishName)
		return item, nil
	}

	id, imageKey, err := s.repo.Create(ctx, item)
	if err != nil {
		return MenuItem{}, err
	}
	item.ID = id
	item.ImageKey = imageKey
	log.Printf("[menu] created item id=%s dish=%q", id, item.DishName)
	return item, nil
}

// GenerateImage asks the backend for an AI image of the dish, keyed by
// dish name and ingredients. It returns a preview image key; nothing is
// considered saved until the user saves the item.
func (s *Service) GenerateImage(ctx context.Context, extractionID string, form Form) (string, error) {
	if form.DishName == "" {
		return "", errors.New("enter dish name first")
	}

	item := MenuItem{
		ExtractionID: extractionID,
		DishName:     form.DishName,
		Description:  form.Description,
		Ingredients:  filterIngredients(form.Ingredients),
		TTS:          form.TTS,
		PTB:          form.PTB,
	}
	_, imageKey, err := s.repo.Create(ctx, item)
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}
	log.Printf("[menu] generated image key=%s dish=%q", imageKey, form.DishName)
	return imageKey, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("missing menu item id")
	}
	return s.repo.Delete(ctx, id)
}

// ImageURL resolves a stored image key against the public image base.
func (s *Service) ImageURL(imageKey string) string {
	if imageKey == "" {
		return ""
	}
	return s.imageBaseURL + "/" + url.PathEscape(imageKey)
}

func filterIngredients(in []Ingredient) []Ingredient {
	out := make([]Ingredient, 0, len(in))
	for _, ing := range in {
		if ing.Name != "" {
			out = append(out, ing)
		}
	}
	return out
}
