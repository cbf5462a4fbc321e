package review

import (
	"context"
	"fmt"

	"menuscan/internal/api"
)

// Report is the NLP validation result for one piece of extracted text.
// Every section is optional; the backend omits what it could not compute.
type Report struct {
	Quality             *Quality      `json:"quality,omitempty"`
	Languages           []Language    `json:"languages,omitempty"`
	Sentiment           *Sentiment    `json:"sentiment,omitempty"`
	Entities            []Entity      `json:"entities,omitempty"`
	KeyPhrases          []KeyPhrase   `json:"key_phrases,omitempty"`
	LowConfidenceSyntax []SyntaxToken `json:"low_confidence_syntax,omitempty"`
}

type Quality struct {
	Rating             string  `json:"rating"` // good, fair, poor
	LanguageConfidence float64 `json:"language_confidence"`
	EntityCount        int     `json:"entity_count"`
	KeyPhraseCount     int     `json:"key_phrase_count"`
	SuspiciousTokens   int     `json:"suspicious_tokens"`
}

type Language struct {
	Code  string  `json:"code"`
	Score float64 `json:"score"`
}

type Sentiment struct {
	Label string `json:"label"`
}

type Entity struct {
	Text  string  `json:"text"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

type KeyPhrase struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type SyntaxToken struct {
	Text  string  `json:"text"`
	Tag   string  `json:"tag"`
	Score float64 `json:"score"`
}

// Empty reports whether the report has nothing to show.
func (r *Report) Empty() bool {
	return r.Quality == nil && len(r.Languages) == 0 && r.Sentiment == nil &&
		len(r.Entities) == 0 && len(r.KeyPhrases) == 0 && len(r.LowConfidenceSyntax) == 0
}

type HTTPValidator struct {
	client *api.Client
}

func NewHTTPValidator(client *api.Client) *HTTPValidator {
	return &HTTPValidator{client: client}
}

func (v *HTTPValidator) Validate(ctx context.Context, text string) (*Report, error) {
	var report Report
	if err := v.client.Post(ctx, "/validate", map[string]string{"text": text}, &report); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &report, nil
}
