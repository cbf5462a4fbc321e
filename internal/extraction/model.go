package extraction

// Extraction is one OCR run's persisted result tied to an uploaded image.
// Text is mutable: a correction save replaces it and sets Corrected.
type Extraction struct {
	ID            string  `json:"id"`
	Filename      string  `json:"filename"`
	S3Key         string  `json:"s3_key"`
	Timestamp     string  `json:"timestamp"`
	Text          string  `json:"text"`
	AvgConfidence float64 `json:"avg_confidence"`
	LineCount     int     `json:"line_count"`
	Corrected     bool    `json:"corrected"`
	FileExists    bool    `json:"file_exists"`

	// Lines is only populated on a fresh OCR result. History rows carry
	// flat text and the aggregate confidence only.
	Lines []Line `json:"lines,omitempty"`
}

type Line struct {
	Indent int    `json:"indent"`
	Words  []Word `json:"words"`
}

type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// HasWordData reports whether structured line/word data is available for
// the confidence view.
func (e *Extraction) HasWordData() bool {
	return len(e.Lines) > 0 && len(e.Lines[0].Words) > 0
}

type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// TierOf classifies a confidence score into reliability bands:
// >=95 high, >=80 medium, below that low.
func TierOf(confidence float64) Tier {
	switch {
	case confidence >= 95:
		return TierHigh
	case confidence >= 80:
		return TierMedium
	default:
		return TierLow
	}
}

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// CSSClass is the class name the dashboard fragments use for a word span.
func (t Tier) CSSClass() string {
	switch t {
	case TierHigh:
		return "conf-high"
	case TierMedium:
		return "conf-med"
	default:
		return "conf-low"
	}
}
