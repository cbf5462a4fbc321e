package menuitem

// MenuItem is a structured dish record derived from (but independent of)
// an extraction. ImageKey points at a generated image in storage; it is
// populated by the explicit generate-image call, not by saving.
type MenuItem struct {
	ID           string       `json:"id,omitempty"`
	ExtractionID string       `json:"extraction_id"`
	DishName     string       `json:"dish_name"`
	Description  string       `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	TTS          string       `json:"tts"`
	PTB          float64      `json:"ptb"`
	ImageKey     string       `json:"image_key,omitempty"`
	Timestamp    string       `json:"timestamp,omitempty"`
}

// Ingredient pairs a name with a free-form quantity. Duplicates are
// allowed.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}
