package models

// ExtractionResult is the normalized text tree of one slide deck.
type ExtractionResult struct {
	Title      string         `json:"title"`
	SlideCount int            `json:"slide_count"`
	Slides     []SlideContent `json:"slides"`
}

// SlideContent holds the text found on a single slide.
type SlideContent struct {
	SlideNumber int          `json:"slide_number"`
	SlideID     string       `json:"slide_id"`
	ShapesText  []string     `json:"shapes_text"`
	Tables      [][][]string `json:"tables"`
	Notes       string       `json:"notes"`
}
