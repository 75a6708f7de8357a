package types

import "github.com/go-playground/validator/v10"

// SuggestRequest represents the request body for POST /suggest.
type SuggestRequest struct {
	Text    string `json:"text" validate:"required,min=1"`
	Section string `json:"section,omitempty"`
}

// FeedbackRequest represents the request body for POST /feedback.
type FeedbackRequest struct {
	Annotation Annotation `json:"annotation" validate:"required"`
	Action     string     `json:"action" validate:"required,oneof=save delete"`
}

// SuggestResponse represents the response for POST /suggest.
type SuggestResponse struct {
	ShouldGenerate bool          `json:"should_generate"`
	Context        *MatchContext `json:"match_context,omitempty"`
	Match          *MatchResult  `json:"match,omitempty"`
}

// FeedbackResponse represents the response for POST /feedback.
type FeedbackResponse struct {
	Captured bool `json:"captured"`
	Saved    bool `json:"saved"`
}

// RebuildResponse represents the response for POST /rebuild.
type RebuildResponse struct {
	Rebuilt bool `json:"rebuilt"`
	Count   int  `json:"count"`
	Version int  `json:"version"`
}

// Validate validates the SuggestRequest using the validator.
func (r *SuggestRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the FeedbackRequest using the validator.
func (r *FeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
