package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request SuggestRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: SuggestRequest{Text: "5+ years of Go experience", Section: "requirements"},
			wantErr: false,
		},
		{
			name:    "section is optional",
			request: SuggestRequest{Text: "5+ years of Go experience"},
			wantErr: false,
		},
		{
			name:    "missing text",
			request: SuggestRequest{Section: "requirements"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeedbackRequest_Validate(t *testing.T) {
	annotation := Annotation{
		Source: SourceAutoGenerated,
		Target: AnnotationTarget{Text: "5+ years of Go experience"},
	}

	tests := []struct {
		name    string
		request FeedbackRequest
		wantErr bool
	}{
		{
			name:    "save action",
			request: FeedbackRequest{Annotation: annotation, Action: ActionSave},
			wantErr: false,
		},
		{
			name:    "delete action",
			request: FeedbackRequest{Annotation: annotation, Action: ActionDelete},
			wantErr: false,
		},
		{
			name:    "unknown action",
			request: FeedbackRequest{Annotation: annotation, Action: "archive"},
			wantErr: true,
		},
		{
			name:    "missing action",
			request: FeedbackRequest{Annotation: annotation},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
