package validation

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

type sample struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Days  *int   `json:"days,omitempty" validate:"omitempty,gte=0"`
}

func TestStruct(t *testing.T) {
	neg := -1
	tests := []struct {
		name      string
		in        sample
		wantField string
		wantMsg   string
	}{
		{"valid", sample{Title: "t", URL: "https://x.example/1"}, "", ""},
		{"missing title", sample{URL: "https://x.example/1"}, "title", "is required"},
		{"bad url", sample{Title: "t", URL: "not a url"}, "url", "must be a valid URL"},
		{"negative days", sample{Title: "t", URL: "https://x.example/1", Days: &neg}, "days", "must be >= 0"},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Struct() = %v, want nil", err)
				}
				return
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Struct() = %v, want *domain.ValidationError", err)
			}
			if ve.Field != tt.wantField || ve.Message != tt.wantMsg {
				t.Errorf("Struct() = {%s %s}, want {%s %s}", ve.Field, ve.Message, tt.wantField, tt.wantMsg)
			}
		})
	}
}
