package domain

import (
	"strings"
	"testing"
)

func TestValidateCategoryFilters(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		wantErr    bool
	}{
		{name: "valid categories", categories: []string{"articles", "dev-tools"}, wantErr: false},
		{name: "unicode category", categories: []string{"記事"}, wantErr: false},
		{name: "empty list", categories: nil, wantErr: false},
		{name: "whitespace-only rejected", categories: []string{"   "}, wantErr: true},
		{name: "special chars rejected", categories: []string{"tools<script>"}, wantErr: true},
		{name: "control chars rejected", categories: []string{"tools\x00"}, wantErr: true},
		{name: "too long rejected", categories: []string{strings.Repeat("a", 101)}, wantErr: true},
		{
			name: "too many rejected",
			categories: []string{
				"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategoryFilters(tt.categories)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCategoryFilters() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
