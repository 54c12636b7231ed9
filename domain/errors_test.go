package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{
			name:  "invalid query detected",
			err:   NewInvalidQueryError("empty"),
			check: IsInvalidQuery,
			want:  true,
		},
		{
			name:  "wrapped invalid query detected",
			err:   fmt.Errorf("normalize: %w", NewInvalidQueryError("empty")),
			check: IsInvalidQuery,
			want:  true,
		},
		{
			name:  "rate limit detected",
			err:   &RateLimitError{RetryAfter: time.Minute},
			check: IsRateLimit,
			want:  true,
		},
		{
			name:  "sanitization failure detected",
			err:   &SanitizationError{Field: "body", Reason: "unsafe"},
			check: IsSanitizationFailure,
			want:  true,
		},
		{
			name:  "unrelated error not matched",
			err:   errors.New("boom"),
			check: IsInvalidQuery,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndexSyncError_Error(t *testing.T) {
	err := &IndexSyncError{Op: "upsert", Err: "store unavailable"}
	if err.Error() != "upsert: store unavailable" {
		t.Errorf("Error() = %v", err.Error())
	}
}
