package domain

import (
	"errors"
	"time"
)

// ContentRecord is the raw payload a content owner hands to the index
// through a lifecycle hook or a source backfill. Fields still carry whatever
// markup the owning store persisted; adapters sanitize before indexing.
// Extra carries per-type metadata (tool platform, resource kind, profile
// section) the common fields do not cover.
type ContentRecord struct {
	ID           string            `json:"id"`
	SourceType   SourceType        `json:"source_type"`
	Title        string            `json:"title"`
	Summary      string            `json:"summary"`
	Body         string            `json:"body"`
	Tags         []string          `json:"tags"`
	Category     string            `json:"category"`
	Published    bool              `json:"published"`
	Featured     bool              `json:"featured"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	CanonicalURL string            `json:"canonical_url"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// Validate checks the identity fields every record must carry.
func (r ContentRecord) Validate() error {
	if r.ID == "" {
		return errors.New("content record ID cannot be empty")
	}
	if _, err := ParseSourceType(string(r.SourceType)); err != nil {
		return err
	}
	return nil
}

// ExtraField returns a per-type metadata field, empty when absent.
func (r ContentRecord) ExtraField(key string) string {
	if r.Extra == nil {
		return ""
	}
	return r.Extra[key]
}
