package domain

import "fmt"

// SourceType identifies which adapter owns a searchable item.
type SourceType string

const (
	SourceTypeArticle  SourceType = "article"
	SourceTypeTool     SourceType = "tool"
	SourceTypeResource SourceType = "resource"
	SourceTypeProfile  SourceType = "profile"
)

// AllSourceTypes returns every known source type in registration order.
func AllSourceTypes() []SourceType {
	return []SourceType{
		SourceTypeArticle,
		SourceTypeTool,
		SourceTypeResource,
		SourceTypeProfile,
	}
}

// ParseSourceType validates a raw source type string.
func ParseSourceType(raw string) (SourceType, error) {
	switch SourceType(raw) {
	case SourceTypeArticle, SourceTypeTool, SourceTypeResource, SourceTypeProfile:
		return SourceType(raw), nil
	default:
		return "", fmt.Errorf("unknown source type: %q", raw)
	}
}

func (s SourceType) String() string {
	return string(s)
}
