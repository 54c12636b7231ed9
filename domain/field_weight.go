package domain

import "strings"

// FieldName names a weighted searchable field of a SearchableItem.
type FieldName string

const (
	FieldTitle   FieldName = "title"
	FieldTags    FieldName = "tags"
	FieldExcerpt FieldName = "excerpt"
	FieldBody    FieldName = "body"
	FieldMeta    FieldName = "meta"
)

// FieldWeight binds a searchable field to its scoring weight. Each adapter
// declares its own table; the scorer never branches on source type.
type FieldWeight struct {
	Field  FieldName
	Weight float64
}

// FieldText returns the searchable text of one field, lowercased by the
// caller's convention (item fields are stored sanitized but case-preserved).
func FieldText(item SearchableItem, field FieldName) string {
	switch field {
	case FieldTitle:
		return item.Title
	case FieldTags:
		return strings.Join(item.Tags, " ")
	case FieldExcerpt:
		return item.Excerpt
	case FieldBody:
		return item.Body
	case FieldMeta:
		if item.Meta != "" {
			return item.Category + " " + item.Meta
		}
		return item.Category
	default:
		return ""
	}
}
