package adapter

import (
	"search-hub/domain"
	"search-hub/port"
	"search-hub/sanitize"
)

// ToolAdapter indexes curated tools. The platform name carries a slightly
// higher meta weight than other adapters' meta fields because users often
// search by platform.
type ToolAdapter struct {
	base
}

func NewToolAdapter(store port.IndexStore, pipeline *sanitize.Pipeline) *ToolAdapter {
	return &ToolAdapter{base: base{
		sourceType: domain.SourceTypeTool,
		weights: []domain.FieldWeight{
			{Field: domain.FieldTitle, Weight: 10},
			{Field: domain.FieldTags, Weight: 8},
			{Field: domain.FieldExcerpt, Weight: 7},
			{Field: domain.FieldBody, Weight: 5},
			{Field: domain.FieldMeta, Weight: 3},
		},
		store:    store,
		pipeline: pipeline,
	}}
}

func (a *ToolAdapter) MapRecord(record domain.ContentRecord) (domain.SearchableItem, error) {
	if err := record.Validate(); err != nil {
		return domain.SearchableItem{}, err
	}

	item := domain.SearchableItem{
		ID:           record.ID,
		SourceType:   domain.SourceTypeTool,
		Title:        a.sanitizeField(record.ID, "title", record.Title),
		Excerpt:      a.sanitizeField(record.ID, "excerpt", record.Summary),
		Body:         a.sanitizeField(record.ID, "body", record.Body),
		Tags:         a.pipeline.SanitizeTags(record.Tags),
		Category:     a.sanitizeField(record.ID, "category", record.Category),
		Meta:         a.sanitizeField(record.ID, "platform", record.ExtraField("platform")),
		IsVisible:    record.Published,
		IsFeatured:   record.Featured,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
		CanonicalURL: record.CanonicalURL,
	}
	return a.finishItem(item), nil
}
