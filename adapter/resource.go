package adapter

import (
	"search-hub/domain"
	"search-hub/port"
	"search-hub/sanitize"
)

// ResourceAdapter indexes external resources (links, papers, references).
type ResourceAdapter struct {
	base
}

func NewResourceAdapter(store port.IndexStore, pipeline *sanitize.Pipeline) *ResourceAdapter {
	return &ResourceAdapter{base: base{
		sourceType: domain.SourceTypeResource,
		weights: []domain.FieldWeight{
			{Field: domain.FieldTitle, Weight: 10},
			{Field: domain.FieldTags, Weight: 7},
			{Field: domain.FieldExcerpt, Weight: 7},
			{Field: domain.FieldBody, Weight: 6},
			{Field: domain.FieldMeta, Weight: 2},
		},
		store:    store,
		pipeline: pipeline,
	}}
}

func (a *ResourceAdapter) MapRecord(record domain.ContentRecord) (domain.SearchableItem, error) {
	if err := record.Validate(); err != nil {
		return domain.SearchableItem{}, err
	}

	item := domain.SearchableItem{
		ID:           record.ID,
		SourceType:   domain.SourceTypeResource,
		Title:        a.sanitizeField(record.ID, "title", record.Title),
		Excerpt:      a.sanitizeField(record.ID, "excerpt", record.Summary),
		Body:         a.sanitizeField(record.ID, "body", record.Body),
		Tags:         a.pipeline.SanitizeTags(record.Tags),
		Category:     a.sanitizeField(record.ID, "category", record.Category),
		Meta:         a.sanitizeField(record.ID, "kind", record.ExtraField("kind")),
		IsVisible:    record.Published,
		IsFeatured:   record.Featured,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
		CanonicalURL: record.CanonicalURL,
	}
	return a.finishItem(item), nil
}
