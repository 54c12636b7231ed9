package adapter

import (
	"search-hub/domain"
	"search-hub/port"
	"search-hub/sanitize"
)

// ProfileAdapter indexes short key-value profile entries. The value doubles
// as body and display excerpt; only the declared fields (label, value,
// section) participate in scoring, so the excerpt carries no weight here.
type ProfileAdapter struct {
	base
}

func NewProfileAdapter(store port.IndexStore, pipeline *sanitize.Pipeline) *ProfileAdapter {
	return &ProfileAdapter{base: base{
		sourceType: domain.SourceTypeProfile,
		weights: []domain.FieldWeight{
			{Field: domain.FieldTitle, Weight: 10},
			{Field: domain.FieldTags, Weight: 7},
			{Field: domain.FieldBody, Weight: 6},
			{Field: domain.FieldMeta, Weight: 2},
		},
		store:    store,
		pipeline: pipeline,
	}}
}

func (a *ProfileAdapter) MapRecord(record domain.ContentRecord) (domain.SearchableItem, error) {
	if err := record.Validate(); err != nil {
		return domain.SearchableItem{}, err
	}

	value := a.sanitizeField(record.ID, "value", record.Body)
	item := domain.SearchableItem{
		ID:           record.ID,
		SourceType:   domain.SourceTypeProfile,
		Title:        a.sanitizeField(record.ID, "label", record.Title),
		Excerpt:      value,
		Body:         value,
		Meta:         a.sanitizeField(record.ID, "section", record.ExtraField("section")),
		IsVisible:    record.Published,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
		CanonicalURL: record.CanonicalURL,
	}
	return a.finishItem(item), nil
}
