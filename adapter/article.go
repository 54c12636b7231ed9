package adapter

import (
	"search-hub/domain"
	"search-hub/port"
	"search-hub/sanitize"
)

// ArticleAdapter indexes long-form articles. The body weight sits well
// below the title weight so a title hit always outranks a body-only hit on
// otherwise identical items.
type ArticleAdapter struct {
	base
}

func NewArticleAdapter(store port.IndexStore, pipeline *sanitize.Pipeline) *ArticleAdapter {
	return &ArticleAdapter{base: base{
		sourceType: domain.SourceTypeArticle,
		weights: []domain.FieldWeight{
			{Field: domain.FieldTitle, Weight: 10},
			{Field: domain.FieldTags, Weight: 8},
			{Field: domain.FieldExcerpt, Weight: 7},
			{Field: domain.FieldBody, Weight: 5},
			{Field: domain.FieldMeta, Weight: 2},
		},
		store:    store,
		pipeline: pipeline,
	}}
}

func (a *ArticleAdapter) MapRecord(record domain.ContentRecord) (domain.SearchableItem, error) {
	if err := record.Validate(); err != nil {
		return domain.SearchableItem{}, err
	}

	item := domain.SearchableItem{
		ID:           record.ID,
		SourceType:   domain.SourceTypeArticle,
		Title:        a.sanitizeField(record.ID, "title", record.Title),
		Excerpt:      a.sanitizeField(record.ID, "excerpt", record.Summary),
		Body:         a.sanitizeField(record.ID, "body", record.Body),
		Tags:         a.pipeline.SanitizeTags(record.Tags),
		Category:     a.sanitizeField(record.ID, "category", record.Category),
		IsVisible:    record.Published,
		IsFeatured:   record.Featured,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
		CanonicalURL: record.CanonicalURL,
	}
	return a.finishItem(item), nil
}
