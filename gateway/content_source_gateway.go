package gateway

import (
	"context"
	"time"

	"search-hub/domain"
	"search-hub/driver"
)

// ContentSourceGateway implements port.ContentSource over the Postgres
// content driver. It is the anti-corruption layer between the content
// collaborator's row shapes and the canonical ContentRecord; nothing above
// this gateway sees a table layout.
type ContentSourceGateway struct {
	driver *driver.ContentDriver
}

func NewContentSourceGateway(d *driver.ContentDriver) *ContentSourceGateway {
	return &ContentSourceGateway{driver: d}
}

// FetchBatch reads one keyset page of records for a source type.
func (g *ContentSourceGateway) FetchBatch(ctx context.Context, sourceType domain.SourceType, lastUpdatedAt *time.Time, lastID string, limit int) ([]domain.ContentRecord, *time.Time, string, error) {
	switch sourceType {
	case domain.SourceTypeArticle:
		rows, cursor, cursorID, err := g.driver.GetArticlesBatch(ctx, lastUpdatedAt, lastID, limit)
		if err != nil {
			return nil, nil, "", &DriverError{Op: "FetchBatch(article)", Err: err.Error()}
		}
		records := make([]domain.ContentRecord, 0, len(rows))
		for _, row := range rows {
			records = append(records, articleToRecord(row))
		}
		return records, cursor, cursorID, nil

	case domain.SourceTypeTool:
		rows, cursor, cursorID, err := g.driver.GetToolsBatch(ctx, lastUpdatedAt, lastID, limit)
		if err != nil {
			return nil, nil, "", &DriverError{Op: "FetchBatch(tool)", Err: err.Error()}
		}
		records := make([]domain.ContentRecord, 0, len(rows))
		for _, row := range rows {
			records = append(records, toolToRecord(row))
		}
		return records, cursor, cursorID, nil

	case domain.SourceTypeResource:
		rows, cursor, cursorID, err := g.driver.GetResourcesBatch(ctx, lastUpdatedAt, lastID, limit)
		if err != nil {
			return nil, nil, "", &DriverError{Op: "FetchBatch(resource)", Err: err.Error()}
		}
		records := make([]domain.ContentRecord, 0, len(rows))
		for _, row := range rows {
			records = append(records, resourceToRecord(row))
		}
		return records, cursor, cursorID, nil

	case domain.SourceTypeProfile:
		rows, cursor, cursorID, err := g.driver.GetProfileEntriesBatch(ctx, lastUpdatedAt, lastID, limit)
		if err != nil {
			return nil, nil, "", &DriverError{Op: "FetchBatch(profile)", Err: err.Error()}
		}
		records := make([]domain.ContentRecord, 0, len(rows))
		for _, row := range rows {
			records = append(records, profileToRecord(row))
		}
		return records, cursor, cursorID, nil

	default:
		return nil, nil, "", &DriverError{Op: "FetchBatch", Err: "unknown source type: " + string(sourceType)}
	}
}

// FetchByID reads one record, nil when the row is gone.
func (g *ContentSourceGateway) FetchByID(ctx context.Context, sourceType domain.SourceType, id string) (*domain.ContentRecord, error) {
	switch sourceType {
	case domain.SourceTypeArticle:
		row, err := g.driver.GetArticleByID(ctx, id)
		if err != nil {
			return nil, &DriverError{Op: "FetchByID(article)", Err: err.Error()}
		}
		if row == nil {
			return nil, nil
		}
		record := articleToRecord(*row)
		return &record, nil

	case domain.SourceTypeTool:
		row, err := g.driver.GetToolByID(ctx, id)
		if err != nil {
			return nil, &DriverError{Op: "FetchByID(tool)", Err: err.Error()}
		}
		if row == nil {
			return nil, nil
		}
		record := toolToRecord(*row)
		return &record, nil

	case domain.SourceTypeResource:
		row, err := g.driver.GetResourceByID(ctx, id)
		if err != nil {
			return nil, &DriverError{Op: "FetchByID(resource)", Err: err.Error()}
		}
		if row == nil {
			return nil, nil
		}
		record := resourceToRecord(*row)
		return &record, nil

	case domain.SourceTypeProfile:
		row, err := g.driver.GetProfileEntryByID(ctx, id)
		if err != nil {
			return nil, &DriverError{Op: "FetchByID(profile)", Err: err.Error()}
		}
		if row == nil {
			return nil, nil
		}
		record := profileToRecord(*row)
		return &record, nil

	default:
		return nil, &DriverError{Op: "FetchByID", Err: "unknown source type: " + string(sourceType)}
	}
}

func articleToRecord(row driver.ArticleRow) domain.ContentRecord {
	return domain.ContentRecord{
		ID:           row.ID,
		SourceType:   domain.SourceTypeArticle,
		Title:        row.Title,
		Summary:      row.Summary,
		Body:         row.Content,
		Tags:         row.Tags,
		Category:     row.Category,
		Published:    row.Published,
		Featured:     row.Featured,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		CanonicalURL: "/articles/" + row.Slug,
	}
}

func toolToRecord(row driver.ToolRow) domain.ContentRecord {
	return domain.ContentRecord{
		ID:           row.ID,
		SourceType:   domain.SourceTypeTool,
		Title:        row.Name,
		Summary:      row.Description,
		Body:         row.Notes,
		Tags:         row.Tags,
		Category:     row.Category,
		Published:    row.Published,
		Featured:     row.Featured,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		CanonicalURL: row.URL,
		Extra:        map[string]string{"platform": row.Platform},
	}
}

func resourceToRecord(row driver.ResourceRow) domain.ContentRecord {
	return domain.ContentRecord{
		ID:           row.ID,
		SourceType:   domain.SourceTypeResource,
		Title:        row.Title,
		Summary:      row.Description,
		Body:         row.Description,
		Tags:         row.Tags,
		Category:     row.Category,
		Published:    row.Published,
		Featured:     row.Featured,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		CanonicalURL: row.URL,
		Extra:        map[string]string{"kind": row.Kind},
	}
}

func profileToRecord(row driver.ProfileEntryRow) domain.ContentRecord {
	return domain.ContentRecord{
		ID:           row.ID,
		SourceType:   domain.SourceTypeProfile,
		Title:        row.Label,
		Body:         row.Value,
		Published:    row.Visible,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		CanonicalURL: "/about#" + row.Section,
		Extra:        map[string]string{"section": row.Section},
	}
}
