package driver

import "time"

// ArticleRow is one row of the content collaborator's articles table with
// its aggregated tag names.
type ArticleRow struct {
	ID        string
	Title     string
	Summary   string
	Content   string
	Category  string
	Slug      string
	Tags      []string
	Published bool
	Featured  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToolRow is one row of the curated tools table.
type ToolRow struct {
	ID          string
	Name        string
	Description string
	Notes       string
	Platform    string
	Category    string
	URL         string
	Tags        []string
	Published   bool
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResourceRow is one row of the resources table.
type ResourceRow struct {
	ID          string
	Title       string
	Description string
	Kind        string
	Category    string
	URL         string
	Tags        []string
	Published   bool
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileEntryRow is one short key-value profile entry.
type ProfileEntryRow struct {
	ID        string
	Section   string
	Label     string
	Value     string
	Visible   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DriverError represents an error from the driver layer
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
