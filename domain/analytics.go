package domain

import "time"

// QueryLogEntry records one completed search for the analytics pipeline.
// Recording is non-blocking relative to the search response path; a dropped
// entry costs a popularity signal, never a response.
type QueryLogEntry struct {
	Terms             []string  `json:"terms"`
	ResultCount       int       `json:"result_count"`
	Timestamp         time.Time `json:"timestamp"`
	ClientFingerprint string    `json:"client_fingerprint"`
}

// PopularQuery is one entry of the ranked popular-queries view.
type PopularQuery struct {
	Term  string  `json:"term"`
	Count float64 `json:"count"`
}
