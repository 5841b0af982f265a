package db

import "github.com/atelier-cloud/catalog/internal/domain/search/filter"

// KNNQuery is the input for vector similarity search. No relational filters
// are pushed into the index query; candidates are post-filtered by the caller.
type KNNQuery struct {
	Index        string
	Vector       []float32
	K            int
	ScoreFloor   float64 // minimum similarity; entries below are dropped
	ReturnFields []string
}

// TextQuery is the input for case-insensitive substring search over the
// given text fields, with relational filters applied inside the query.
type TextQuery struct {
	Index      string
	Term       string
	TextFields []string
	Filters    filter.Filters
	Limit      int
}

// ListQuery is the input for relational listing with sort and pagination.
type ListQuery struct {
	Index    string
	Filters  filter.Filters
	SortBy   string
	SortDesc bool
	Offset   int
	Limit    int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
