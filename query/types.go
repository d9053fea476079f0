package query

import (
	"errors"
	"time"
)

// ErrUnknownField is returned when a filter or sort names a field the schema does not declare.
var ErrUnknownField = errors.New("unknown field")

// Kind selects how a field is compared when sorting.
type Kind int

const (
	KindText   Kind = iota // lexicographic on case-folded text
	KindNumber             // numeric
	KindTime               // chronological on time.Time
	KindDate               // text parsed with Field.Layout, then chronological
	KindRank               // lookup-table rank (e.g. priority)
)

// Match selects how a filter value is tested against a field.
type Match int

const (
	MatchIn       Match = iota // exact set membership
	MatchContains              // case-insensitive substring
)

// Field describes one readable property of a record type.
// Text (or Texts, for multi-valued fields such as route endpoints) feeds search and
// filters; Number and Time feed numeric and chronological sorting.
type Field[T any] struct {
	Name   string
	Kind   Kind
	Match  Match
	Text   func(T) string
	Texts  func(T) []string
	Number func(T) float64
	Time   func(T) time.Time
	Layout string
	Ranks  map[string]int
}

// Schema declares which fields of T are searchable, filterable and sortable.
type Schema[T any] struct {
	Entity     string
	ID         func(T) string
	Searchable []string
	Fields     []Field[T]
}

// Condition restricts a field to a set of acceptable values.
// An empty Values set places no constraint on the field.
type Condition struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

// Sort orders results by a single field.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// Request is the complete input of one pipeline run.
type Request struct {
	Search   string      `json:"search"`
	Filters  []Condition `json:"filters"`
	Sort     Sort        `json:"sort"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// Result is one rendered page plus the counts the pagination controls need.
type Result[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}
