package core

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Date is a calendar date without time or zone. The zero value means the
// date is missing. Dates are comparable, so they can key maps and sets.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether the date is missing.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o. Missing dates sort first.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// String renders the date as YYYY-MM-DD, or "" when missing.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes a missing date as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Record is one row of the reviewed dataset.
type Record struct {
	SourceURL       string        `json:"source_url"`
	DateAdded       Date          `json:"date_added"`
	ImportanceScore pgtype.Float8 `json:"importance_score"`
	Country         string        `json:"country"`
	Summary         string        `json:"summary"`
}

// HasDate reports whether the row carries a valid date.
func (r Record) HasDate() bool {
	return !r.DateAdded.IsZero()
}

// Dataset is an ordered, immutable table of records.
// Filtering returns a new Dataset sharing the load metadata.
type Dataset struct {
	ID        string   // load ID, for log correlation
	Path      string   // source file
	Columns   []string // canonical column names
	Delimiter rune
	Records   []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Empty reports whether the dataset holds no records.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// view returns a dataset with the same metadata and the given records.
func (d *Dataset) view(records []Record) *Dataset {
	return &Dataset{
		ID:        d.ID,
		Path:      d.Path,
		Columns:   d.Columns,
		Delimiter: d.Delimiter,
		Records:   records,
	}
}

// ExclusionEntry is a url the reviewer marked not relevant.
type ExclusionEntry struct {
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Set is an unordered collection of distinct values.
// A nil or empty set disables the filter it is passed to.
type Set[T comparable] map[T]struct{}

// NewSet builds a set from items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}
