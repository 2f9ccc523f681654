package core

import (
	"slices"
	"strings"
)

// Selection is the reviewer's current filter choice.
// Empty slices disable their filter.
type Selection struct {
	Countries    []string
	Dates        []Date
	HideExcluded bool
}

// CountrySet returns the selected countries as a set.
func (s Selection) CountrySet() Set[string] {
	return NewSet(s.Countries...)
}

// DateSet returns the selected dates as a set.
func (s Selection) DateSet() Set[Date] {
	return NewSet(s.Dates...)
}

// ApplyFilters returns the records of ds matching both filters, in their
// original order. An empty countries set keeps every country; an empty
// dates set keeps every date. Country matching is exact and case-sensitive.
// Records with a missing date never match a non-empty dates set.
//
// ApplyFilters does not modify ds.
func ApplyFilters(ds *Dataset, countries Set[string], dates Set[Date]) *Dataset {
	if ds == nil {
		return &Dataset{Records: []Record{}}
	}

	out := make([]Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		if len(countries) > 0 && !countries.Has(r.Country) {
			continue
		}
		if len(dates) > 0 && (!r.HasDate() || !dates.Has(r.DateAdded)) {
			continue
		}
		out = append(out, r)
	}

	return ds.view(out)
}

// ExcludeURLs returns the records of ds whose url is not in urls.
func ExcludeURLs(ds *Dataset, urls Set[string]) *Dataset {
	if ds == nil || len(urls) == 0 {
		return ds
	}
	out := make([]Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		if !urls.Has(r.SourceURL) {
			out = append(out, r)
		}
	}
	return ds.view(out)
}

// Options are the filter choices a dataset offers.
type Options struct {
	Countries []string `json:"countries"`
	Dates     []Date   `json:"dates"`
}

// OptionsFor returns the country and date options of ds.
func OptionsFor(ds *Dataset) Options {
	return Options{
		Countries: CountryOptions(ds),
		Dates:     DateOptions(ds),
	}
}

// CountryOptions returns the distinct countries of ds in ascending order.
// Countries that are blank after trimming are left out.
func CountryOptions(ds *Dataset) []string {
	seen := make(Set[string])
	out := []string{}
	for _, r := range ds.recordsOrNil() {
		if strings.TrimSpace(r.Country) == "" || seen.Has(r.Country) {
			continue
		}
		seen[r.Country] = struct{}{}
		out = append(out, r.Country)
	}
	slices.Sort(out)
	return out
}

// DateOptions returns the distinct non-missing dates of ds in ascending order.
func DateOptions(ds *Dataset) []Date {
	seen := make(Set[Date])
	out := []Date{}
	for _, r := range ds.recordsOrNil() {
		if !r.HasDate() || seen.Has(r.DateAdded) {
			continue
		}
		seen[r.DateAdded] = struct{}{}
		out = append(out, r.DateAdded)
	}
	slices.SortFunc(out, Date.Compare)
	return out
}

func (d *Dataset) recordsOrNil() []Record {
	if d == nil {
		return nil
	}
	return d.Records
}
