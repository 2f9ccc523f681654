package core

import (
	"slices"
	"testing"
	"time"
)

func day(d int) Date {
	return Date{2023, time.January, d}
}

func sampleDataset() *Dataset {
	return &Dataset{
		ID:      "test",
		Columns: DefaultSchema().Columns(),
		Records: []Record{
			{SourceURL: "u1", DateAdded: day(15), Country: "US", Summary: "s1"},
			{SourceURL: "u2", DateAdded: day(16), Country: "FR", Summary: "s2"},
			{SourceURL: "u3", DateAdded: Date{}, Country: "US", Summary: "s3"},
			{SourceURL: "u4", DateAdded: day(15), Country: "", Summary: "s4"},
			{SourceURL: "u5", DateAdded: day(14), Country: "us", Summary: "s5"},
			{SourceURL: "u6", DateAdded: day(16), Country: "  ", Summary: "s6"},
		},
	}
}

func urls(ds *Dataset) []string {
	out := make([]string, 0, ds.Len())
	for _, r := range ds.Records {
		out = append(out, r.SourceURL)
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name      string
		countries Set[string]
		dates     Set[Date]
		want      []string
	}{
		{
			name: "no filters keeps everything in order",
			want: []string{"u1", "u2", "u3", "u4", "u5", "u6"},
		},
		{
			name:      "empty sets keep everything",
			countries: NewSet[string](),
			dates:     NewSet[Date](),
			want:      []string{"u1", "u2", "u3", "u4", "u5", "u6"},
		},
		{
			name:      "country is case-sensitive",
			countries: NewSet("US"),
			want:      []string{"u1", "u3"},
		},
		{
			name:  "date filter drops missing dates",
			dates: NewSet(day(15), day(16)),
			want:  []string{"u1", "u2", "u4", "u6"},
		},
		{
			name:      "filters compose with AND",
			countries: NewSet("US", "FR"),
			dates:     NewSet(day(16)),
			want:      []string{"u2"},
		},
		{
			name:      "no match",
			countries: NewSet("DE"),
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := sampleDataset()
			got := ApplyFilters(ds, tt.countries, tt.dates)

			if !slices.Equal(urls(got), tt.want) {
				t.Errorf("ApplyFilters() = %v, want %v", urls(got), tt.want)
			}
			for _, r := range got.Records {
				if len(tt.countries) > 0 && !tt.countries.Has(r.Country) {
					t.Errorf("row %s has country %q outside the filter", r.SourceURL, r.Country)
				}
				if len(tt.dates) > 0 && !tt.dates.Has(r.DateAdded) {
					t.Errorf("row %s has date %v outside the filter", r.SourceURL, r.DateAdded)
				}
			}
			if ds.Len() != 6 {
				t.Errorf("input dataset modified: Len() = %d", ds.Len())
			}
			if got.ID != ds.ID {
				t.Errorf("view ID = %q, want %q", got.ID, ds.ID)
			}
		})
	}
}

func TestApplyFilters_NilDataset(t *testing.T) {
	got := ApplyFilters(nil, NewSet("US"), nil)
	if got == nil || !got.Empty() {
		t.Errorf("ApplyFilters(nil) = %+v, want empty dataset", got)
	}
}

func TestExcludeURLs(t *testing.T) {
	got := ExcludeURLs(sampleDataset(), NewSet("u2", "u5", "unknown"))
	if want := []string{"u1", "u3", "u4", "u6"}; !slices.Equal(urls(got), want) {
		t.Errorf("ExcludeURLs() = %v, want %v", urls(got), want)
	}
}

func TestCountryOptions(t *testing.T) {
	got := CountryOptions(sampleDataset())
	want := []string{"FR", "US", "us"}
	if !slices.Equal(got, want) {
		t.Errorf("CountryOptions() = %v, want %v", got, want)
	}
}

func TestDateOptions(t *testing.T) {
	got := DateOptions(sampleDataset())
	want := []Date{day(14), day(15), day(16)}
	if !slices.Equal(got, want) {
		t.Errorf("DateOptions() = %v, want %v", got, want)
	}
}

func TestOptionsFor_EmptyDataset(t *testing.T) {
	opts := OptionsFor(&Dataset{})
	if opts.Countries == nil || opts.Dates == nil {
		t.Error("options of an empty dataset should be empty, not nil")
	}
	if len(opts.Countries) != 0 || len(opts.Dates) != 0 {
		t.Errorf("OptionsFor(empty) = %+v", opts)
	}
}

func TestSelectionSets(t *testing.T) {
	sel := Selection{Countries: []string{"US", "US", "FR"}, Dates: []Date{day(1)}}
	if len(sel.CountrySet()) != 2 || !sel.CountrySet().Has("FR") {
		t.Errorf("CountrySet() = %v", sel.CountrySet())
	}
	if !sel.DateSet().Has(day(1)) {
		t.Errorf("DateSet() = %v", sel.DateSet())
	}
	if len(Selection{}.CountrySet()) != 0 {
		t.Error("empty selection should produce an empty set")
	}
}
