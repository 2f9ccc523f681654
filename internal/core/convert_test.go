package core

import (
	"errors"
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// ParseDateAdded Tests
// ----------------------------------------------------------------------------

func TestParseDateAdded(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Date
	}{
		{name: "compact date", input: "20230115", want: Date{2023, time.January, 15}},
		{name: "surrounding whitespace", input: "  20230115 ", want: Date{2023, time.January, 15}},
		{name: "float suffix", input: "20230115.0", want: Date{2023, time.January, 15}},
		{name: "spreadsheet wrapper", input: `="20231231"`, want: Date{2023, time.December, 31}},
		{name: "leap day", input: "20240229", want: Date{2024, time.February, 29}},

		{name: "empty", input: "", want: Date{}},
		{name: "letters", input: "abc", want: Date{}},
		{name: "too short", input: "2023011", want: Date{}},
		{name: "too long", input: "202301150", want: Date{}},
		{name: "iso form", input: "2023-01-15", want: Date{}},
		{name: "impossible day", input: "20230230", want: Date{}},
		{name: "month 13", input: "20231301", want: Date{}},
		{name: "non-leap february 29", input: "20230229", want: Date{}},
		{name: "other float", input: "20230115.5", want: Date{}},
		{name: "signed", input: "+2023011", want: Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateAdded(tt.input)
			if got != tt.want {
				t.Errorf("ParseDateAdded(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDateOption(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2023-01-15", want: Date{2023, time.January, 15}},
		{input: "20230115", want: Date{2023, time.January, 15}},
		{input: " 2023-01-15 ", want: Date{2023, time.January, 15}},
		{input: "15/01/2023", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDateOption(tt.input)
		if tt.wantErr {
			var dateErr *InvalidDateError
			if !errors.As(err, &dateErr) {
				t.Errorf("ParseDateOption(%q) error = %v, want *InvalidDateError", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDateOption(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDateOption(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDate_Format(t *testing.T) {
	d := Date{2023, time.March, 7}

	if got := d.String(); got != "2023-03-07" {
		t.Errorf("String() = %q, want %q", got, "2023-03-07")
	}
	if got := (Date{}).String(); got != "" {
		t.Errorf("zero String() = %q, want empty", got)
	}

	js, err := d.MarshalJSON()
	if err != nil || string(js) != `"2023-03-07"` {
		t.Errorf("MarshalJSON() = %s, %v", js, err)
	}
	js, _ = Date{}.MarshalJSON()
	if string(js) != "null" {
		t.Errorf("zero MarshalJSON() = %s, want null", js)
	}
}

func TestDate_Compare(t *testing.T) {
	a := Date{2023, time.January, 15}
	b := Date{2023, time.February, 1}
	c := Date{2024, time.January, 1}

	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Error("month ordering broken")
	}
	if b.Compare(c) != -1 {
		t.Error("year ordering broken")
	}
	if (Date{}).Compare(a) != -1 {
		t.Error("missing date should sort first")
	}
}

// ----------------------------------------------------------------------------
// ToPgFloat8 Tests
// ----------------------------------------------------------------------------

func TestToPgFloat8(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      float64
	}{
		{name: "integer", input: "7", wantValid: true, want: 7},
		{name: "decimal", input: "3.25", wantValid: true, want: 3.25},
		{name: "negative", input: "-1.5", wantValid: true, want: -1.5},
		{name: "leading decimal point", input: ".5", wantValid: true, want: 0.5},
		{name: "thousands separator", input: "1,234.5", wantValid: true, want: 1234.5},
		{name: "accounting negative", input: "(12)", wantValid: true, want: -12},
		{name: "scientific", input: "1e3", wantValid: true, want: 1000},
		{name: "whitespace", input: "  42  ", wantValid: true, want: 42},

		{name: "empty", input: "", wantValid: false},
		{name: "text", input: "high", wantValid: false},
		{name: "nan", input: "NaN", wantValid: false},
		{name: "infinity", input: "Inf", wantValid: false},
		{name: "overflow", input: "1e999", wantValid: false},
		{name: "two points", input: "1.2.3", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPgFloat8(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToPgFloat8(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if tt.wantValid && got.Float64 != tt.want {
				t.Errorf("ToPgFloat8(%q) = %v, want %v", tt.input, got.Float64, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  US  ", "US"},
		{`="00123"`, "00123"},
		{`"quoted"`, `"quoted"`},
		{"=SUM(A1)", "=SUM(A1)"},
		{"", ""},
		{`="`, `="`},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.input); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
