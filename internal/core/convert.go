package core

// convert.go turns raw dataset cells into typed record fields.
//
// Dataset exports are messy: dates arrive as integers or floats, scores carry
// thousands separators, and spreadsheet tools leave ="..." wrappers behind.
// None of these conversions fail; unparseable input becomes a missing value.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// dateAddedLayout is the only accepted date form: YYYYMMDD.
const dateAddedLayout = "20060102"

// ParseDateAdded converts a YYYYMMDD cell to a Date.
// A trailing ".0" is tolerated since integer columns are often written as
// floats. Anything else, including impossible calendar dates, yields the
// zero Date.
func ParseDateAdded(s string) Date {
	s = strings.TrimSuffix(CleanCell(s), ".0")
	if len(s) != len(dateAddedLayout) {
		return Date{}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Date{}
		}
	}

	t, err := time.Parse(dateAddedLayout, s)
	if err != nil {
		return Date{}
	}
	return DateOf(t)
}

// ParseDateOption parses a date selected in the dashboard or passed as a
// query parameter. Both YYYY-MM-DD and YYYYMMDD are accepted.
func ParseDateOption(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return DateOf(t), nil
	}
	if d := ParseDateAdded(s); !d.IsZero() {
		return d, nil
	}
	return Date{}, &InvalidDateError{Value: s}
}

// ToPgFloat8 converts a score cell to pgtype.Float8.
// Handles thousands separators and accounting format (parentheses for negative).
func ToPgFloat8(s string) pgtype.Float8 {
	s = CleanCell(s)
	if s == "" {
		return pgtype.Float8{Valid: false}
	}

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Float8{Valid: false}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pgtype.Float8{Valid: false}
	}
	return pgtype.Float8{Float64: f, Valid: true}
}

// CleanCell removes common export artifacts from a cell value:
// - Trims whitespace
// - Removes the spreadsheet formula wrapper (="...")
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = strings.TrimSpace(s[2 : len(s)-1])
	}

	return s
}
