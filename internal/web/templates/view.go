// Package templates provides the templ components of the review dashboard.
// Components live in .templ files; run `templ generate` after editing them.
package templates

import (
	"html"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/JonMunkholm/newsreview/internal/core"
	"github.com/mattn/go-runewidth"
	"github.com/microcosm-cc/bluemonday"
)

// Row is one record as shown in the list.
type Row struct {
	Record   core.Record
	Excluded bool
}

// DashboardData is everything the dashboard page renders.
type DashboardData struct {
	DataPath          string
	ExclusionLocation string
	Missing           bool // data file not found
	Total             int  // records in the full dataset
	Countries         []string
	Dates             []core.Date
	Selected          core.Selection
	Rows              []Row
	SummaryWidth      int
	ReturnTo          string // request URI the exclusion form redirects back to
	Notice            string
}

func (d DashboardData) countrySelected(c string) bool {
	return slices.Contains(d.Selected.Countries, c)
}

func (d DashboardData) dateSelected(date core.Date) bool {
	return slices.Contains(d.Selected.Dates, date)
}

// strictPolicy strips all markup from summaries.
var strictPolicy = bluemonday.StrictPolicy()

// PlainText removes any markup from s and returns it unescaped, with runs of
// whitespace collapsed.
func PlainText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(strictPolicy.Sanitize(s))), " ")
}

// Truncate shortens s to at most width terminal cells, ending with an
// ellipsis when cut. A width of zero or less disables truncation.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// linkable reports whether a source can be rendered as a link. Sources such
// as "BBC Monitoring" or a host without a scheme are shown as plain text.
func linkable(source string) bool {
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// metaLine renders date, country and score, skipping missing parts.
func metaLine(rec core.Record) string {
	parts := make([]string, 0, 3)
	if rec.HasDate() {
		parts = append(parts, rec.DateAdded.String())
	} else {
		parts = append(parts, "no date")
	}
	if rec.Country != "" {
		parts = append(parts, rec.Country)
	}
	if rec.ImportanceScore.Valid {
		parts = append(parts, "score "+strconv.FormatFloat(rec.ImportanceScore.Float64, 'f', -1, 64))
	}
	return strings.Join(parts, " · ")
}
