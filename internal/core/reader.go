package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DelimiterCandidates are the separators DetectDelimiter chooses from, in
// tie-break order.
var DelimiterCandidates = []rune{',', ';', '\t', '|'}

// sniffRows is how many records of the sample are inspected per candidate.
const sniffRows = 50

// NewTextReader wraps r so that a leading byte order mark is consumed (UTF-16
// input is decoded to UTF-8) and invalid UTF-8 sequences become U+FFFD.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(
		unicode.BOMOverride(transform.Nop),
		runes.ReplaceIllFormed(),
	))
}

// DetectDelimiter picks the separator that splits sample into the most
// consistent multi-column records. The header's field count is the
// reference; a candidate producing fewer than two header fields is
// rejected. Ties keep the earlier candidate and ',' is the fallback.
func DetectDelimiter(sample []byte) rune {
	best := ','
	bestRatio := 0.0

	for _, c := range DelimiterCandidates {
		ratio, width := delimiterScore(sample, c)
		if width < 2 {
			continue
		}
		if ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}

	return best
}

// delimiterScore returns the share of sampled records whose width matches
// the header, and the header width.
func delimiterScore(sample []byte, comma rune) (float64, int) {
	r := csv.NewReader(bytes.NewReader(sample))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return 0, 0
	}
	width := len(header)

	total, consistent := 0, 0
	for total < sniffRows {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, 0
		}
		total++
		if len(rec) == width {
			consistent++
		}
	}

	if total == 0 {
		return 1, width
	}
	return float64(consistent) / float64(total), width
}

// completeLines trims sample back to its last newline so a record cut off
// by the sample boundary does not skew detection.
func completeLines(sample []byte) []byte {
	if i := bytes.LastIndexByte(sample, '\n'); i >= 0 {
		return sample[:i+1]
	}
	return sample
}
