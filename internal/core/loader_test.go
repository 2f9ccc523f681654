package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// writeDataFile writes content to a file in a fresh temp dir and returns its path.
func writeDataFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const gdeltExport = `SOURCEURL,DATEADDED,ImportanceScore_2,country,Summary
http://a.example/1,20230115,7.5,US,"Flooding closes roads, schools"
http://b.example/2,20230116,3,FR,Strike at port
http://c.example/3,abc,,US,Date is broken
http://d.example/4,20230115.0,"1,200",,No country
`

func TestLoader_Load(t *testing.T) {
	path := writeDataFile(t, "data.csv", gdeltExport)

	ds, err := NewLoader(nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if ds.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ds.Len())
	}
	if ds.ID == "" {
		t.Error("ID should be set")
	}
	if ds.Delimiter != ',' {
		t.Errorf("Delimiter = %q, want ','", ds.Delimiter)
	}
	if !slices.Equal(ds.Columns, DefaultSchema().Columns()) {
		t.Errorf("Columns = %v", ds.Columns)
	}

	first := ds.Records[0]
	if first.SourceURL != "http://a.example/1" {
		t.Errorf("SourceURL = %q", first.SourceURL)
	}
	if first.DateAdded != (Date{2023, time.January, 15}) {
		t.Errorf("DateAdded = %v", first.DateAdded)
	}
	if !first.ImportanceScore.Valid || first.ImportanceScore.Float64 != 7.5 {
		t.Errorf("ImportanceScore = %+v", first.ImportanceScore)
	}
	if first.Summary != "Flooding closes roads, schools" {
		t.Errorf("Summary = %q", first.Summary)
	}

	broken := ds.Records[2]
	if broken.HasDate() {
		t.Errorf("row with date %q should have a missing date", "abc")
	}
	if broken.ImportanceScore.Valid {
		t.Error("blank score should not be valid")
	}

	floatDate := ds.Records[3]
	if floatDate.DateAdded != (Date{2023, time.January, 15}) {
		t.Errorf("float-form date = %v", floatDate.DateAdded)
	}
	if floatDate.ImportanceScore.Float64 != 1200 {
		t.Errorf("score with separator = %v", floatDate.ImportanceScore.Float64)
	}
	if floatDate.Country != "" {
		t.Errorf("Country = %q, want blank", floatDate.Country)
	}
}

func TestLoader_Delimiters(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    rune
	}{
		{
			name:    "semicolon",
			content: "SOURCEURL;DATEADDED;ImportanceScore_2;country;Summary\nhttp://a;20230115;1;US;one, two\n",
			want:    ';',
		},
		{
			name:    "tab",
			content: "SOURCEURL\tDATEADDED\tImportanceScore_2\tcountry\tSummary\nhttp://a\t20230115\t1\tUS\tone; two\n",
			want:    '\t',
		},
		{
			name:    "pipe",
			content: "SOURCEURL|DATEADDED|ImportanceScore_2|country|Summary\nhttp://a|20230115|1|US|s\n",
			want:    '|',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewLoader(nil).Load(context.Background(), writeDataFile(t, "data.txt", tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if ds.Delimiter != tt.want {
				t.Errorf("Delimiter = %q, want %q", ds.Delimiter, tt.want)
			}
			if ds.Len() != 1 || ds.Records[0].Country != "US" {
				t.Errorf("Records = %+v", ds.Records)
			}
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	ds, err := NewLoader(nil).Load(context.Background(), path)
	if !errors.Is(err, ErrMissingDataSource) {
		t.Fatalf("Load() error = %v, want ErrMissingDataSource", err)
	}
	if ds == nil {
		t.Fatal("Load() returned nil dataset for missing file")
	}
	if !ds.Empty() {
		t.Errorf("Len() = %d, want 0", ds.Len())
	}
	if !slices.Equal(ds.Columns, DefaultSchema().Columns()) {
		t.Errorf("Columns = %v, want full schema", ds.Columns)
	}
}

func TestLoader_SchemaMismatch(t *testing.T) {
	path := writeDataFile(t, "data.csv", "SOURCEURL,DATEADDED,ImportanceScore_2,Summary\nhttp://a,20230115,1,s\n")

	ds, err := NewLoader(nil).Load(context.Background(), path)
	if ds != nil {
		t.Error("Load() should not return a dataset on schema mismatch")
	}

	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Load() error = %v, want *SchemaMismatchError", err)
	}
	if !slices.Equal(mismatch.Missing, []string{"country"}) {
		t.Errorf("Missing = %v, want [country]", mismatch.Missing)
	}
	if mismatch.Path != path {
		t.Errorf("Path = %q, want %q", mismatch.Path, path)
	}
}

func TestLoader_EmptyFile(t *testing.T) {
	path := writeDataFile(t, "data.csv", "\n  \n")

	_, err := NewLoader(nil).Load(context.Background(), path)
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("Load() error = %v, want ErrNoHeader", err)
	}
}

func TestLoader_ShortAndBlankRows(t *testing.T) {
	content := "SOURCEURL,DATEADDED,ImportanceScore_2,country,Summary\n" +
		"http://a,20230115\n" +
		",,,,\n" +
		"http://b,20230116,2,DE,ok\n"
	ds, err := NewLoader(nil).Load(context.Background(), writeDataFile(t, "data.csv", content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (blank row skipped)", ds.Len())
	}
	short := ds.Records[0]
	if short.Country != "" || short.Summary != "" || short.ImportanceScore.Valid {
		t.Errorf("short row should pad with blanks: %+v", short)
	}
	if !short.HasDate() {
		t.Error("short row kept its date")
	}
}

func TestLoader_BOMHeader(t *testing.T) {
	content := "\ufeffSOURCEURL,DATEADDED,ImportanceScore_2,country,Summary\nhttp://a,20230115,1,US,s\n"
	ds, err := NewLoader(nil).Load(context.Background(), writeDataFile(t, "data.csv", content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Records[0].SourceURL != "http://a" {
		t.Errorf("SourceURL = %q", ds.Records[0].SourceURL)
	}
}

func TestLoader_LargeFileSample(t *testing.T) {
	var b strings.Builder
	b.WriteString("SOURCEURL;DATEADDED;ImportanceScore_2;country;Summary\n")
	for b.Len() < sampleSize+1024 {
		b.WriteString("http://example.com/a;20230115;1;US;a summary, with a comma\n")
	}

	ds, err := NewLoader(nil).Load(context.Background(), writeDataFile(t, "data.csv", b.String()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Delimiter != ';' {
		t.Errorf("Delimiter = %q, want ';'", ds.Delimiter)
	}
	for i, r := range ds.Records {
		if r.Summary != "a summary, with a comma" {
			t.Fatalf("Records[%d].Summary = %q", i, r.Summary)
		}
	}
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil).Load(ctx, writeDataFile(t, "data.csv", gdeltExport))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
