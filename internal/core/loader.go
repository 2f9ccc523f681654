package core

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/JonMunkholm/newsreview/internal/logging"
	"github.com/JonMunkholm/newsreview/internal/metrics"
	"github.com/google/uuid"
)

const (
	// readBufferSize is the buffered reader size wrapped around data files.
	readBufferSize = 64 * 1024

	// sampleSize is how much of a file is inspected for delimiter detection.
	// It must not exceed readBufferSize.
	sampleSize = 32 * 1024
)

// Loader reads delimited dataset files into Datasets.
// A Loader holds no mutable state and is safe for concurrent use.
type Loader struct {
	schema *Schema
}

// NewLoader creates a loader resolving headers with schema.
// A nil schema uses DefaultSchema.
func NewLoader(schema *Schema) *Loader {
	if schema == nil {
		schema = DefaultSchema()
	}
	return &Loader{schema: schema}
}

// Load reads the dataset at path.
//
// When the file does not exist Load returns an empty dataset carrying the
// full column list together with ErrMissingDataSource. Missing required
// columns return a *SchemaMismatchError and no dataset.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	start := time.Now()
	log := logging.WithFields(ctx, "path", path)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		metrics.RecordLoad(metrics.LoadMissing, 0, time.Since(start).Seconds())
		log.Warn("data source not found")
		return l.emptyDataset(path), fmt.Errorf("%w: %s", ErrMissingDataSource, path)
	}
	if err != nil {
		metrics.RecordLoad(metrics.LoadError, 0, time.Since(start).Seconds())
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	ds, err := l.Read(ctx, path, f)
	if err != nil {
		result := metrics.LoadError
		var mismatch *SchemaMismatchError
		if errors.As(err, &mismatch) {
			result = metrics.LoadMismatch
		}
		metrics.RecordLoad(result, 0, time.Since(start).Seconds())
		log.Error("dataset load failed", "error", err)
		return nil, err
	}

	metrics.RecordLoad(metrics.LoadOK, ds.Len(), time.Since(start).Seconds())
	return ds, nil
}

// Read parses a dataset from r. name identifies the source in errors and
// on the returned dataset.
func (l *Loader) Read(ctx context.Context, name string, r io.Reader) (*Dataset, error) {
	br := bufio.NewReaderSize(NewTextReader(r), readBufferSize)

	sample, err := br.Peek(sampleSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(sample)) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoHeader)
	}
	if len(sample) == sampleSize {
		sample = completeLines(sample)
	}
	delim := DetectDelimiter(sample)

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: header: %w", name, err)
	}

	idx, err := l.schema.Resolve(header)
	if err != nil {
		var mismatch *SchemaMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Path = name
		}
		return nil, err
	}

	ds := &Dataset{
		ID:        uuid.NewString(),
		Path:      name,
		Columns:   l.schema.Columns(),
		Delimiter: delim,
		Records:   make([]Record, 0, 256),
	}

	missingDates := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if blankRow(row) {
			continue
		}

		rec := recordFromRow(row, idx)
		if !rec.HasDate() {
			missingDates++
		}
		ds.Records = append(ds.Records, rec)
	}

	logging.WithFields(ctx, "path", name, "load_id", ds.ID).Info("dataset loaded",
		"records", ds.Len(),
		"delimiter", string(delim),
		"missing_dates", missingDates,
	)

	return ds, nil
}

// emptyDataset returns a dataset with the full schema and no records.
func (l *Loader) emptyDataset(path string) *Dataset {
	return &Dataset{
		ID:        uuid.NewString(),
		Path:      path,
		Columns:   l.schema.Columns(),
		Delimiter: ',',
		Records:   []Record{},
	}
}

// recordFromRow builds a record from a data row. Short rows read as blanks.
func recordFromRow(row []string, idx HeaderIndex) Record {
	return Record{
		SourceURL:       CleanCell(idx.Cell(row, FieldSourceURL)),
		DateAdded:       ParseDateAdded(idx.Cell(row, FieldDateAdded)),
		ImportanceScore: ToPgFloat8(idx.Cell(row, FieldImportanceScore)),
		Country:         CleanCell(idx.Cell(row, FieldCountry)),
		Summary:         strings.TrimSpace(idx.Cell(row, FieldSummary)),
	}
}

// blankRow reports whether every cell of row is empty after trimming.
func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
