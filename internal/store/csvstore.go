// Package store provides persistence for the not-relevant url list.
//
// Two implementations of core.ExclusionStore are available: CSVStore keeps
// the list in a small delimited file next to the dataset, PGStore keeps it in
// PostgreSQL for deployments where several processes share one list.
package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/JonMunkholm/newsreview/internal/core"
)

// csvHeader is written to every new or rewritten exclusion file.
var csvHeader = []string{"url", "summary"}

// CSVStore keeps exclusions in a CSV file with a url,summary header.
//
// Every append reads the whole file and rewrites it through a temporary file
// renamed over the original. Writers inside one process are serialized;
// separate processes sharing the file race with last-writer-wins.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVStore creates a store backed by the file at path. The file is
// created on first write.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Location returns the backing file path.
func (s *CSVStore) Location() string {
	return s.path
}

// MarkNotRelevant appends url unless an entry with the exact same url exists.
func (s *CSVStore) MarkNotRelevant(ctx context.Context, url, summary string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(); err != nil {
		return false, err
	}

	entries, err := s.read()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.URL == url {
			return false, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	entries = append(entries, core.ExclusionEntry{URL: url, Summary: summary})
	if err := s.write(entries); err != nil {
		return false, err
	}
	return true, nil
}

// List returns every entry in file order. A missing file is an empty list.
func (s *CSVStore) List(ctx context.Context) ([]core.ExclusionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if errors.Is(err, fs.ErrNotExist) {
		return []core.ExclusionEntry{}, nil
	}
	return entries, err
}

// ensure creates the file with only a header when it does not exist yet.
func (s *CSVStore) ensure() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat exclusion file: %w", err)
	}
	return s.write(nil)
}

// read parses the file. Header names are matched case-insensitively so
// files written with a URL,Summary header are read too.
func (s *CSVStore) read() ([]core.ExclusionEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open exclusion file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(core.NewTextReader(f))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []core.ExclusionEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read exclusion file header: %w", err)
	}

	urlCol, summaryCol := -1, -1
	for i, h := range header {
		switch core.NormalizeHeader(h) {
		case "url":
			if urlCol < 0 {
				urlCol = i
			}
		case "summary":
			if summaryCol < 0 {
				summaryCol = i
			}
		}
	}
	if urlCol < 0 {
		return nil, fmt.Errorf("exclusion file %s: missing url column", s.path)
	}

	entries := []core.ExclusionEntry{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read exclusion file: %w", err)
		}

		e := core.ExclusionEntry{URL: cell(row, urlCol), Summary: cell(row, summaryCol)}
		if e.URL == "" {
			continue
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// write replaces the file with entries.
func (s *CSVStore) write(entries []core.ExclusionEntry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create exclusion dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".exclusions-*.csv")
	if err != nil {
		return fmt.Errorf("create temp exclusion file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp exclusion file: %w", err)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write exclusion header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write([]string{e.URL, e.Summary}); err != nil {
			tmp.Close()
			return fmt.Errorf("write exclusion entry: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush exclusion file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close exclusion file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace exclusion file: %w", err)
	}
	return nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
