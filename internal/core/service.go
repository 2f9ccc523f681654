package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/newsreview/internal/logging"
	"github.com/JonMunkholm/newsreview/internal/metrics"
)

// ExclusionStore persists the urls the reviewer marked not relevant.
// Entries are append-only and deduplicated by exact url.
type ExclusionStore interface {
	// MarkNotRelevant records url unless it is already present.
	// It reports whether a new entry was added.
	MarkNotRelevant(ctx context.Context, url, summary string) (bool, error)

	// List returns every entry in insertion order.
	List(ctx context.Context) ([]ExclusionEntry, error)

	// Location describes where entries are kept, for display.
	Location() string
}

// Service provides the review operations used by the web layer.
type Service struct {
	dataPath string
	cache    *DatasetCache
	store    ExclusionStore
}

// NewService creates a Service reviewing the dataset at dataPath.
func NewService(dataPath string, cache *DatasetCache, store ExclusionStore) (*Service, error) {
	if strings.TrimSpace(dataPath) == "" {
		return nil, errors.New("service: empty data path")
	}
	if cache == nil {
		return nil, errors.New("service: nil dataset cache")
	}
	if store == nil {
		return nil, errors.New("service: nil exclusion store")
	}
	return &Service{dataPath: dataPath, cache: cache, store: store}, nil
}

// DataPath returns the reviewed dataset file.
func (s *Service) DataPath() string {
	return s.dataPath
}

// ExclusionLocation describes where not-relevant urls are saved.
func (s *Service) ExclusionLocation() string {
	return s.store.Location()
}

// Dataset returns the full dataset, loading it on first use.
// A missing file yields an empty dataset and ErrMissingDataSource.
func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	return s.cache.Get(ctx, s.dataPath)
}

// Options returns the filter choices of the dataset. A missing file yields
// empty options and ErrMissingDataSource.
func (s *Service) Options(ctx context.Context) (Options, error) {
	ds, err := s.Dataset(ctx)
	if err != nil && !errors.Is(err, ErrMissingDataSource) {
		return Options{Countries: []string{}, Dates: []Date{}}, err
	}
	return OptionsFor(ds), err
}

// Filter applies sel to the dataset. With HideExcluded set, rows whose url
// is already on the not-relevant list are dropped too.
// A missing file yields an empty dataset and ErrMissingDataSource.
func (s *Service) Filter(ctx context.Context, sel Selection) (*Dataset, error) {
	ds, loadErr := s.Dataset(ctx)
	if loadErr != nil && !errors.Is(loadErr, ErrMissingDataSource) {
		return nil, loadErr
	}

	view := ApplyFilters(ds, sel.CountrySet(), sel.DateSet())
	if sel.HideExcluded && !view.Empty() {
		excluded, err := s.ExcludedURLs(ctx)
		if err != nil {
			return nil, err
		}
		view = ExcludeURLs(view, excluded)
	}

	return view, loadErr
}

// Page is everything the dashboard shows for one selection.
type Page struct {
	Records  *Dataset
	Total    int
	Options  Options
	Excluded Set[string]
}

// Page loads the dataset and the not-relevant list once and applies sel.
// A missing file yields an empty page and ErrMissingDataSource.
func (s *Service) Page(ctx context.Context, sel Selection) (Page, error) {
	ds, loadErr := s.Dataset(ctx)
	if loadErr != nil && !errors.Is(loadErr, ErrMissingDataSource) {
		return Page{}, loadErr
	}

	excluded, err := s.ExcludedURLs(ctx)
	if err != nil {
		return Page{}, err
	}

	view := ApplyFilters(ds, sel.CountrySet(), sel.DateSet())
	if sel.HideExcluded {
		view = ExcludeURLs(view, excluded)
	}

	return Page{
		Records:  view,
		Total:    ds.Len(),
		Options:  OptionsFor(ds),
		Excluded: excluded,
	}, loadErr
}

// MarkNotRelevant adds url to the not-relevant list. Submitting a url that is
// already listed is not an error; added reports whether anything changed.
func (s *Service) MarkNotRelevant(ctx context.Context, url, summary string) (bool, error) {
	log := logging.WithFields(ctx, "url", url)

	if strings.TrimSpace(url) == "" {
		metrics.RecordExclusion(metrics.ExclusionError)
		return false, ErrEmptyURL
	}

	added, err := s.store.MarkNotRelevant(ctx, url, summary)
	if err != nil {
		metrics.RecordExclusion(metrics.ExclusionError)
		log.Error("mark not relevant failed", "error", err)
		return false, fmt.Errorf("exclusion store: %w", err)
	}

	if added {
		metrics.RecordExclusion(metrics.ExclusionAdded)
		log.Info("url marked not relevant", "store", s.store.Location())
	} else {
		metrics.RecordExclusion(metrics.ExclusionDuplicate)
		log.Debug("url already marked not relevant")
	}

	return added, nil
}

// Exclusions returns the not-relevant list in insertion order.
func (s *Service) Exclusions(ctx context.Context) ([]ExclusionEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("exclusion store: %w", err)
	}
	return entries, nil
}

// ExcludedURLs returns the urls on the not-relevant list.
func (s *Service) ExcludedURLs(ctx context.Context) (Set[string], error) {
	entries, err := s.Exclusions(ctx)
	if err != nil {
		return nil, err
	}
	urls := make(Set[string], len(entries))
	for _, e := range entries {
		urls[e.URL] = struct{}{}
	}
	return urls, nil
}
