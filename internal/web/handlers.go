package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/newsreview/internal/core"
	"github.com/JonMunkholm/newsreview/internal/logging"
	"github.com/JonMunkholm/newsreview/internal/web/templates"
)

// MaxFormSize is the maximum accepted size of an exclusion request body (1MB).
const MaxFormSize = 1 << 20

// markedParam carries the outcome of a form exclusion back to the dashboard.
const markedParam = "marked"

// exclusionRequest is the body of an exclusion submission. The url is
// whatever the dataset's source column holds, so only presence is checked;
// MaxFormSize bounds the rest.
type exclusionRequest struct {
	URL     string `json:"url" validate:"required"`
	Summary string `json:"summary"`
}

// recordsResponse is the body of GET /api/records.
type recordsResponse struct {
	Total   int           `json:"total"`
	Count   int           `json:"count"`
	Missing bool          `json:"missing"`
	Records []core.Record `json:"records"`
}

// handleDashboard renders the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel, err := parseSelection(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	page, err := s.service.Page(ctx, sel)
	missing := errors.Is(err, core.ErrMissingDataSource)
	if err != nil && !missing {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	rows := make([]templates.Row, len(page.Records.Records))
	for i, rec := range page.Records.Records {
		rows[i] = templates.Row{Record: rec, Excluded: page.Excluded.Has(rec.SourceURL)}
	}

	data := templates.DashboardData{
		DataPath:          s.service.DataPath(),
		ExclusionLocation: s.service.ExclusionLocation(),
		Missing:           missing,
		Total:             page.Total,
		Countries:         page.Options.Countries,
		Dates:             page.Options.Dates,
		Selected:          sel,
		Rows:              rows,
		SummaryWidth:      s.cfg.Display.SummaryWidth,
		ReturnTo:          returnTo(r),
		Notice:            notice(r.URL.Query().Get(markedParam)),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(data).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render dashboard", "error", err)
	}
}

// handleExcludeForm records a "Not Relevant" click from the dashboard and
// redirects back to the page it came from.
func (s *Server) handleExcludeForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormSize)
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid exclusion: %w", err), http.StatusBadRequest)
		return
	}

	req := exclusionRequest{
		URL:     strings.TrimSpace(r.PostFormValue("url")),
		Summary: r.PostFormValue("summary"),
	}
	added, ok := s.markNotRelevant(w, r, req)
	if !ok {
		return
	}

	http.Redirect(w, r, redirectTarget(r.PostFormValue("return_to"), added), http.StatusSeeOther)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOptions returns the country and date filter choices.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.service.Options(r.Context())
	if err != nil && !errors.Is(err, core.ErrMissingDataSource) {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// handleRecords returns the records matching the query's filters.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel, err := parseSelection(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	view, err := s.service.Filter(ctx, sel)
	missing := errors.Is(err, core.ErrMissingDataSource)
	if err != nil && !missing {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	full, _ := s.service.Dataset(ctx)

	records := view.Records
	if records == nil {
		records = []core.Record{}
	}
	writeJSON(w, http.StatusOK, recordsResponse{
		Total:   full.Len(),
		Count:   len(records),
		Missing: missing,
		Records: records,
	})
}

// handleListExclusions returns the not-relevant list.
func (s *Server) handleListExclusions(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.Exclusions(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.ExclusionEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleCreateExclusion adds a url to the not-relevant list. Accepts a JSON
// body or form fields.
func (s *Server) handleCreateExclusion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormSize)

	var req exclusionRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, r, fmt.Errorf("invalid exclusion: %w", err), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			s.respondError(w, r, fmt.Errorf("invalid exclusion: %w", err), http.StatusBadRequest)
			return
		}
		req.URL = r.PostFormValue("url")
		req.Summary = r.PostFormValue("summary")
	}
	req.URL = strings.TrimSpace(req.URL)

	added, ok := s.markNotRelevant(w, r, req)
	if !ok {
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]bool{"added": added})
}

// markNotRelevant validates req and records it. On failure the error
// response is already written and ok is false.
func (s *Server) markNotRelevant(w http.ResponseWriter, r *http.Request, req exclusionRequest) (added, ok bool) {
	if err := s.validate.Struct(req); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid exclusion: %w", err), http.StatusBadRequest)
		return false, false
	}

	added, err := s.service.MarkNotRelevant(r.Context(), req.URL, req.Summary)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return false, false
	}
	return added, true
}

// parseSelection reads the repeatable country and date parameters and the
// hide_excluded flag. Dates use the display form YYYY-MM-DD or YYYYMMDD.
func parseSelection(r *http.Request) (core.Selection, error) {
	q := r.URL.Query()
	var sel core.Selection

	for _, c := range q["country"] {
		if c = strings.TrimSpace(c); c != "" {
			sel.Countries = append(sel.Countries, c)
		}
	}

	for _, raw := range q["date"] {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		d, err := core.ParseDateOption(raw)
		if err != nil {
			return core.Selection{}, err
		}
		sel.Dates = append(sel.Dates, d)
	}

	switch strings.ToLower(q.Get("hide_excluded")) {
	case "1", "true", "on", "yes":
		sel.HideExcluded = true
	}

	return sel, nil
}

// returnTo is the dashboard URI of r without the exclusion notice.
func returnTo(r *http.Request) string {
	q := r.URL.Query()
	q.Del(markedParam)
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// redirectTarget validates a return_to value and appends the exclusion
// outcome. Anything that is not a local path falls back to the dashboard.
func redirectTarget(target string, added bool) string {
	u, err := url.Parse(target)
	if err != nil || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") ||
		strings.HasPrefix(target, "/\\") || u.Host != "" {
		u = &url.URL{Path: "/"}
	}

	q := u.Query()
	if added {
		q.Set(markedParam, "1")
	} else {
		q.Set(markedParam, "0")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func notice(marked string) string {
	switch marked {
	case "1":
		return "Marked as not relevant."
	case "0":
		return "Already marked as not relevant."
	default:
		return ""
	}
}
