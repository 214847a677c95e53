package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/FoodShare/internal/core"
	"github.com/go-chi/chi/v5"
)

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Stats())
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, core.Reports())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "reportKey")

	t, err := s.service.RunReport(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	def, _ := core.LookupReport(key)
	writeJSON(w, core.ReportResult{Report: def, Table: t})
}

// reportOutcome is one entry of the run-all response. A failed report
// carries its error instead of a table.
type reportOutcome struct {
	Report core.ReportDefinition `json:"report"`
	Table  *core.Table           `json:"table,omitempty"`
	Error  *ErrorResponse        `json:"error,omitempty"`
}

func (s *Server) handleRunAllReports(w http.ResponseWriter, r *http.Request) {
	results := s.service.RunAll(r.Context())

	out := make([]reportOutcome, len(results))
	for i, res := range results {
		out[i] = reportOutcome{Report: res.Report, Table: res.Table}
		if res.Err != nil {
			msg := core.MapError(res.Err)
			out[i].Error = &ErrorResponse{Error: msg.Message, Message: msg.Message, Action: msg.Action, Code: msg.Code}
		}
	}

	writeJSON(w, out)
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "reportKey")

	t, err := s.service.RunReport(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key+".csv"))
	if err := t.WriteCSV(w); err != nil {
		slog.Error("csv export error", "report", key, "error", err)
	}
}

// filterSelection collects the filter query parameters. Each parameter
// may appear once; "All" or an empty value leaves the field unconstrained.
func filterSelection(r *http.Request) map[string]string {
	sel := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		sel[key] = strings.TrimSpace(values[0])
	}
	return sel
}

func (s *Server) handleFilterListings(w http.ResponseWriter, r *http.Request) {
	preds, err := core.ParsePredicates(filterSelection(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	t, err := s.service.FilterListings(r.Context(), preds)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, t)
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.service.FilterOptions()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, opts)
}

func (s *Server) handleProviderContacts(w http.ResponseWriter, r *http.Request) {
	t, err := s.service.ProviderContacts()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, t)
}
