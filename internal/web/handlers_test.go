package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/FoodShare/internal/config"
	"github.com/JonMunkholm/FoodShare/internal/core"
	"github.com/JonMunkholm/FoodShare/internal/core/coretest"
	"github.com/JonMunkholm/FoodShare/internal/logging"
	_ "github.com/JonMunkholm/FoodShare/internal/core/reports" // Register all reports
	"github.com/JonMunkholm/FoodShare/internal/metrics"
)

type tableBody struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func newTestServer(t *testing.T, origins ...string) *Server {
	t.Helper()

	svc, err := core.NewService(coretest.Dataset(t), core.Options{CacheViews: true})
	require.NoError(t, err)

	cfg := config.ServerConfig{RequestTimeout: 5 * time.Second, AllowedOrigins: origins}
	mcfg := config.MetricsConfig{Enabled: true, Path: "/metrics"}
	return NewServer(svc, metrics.New(false), cfg, mcfg)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestDatasetStats(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/dataset")
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode[core.DatasetStats](t, rec)
	assert.NotEmpty(t, stats.ID)
	assert.Equal(t, map[string]int{"providers": 4, "receivers": 3, "claims": 7, "listings": 6}, stats.Rows)
}

func TestListReports(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/reports")
	require.Equal(t, http.StatusOK, rec.Code)

	defs := decode[[]core.ReportDefinition](t, rec)
	require.Len(t, defs, core.ReportCount())
	assert.Equal(t, 1, defs[0].Number)
	assert.Equal(t, "providers-by-type", defs[0].Key)
	assert.Equal(t, "Providers by Type", defs[0].Name)
	assert.Equal(t, "most-frequent-location", defs[len(defs)-1].Key)
}

func TestReport(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/reports/providers-by-type")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[struct {
		Report core.ReportDefinition `json:"report"`
		Table  tableBody             `json:"table"`
	}](t, rec)

	assert.Equal(t, 1, body.Report.Number)
	assert.Equal(t, "providers-by-type", body.Table.Name)
	assert.Equal(t, []string{"Type", "Count"}, body.Table.Columns)
	assert.Equal(t, [][]any{
		{"Catering Service", float64(1)},
		{"Grocery Store", float64(1)},
		{"Restaurant", float64(2)},
	}, body.Table.Rows)
}

func TestReportNotFound(t *testing.T) {
	for _, target := range []string{"/api/reports/nope", "/api/reports/nope/export"} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, newTestServer(t), target)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, "REQ001", body.Code)
			assert.NotEmpty(t, body.Action)
		})
	}
}

func TestExportReport(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/reports/claimed-quantity-by-city/export")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="claimed-quantity-by-city.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "City,Quantity\nDelhi,15\nMumbai,70\n", rec.Body.String())
}

func TestRunAllReports(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/reports/all")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[[]struct {
		Report core.ReportDefinition `json:"report"`
		Table  *tableBody            `json:"table"`
		Error  *ErrorResponse        `json:"error"`
	}](t, rec)

	require.Len(t, out, core.ReportCount())
	for i, o := range out {
		assert.Equal(t, i+1, o.Report.Number)
		assert.Nil(t, o.Error, o.Report.Key)
		require.NotNil(t, o.Table, o.Report.Key)
		assert.Equal(t, o.Report.Key, o.Table.Name)
	}
}

func TestFilterListings(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		query string
		want  []any // Food_IDs
	}{
		{"", []any{"1", "2", "3", "4", "5", "6"}},
		{"?Location=All&Meal_Type=", []any{"1", "2", "3", "4", "5", "6"}},
		{"?Location=Mumbai&Meal_Type=Dinner", []any{"5", "6"}},
		{"?provider_name=Green+Bowl", []any{"1", "5"}},
		{"?Food_Type=Vegan&Location=Pune", []any{"4"}},
		{"?Location=Chennai", []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get(t, s, "/api/listings"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode[tableBody](t, rec)
			assert.Equal(t, core.ViewListingsWithProvider, body.Name)
			assert.Contains(t, body.Columns, "Provider_Name")

			ids := make([]any, len(body.Rows))
			for i, row := range body.Rows {
				ids[i] = row[0]
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterListingsUnknownField(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/listings?Expiry_Date=2025-03-17")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "REQ002", body.Code)
}

func TestFilterListingsDuplicateField(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 5; i++ {
		rec := get(t, srv, "/api/listings?location=Pune&Location=Delhi")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "REQ005", decode[ErrorResponse](t, rec).Code)
	}
}

func TestFilterOptions(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/listings/options")
	require.Equal(t, http.StatusOK, rec.Code)

	opts := decode[core.FilterOptions](t, rec)
	assert.Equal(t, []string{"Delhi", "Mumbai", "Pune"}, opts.Locations)
	assert.Equal(t, []string{"Green Bowl", "Hill Market", "Lotus Kitchen", "Sunrise Bakery"}, opts.Providers)
	assert.Equal(t, []string{"Non-Vegetarian", "Vegan", "Vegetarian"}, opts.FoodTypes)
	assert.Equal(t, []string{"Breakfast", "Dinner", "Lunch", "Snacks"}, opts.MealTypes)
}

func TestProviderContacts(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/providers/contacts")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[tableBody](t, rec)
	assert.Equal(t, []string{"Name", "Type", "City", "Contact"}, body.Columns)
	assert.Len(t, body.Rows, 4)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	get(t, s, "/healthz")
	get(t, s, "/api/reports/providers-by-type")

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `foodshare_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	assert.Contains(t, body, `route="/api/reports/{reportKey}"`)
	assert.NotContains(t, body, `route="/api/reports/providers-by-type"`)
}

func TestMetricsDisabled(t *testing.T) {
	svc, err := core.NewService(coretest.Dataset(t), core.Options{})
	require.NoError(t, err)
	s := NewServer(svc, nil, config.ServerConfig{}, config.MetricsConfig{Enabled: true, Path: "/metrics"})

	assert.Equal(t, http.StatusNotFound, get(t, s, "/metrics").Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/healthz").Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, "https://dash.example")

	preflight := httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	preflight.Header.Set("Origin", "https://dash.example")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, preflight)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://dash.example", rec.Header().Get("Access-Control-Allow-Origin"))

	other := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	other.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: %q", core.ErrUnknownReport, "x"), http.StatusNotFound},
		{fmt.Errorf("%w: %q", core.ErrUnknownFilterField, "x"), http.StatusBadRequest},
		{fmt.Errorf("%w: %q", core.ErrDuplicateFilterField, "x"), http.StatusBadRequest},
		{fmt.Errorf("report 1: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{&core.MissingColumnError{Table: "listings", Column: "Quantity"}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestFilterSelection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/listings?Location=+Pune+&Location=Delhi&Meal_Type=", nil)
	assert.Equal(t, map[string]string{"Location": "Pune", "Meal_Type": ""}, filterSelection(r))
}

func TestRespondErrorLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCode  string
	}{
		{"unknown filter", fmt.Errorf("%w: %q", core.ErrUnknownFilterField, "x"), "WARN", "REQ002"},
		{"duplicate key", &core.DuplicateKeyError{Table: "providers", Column: "Provider_ID", Value: "1"}, "ERROR", "DATA003"},
		{"unexpected", errors.New("boom"), "ERROR", "ERR000"},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prev := slog.Default()
			slog.SetDefault(slog.New(logging.NewHandler(&buf, "debug", "json")))
			t.Cleanup(func() { slog.SetDefault(prev) })

			rec := httptest.NewRecorder()
			s.respondError(rec, httptest.NewRequest(http.MethodGet, "/api/listings", nil), tt.err)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantCode, entry["code"])
			assert.Equal(t, tt.wantCode, decode[ErrorResponse](t, rec).Code)
		})
	}
}
