package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/FoodShare/internal/logging"
)

// Recorder receives operation metrics. *metrics.Recorder satisfies it.
type Recorder interface {
	ReportRun(report string, d time.Duration, err error)
	FilterRun(activeConstraints, rows int)
}

// Options configures a Service.
type Options struct {
	// CacheViews memoizes the joined views on first use. When false they are
	// rebuilt for every call.
	CacheViews bool

	// Metrics is optional.
	Metrics Recorder
}

// Service answers report and filter queries over one immutable Dataset.
// It is safe for concurrent use.
type Service struct {
	ds   *Dataset
	opts Options

	viewsOnce sync.Once
	lwp       *Table
	detail    *Table
	viewsErr  error
}

// NewService creates a Service over ds.
func NewService(ds *Dataset, opts Options) (*Service, error) {
	if ds == nil {
		return nil, fmt.Errorf("new service: dataset is nil")
	}
	return &Service{ds: ds, opts: opts}, nil
}

// Dataset returns the snapshot the service reads from.
func (s *Service) Dataset() *Dataset {
	return s.ds
}

// Views returns listings_with_provider and claims_detail.
func (s *Service) Views() (lwp, detail *Table, err error) {
	if !s.opts.CacheViews {
		return Resolve(s.ds.Providers, s.ds.Receivers, s.ds.Claims, s.ds.Listings)
	}
	s.viewsOnce.Do(func() {
		s.lwp, s.detail, s.viewsErr = Resolve(s.ds.Providers, s.ds.Receivers, s.ds.Claims, s.ds.Listings)
	})
	return s.lwp, s.detail, s.viewsErr
}

// Inputs returns the base tables and views reports are produced from.
func (s *Service) Inputs() (Inputs, error) {
	lwp, detail, err := s.Views()
	if err != nil {
		return Inputs{}, err
	}
	return Inputs{
		Providers:            s.ds.Providers,
		Receivers:            s.ds.Receivers,
		Claims:               s.ds.Claims,
		Listings:             s.ds.Listings,
		ListingsWithProvider: lwp,
		ClaimsDetail:         detail,
	}, nil
}

// ReportResult is the outcome of one report.
type ReportResult struct {
	Report ReportDefinition `json:"report"`
	Table  *Table           `json:"table,omitempty"`
	Err    error            `json:"-"`
}

// RunReport produces the report registered under key.
// An unregistered key wraps ErrUnknownReport.
func (s *Service) RunReport(ctx context.Context, key string) (*Table, error) {
	def, ok := LookupReport(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReport, key)
	}
	return s.run(ctx, def)
}

// RunAll produces every registered report in catalog order. A failing
// report sets its own Err and does not affect the others.
func (s *Service) RunAll(ctx context.Context) []ReportResult {
	defs := Reports()
	results := make([]ReportResult, len(defs))
	for i, def := range defs {
		t, err := s.run(ctx, def)
		results[i] = ReportResult{Report: def, Table: t, Err: err}
	}
	return results
}

func (s *Service) run(ctx context.Context, def ReportDefinition) (*Table, error) {
	logger := logging.WithFields(ctx, "report", def.Key, "report_number", def.Number)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := s.produce(def)
	elapsed := time.Since(start)
	if s.opts.Metrics != nil {
		s.opts.Metrics.ReportRun(def.Key, elapsed, err)
	}
	if err != nil {
		logger.Error("report failed", "error", err)
		return nil, fmt.Errorf("report %d (%s): %w", def.Number, def.Name, err)
	}

	logger.Debug("report produced", "rows", t.Len(), "duration_ms", elapsed.Milliseconds())
	return t, nil
}

func (s *Service) produce(def ReportDefinition) (*Table, error) {
	in, err := s.Inputs()
	if err != nil {
		return nil, err
	}
	t, err := def.Produce(in)
	if err != nil {
		return nil, err
	}
	return Named(t, def.Key), nil
}

// FilterListings filters listings_with_provider by p.
func (s *Service) FilterListings(ctx context.Context, p PredicateSet) (*Table, error) {
	lwp, _, err := s.Views()
	if err != nil {
		return nil, err
	}

	t, err := Filter(lwp, p)
	if err != nil {
		return nil, err
	}

	active := p.Active()
	if s.opts.Metrics != nil {
		s.opts.Metrics.FilterRun(len(active), t.Len())
	}
	logging.FromContext(ctx).Debug("listings filtered", "constraints", active, "rows", t.Len())

	return t, nil
}

// FilterOptions returns the selectable values for each filter field.
func (s *Service) FilterOptions() (FilterOptions, error) {
	return BuildFilterOptions(s.ds.Listings, s.ds.Providers)
}

// ProviderContacts returns the provider contact directory.
func (s *Service) ProviderContacts() (*Table, error) {
	return ProviderContacts(s.ds.Providers)
}

// DatasetStats summarizes the loaded snapshot.
type DatasetStats struct {
	ID       string         `json:"id"`
	LoadedAt time.Time      `json:"loaded_at"`
	Rows     map[string]int `json:"rows"`
}

// Stats returns the snapshot id, load time and row counts per table.
func (s *Service) Stats() DatasetStats {
	return DatasetStats{ID: s.ds.ID.String(), LoadedAt: s.ds.LoadedAt, Rows: s.ds.RowCounts()}
}

// RowCounts returns the row count of every base table.
func (d *Dataset) RowCounts() map[string]int {
	rows := make(map[string]int, len(datasetTables))
	for _, name := range datasetTables {
		t, _ := d.Table(name)
		rows[name] = t.Len()
	}
	return rows
}
