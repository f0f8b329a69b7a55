package state

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/dashboard"
	"fintrack/internal/log"
)

const trendCacheSize = 8

// Dashboard holds the composite dashboard view: summary, trend series
// and accounts overview for the current time range.
type Dashboard struct {
	api    DashboardAPI
	logger *log.Logger
	trends *cache.LRU[[]core.TrendEntry]

	mu         sync.Mutex
	summary    core.DashboardSummary
	hasSummary bool
	series     []core.TrendEntry
	overview   core.AccountsOverview
	timeRange  string
	loading    bool
	err        error
	seq        uint64
}

type DashboardSnapshot struct {
	Summary    core.DashboardSummary
	HasSummary bool
	Trends     []core.TrendEntry
	Overview   core.AccountsOverview
	TimeRange  string
	Loading    bool
	Err        error
}

func NewDashboard(dashboardAPI DashboardAPI, trendTTL time.Duration, logger *log.Logger) *Dashboard {
	if logger == nil {
		logger = log.New(log.ComponentState, log.Config{})
	}
	return &Dashboard{
		api:       dashboardAPI,
		logger:    logger,
		trends:    cache.New[[]core.TrendEntry](trendCacheSize, trendTTL),
		timeRange: dashboard.RangeMonth,
	}
}

func (s *Dashboard) Snapshot() DashboardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	series := make([]core.TrendEntry, len(s.series))
	copy(series, s.series)
	return DashboardSnapshot{
		Summary:    s.summary,
		HasSummary: s.hasSummary,
		Trends:     series,
		Overview:   s.overview,
		TimeRange:  s.timeRange,
		Loading:    s.loading,
		Err:        s.err,
	}
}

// Refresh loads summary, trends and accounts overview concurrently and
// merges whatever succeeded; a failed sub-request neither aborts its
// siblings nor rolls their results back. The returned error is the
// first sub-failure, nil when all three settled cleanly.
func (s *Dashboard) Refresh(ctx context.Context, rangeToken string) error {
	seq := s.begin()
	period := dashboard.BackendPeriod(rangeToken)

	var (
		summaryPayload dashboard.SummaryPayload
		rows           []dashboard.TrendRow
		overview       core.AccountsOverview

		summaryErr  error
		trendsErr   error
		overviewErr error
	)

	// Plain errgroup, deliberately without a shared context: a failing
	// sub-request must not cancel its siblings.
	var g errgroup.Group
	g.Go(func() error {
		summaryPayload, summaryErr = s.api.Summary(ctx, period)
		return summaryErr
	})
	g.Go(func() error {
		rows, trendsErr = s.api.Trends(ctx, period)
		return trendsErr
	})
	g.Go(func() error {
		overview, overviewErr = s.api.AccountsOverview(ctx)
		return overviewErr
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.DebugContext(ctx, "dropping superseded dashboard response",
			log.FieldSeq, seq, log.FieldPeriod, period)
		return err
	}
	s.loading = false
	s.err = err
	s.timeRange = normalizeRange(rangeToken)

	if overviewErr == nil {
		s.overview = overview
	}
	if summaryErr == nil {
		// Merge the freshest overview we have into the summary's total.
		s.summary = dashboard.ReshapeSummary(summaryPayload, s.overview)
		s.hasSummary = true
	}
	if trendsErr == nil {
		s.series = dashboard.ReshapeTrends(rows)
		s.trends.Set(period, s.series)
	}
	return err
}

// SetTimeRange switches the trend series to another range, serving
// from the per-period cache when possible.
func (s *Dashboard) SetTimeRange(ctx context.Context, rangeToken string) error {
	period := dashboard.BackendPeriod(rangeToken)

	if series, ok := s.trends.Get(period); ok {
		s.mu.Lock()
		// A cached selection is still the newest intent; advance the
		// sequence so an older in-flight load is dropped on arrival.
		s.seq++
		s.series = series
		s.timeRange = normalizeRange(rangeToken)
		s.loading = false
		s.err = nil
		s.mu.Unlock()
		return nil
	}

	seq := s.begin()
	rows, err := s.api.Trends(ctx, period)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.DebugContext(ctx, "dropping superseded trends response",
			log.FieldSeq, seq, log.FieldPeriod, period)
		return err
	}
	s.loading = false
	s.err = err
	if err == nil {
		s.series = dashboard.ReshapeTrends(rows)
		s.timeRange = normalizeRange(rangeToken)
		s.trends.Set(period, s.series)
	}
	return err
}

// Clear drops all dashboard data, e.g. on logout.
func (s *Dashboard) Clear() {
	s.trends.Purge()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = core.DashboardSummary{}
	s.hasSummary = false
	s.series = nil
	s.overview = core.AccountsOverview{}
	s.timeRange = dashboard.RangeMonth
	s.err = nil
}

func (s *Dashboard) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.loading = true
	s.err = nil
	return s.seq
}

// normalizeRange keeps the snapshot's TimeRange within the known UI
// tokens, mirroring the backend-period fallback.
func normalizeRange(rangeToken string) string {
	switch rangeToken {
	case dashboard.RangeWeek, dashboard.RangeYear:
		return rangeToken
	default:
		return dashboard.RangeMonth
	}
}
