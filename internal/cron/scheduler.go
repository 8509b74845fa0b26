package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/store"
)

// Scheduler runs periodic maintenance jobs. Specs include a seconds field.
type Scheduler struct {
	c   *cron.Cron
	log *zap.Logger
}

func NewScheduler(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("cron")
	cl := cronLogger{s: log.Sugar()}
	return &Scheduler{
		c:   cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log: log,
	}
}

// Add registers job under spec.
func (s *Scheduler) Add(spec, name string, job cron.Job) error {
	if _, err := s.c.AddJob(spec, job); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.log.Info("job scheduled", zap.String("job", name), zap.String("spec", spec))
	return nil
}

func (s *Scheduler) Start() {
	s.c.Start()
	s.log.Info("cron scheduler started", zap.Int("jobs", len(s.c.Entries())))
}

// Stop halts scheduling and returns a context that is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.c.Stop()
}

// DataSourceReport logs how reads have been served since the last report
// and whether the real store answers.
type DataSourceReport struct {
	Stats *store.Stats
	Mode  *datamode.State
	Exec  store.Executor
	// Reset clears the counters after each report.
	Reset   bool
	Timeout time.Duration
	Log     *zap.Logger
}

func (r DataSourceReport) Run() {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	snap := r.Stats.Snapshot()
	fields := []zap.Field{
		zap.String("mode", string(r.Mode.Mode())),
		zap.Int64("real_hits", snap.RealHits),
		zap.Int64("empty_fallbacks", snap.EmptyFallbacks),
		zap.Int64("failed_fallbacks", snap.FailedFallbacks),
		zap.Int64("mutation_failures", snap.MutationFailures),
		zap.Float64("fallback_rate", snap.FallbackRate()),
		zap.String("store", r.probe()),
	}
	if r.Reset {
		r.Stats.Reset()
	}
	log.Info("data source report", fields...)
}

func (r DataSourceReport) probe() string {
	if r.Exec == nil || !r.Exec.Available() {
		return "disabled"
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := store.Probe(ctx, r.Exec); err != nil {
		return "down"
	}
	return "up"
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
