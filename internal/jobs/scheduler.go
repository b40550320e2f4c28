// Package jobs runs the background maintenance work: pruning stale sessions
// and expiring raw analytics rows past retention.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/karloscodes/cartridge"

	"lydskog/internal/config"
)

// retentionInterval is how often old raw rows are swept. Retention is
// measured in days, so once per day is plenty.
const retentionInterval = 24 * time.Hour

// A maintenance job. Run must be safe to call repeatedly.
type job interface {
	Name() string
	Run() error
}

// Scheduler drives the maintenance jobs on their own tickers. It implements
// cartridge.BackgroundWorker so the application starts and stops it with the
// server.
type Scheduler struct {
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config

	// Only one job runs at a time; overlapping ticks are skipped.
	busy      sync.Mutex
	inFlight  bool
	isRunning bool

	pruner    *SessionPrunerJob
	retention *RetentionJob
	tickers   []*time.Ticker
}

func NewScheduler(dbManager cartridge.DBManager, logger *slog.Logger) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.GetConfig()

	return &Scheduler{
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		pruner:    NewSessionPrunerJob(dbManager, logger, cfg),
		retention: NewRetentionJob(dbManager, logger, cfg),
	}, nil
}

// Start launches all jobs. Implements cartridge.BackgroundWorker.
func (s *Scheduler) Start() error {
	if s.isRunning {
		s.logger.Info("Background jobs already running")
		return nil
	}
	s.isRunning = true

	s.runPeriodic(s.pruner, time.Duration(s.cfg.JobIntervalSeconds)*time.Second)
	s.runPeriodic(s.retention, retentionInterval)

	s.logger.Info("Background jobs started")
	return nil
}

// runPeriodic fires the job immediately and then on every tick until the
// scheduler stops.
func (s *Scheduler) runPeriodic(j job, interval time.Duration) {
	s.logger.Info("Scheduling job",
		slog.String("job", j.Name()),
		slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	s.tickers = append(s.tickers, ticker)

	go func() {
		s.execute(j)
		for {
			select {
			case <-ticker.C:
				s.execute(j)
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

// execute runs a job unless another one is in flight, recovering from panics
// so a bad job cannot take the scheduler down.
func (s *Scheduler) execute(j job) {
	s.busy.Lock()
	if s.inFlight {
		s.logger.Debug("Skipping job, previous run still in flight", slog.String("job", j.Name()))
		s.busy.Unlock()
		return
	}
	s.inFlight = true
	s.busy.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic recovered in background job",
				slog.String("job", j.Name()),
				slog.Any("panic", r))
		}
		s.busy.Lock()
		s.inFlight = false
		s.busy.Unlock()
	}()

	if err := j.Run(); err != nil {
		s.logger.Error("Job failed", slog.String("job", j.Name()), slog.Any("error", err))
	}
}

// Stop halts all jobs. Implements cartridge.BackgroundWorker.
func (s *Scheduler) Stop() {
	for _, t := range s.tickers {
		t.Stop()
	}
	s.cancel()
	s.isRunning = false
	s.logger.Info("Background jobs stopped")
}

// IsRunning reports whether the scheduler has been started.
func (s *Scheduler) IsRunning() bool {
	return s.isRunning
}
