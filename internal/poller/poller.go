package poller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/app/roster"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/notifier"
)

const (
	defaultInterval = 30 * time.Second
	// maxChecksPerTeam bounds how many new results one cycle applies per team.
	maxChecksPerTeam = 10
)

// ResultChecker reports the next unreported result for a team.
type ResultChecker interface {
	Check(ctx context.Context, shortName string) (notifier.Outcome, error)
}

// StandingStore applies updates to a stored team.
type StandingStore interface {
	UpdateTeam(shortName string, fn func(*teams.NBATeam)) teams.NBATeam
}

// Poller checks results for the watched teams on an interval and folds them
// into the stored standings.
type Poller struct {
	checker  ResultChecker
	store    StandingStore
	teams    []string
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults. Short names are upper-cased.
func New(checker ResultChecker, store StandingStore, watch []string, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	normalized := make([]string, 0, len(watch))
	for _, short := range watch {
		if short = strings.ToUpper(strings.TrimSpace(short)); short != "" {
			normalized = append(normalized, short)
		}
	}
	return &Poller{
		checker:  checker,
		store:    store,
		teams:    normalized,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	ticker := time.NewTicker(p.interval)
	p.ticker = ticker
	p.startMu.Unlock()

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()), logging.FieldCount, len(p.teams))
		p.pollOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-ticker.C:
				p.pollOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// pollOnce checks every watched team. The cycle fails if any team failed;
// results of the other teams are still applied.
func (p *Poller) pollOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)

	var errs []error
	applied := 0
	for _, short := range p.teams {
		n, err := p.checkTeam(ctx, short)
		applied += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)

	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		p.logError("poller check failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	p.recordSuccess(start)
	p.logInfo("poller refreshed standings",
		logging.FieldCount, applied,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) checkTeam(ctx context.Context, short string) (int, error) {
	applied := 0
	for i := 0; i < maxChecksPerTeam; i++ {
		outcome, err := p.checker.Check(ctx, short)
		if err != nil {
			return applied, err
		}
		if outcome != notifier.OutcomeWon && outcome != notifier.OutcomeLost {
			return applied, nil
		}
		var msg string
		p.store.UpdateTeam(short, func(t *teams.NBATeam) {
			msg = roster.ApplyOutcome(t, outcome)
		})
		applied++
		p.logInfo(msg, logging.FieldTeam, short, logging.FieldOutcome, outcome.String())
	}
	return applied, nil
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	logging.Error(p.logger, msg, err, attrs...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Teams returns the watched short names.
func (p *Poller) Teams() []string {
	return append([]string(nil), p.teams...)
}
