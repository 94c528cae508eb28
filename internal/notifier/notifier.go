// Package notifier reports new final results for a team, one game per check.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/games"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
	"github.com/preston-bernstein/nba-roster-service/internal/timeutil"
)

// ErrCheckResults wraps any failure while looking for new results.
var ErrCheckResults = errors.New("an error occurred when checking new results")

// Outcome is the result of one check.
type Outcome int

const (
	OutcomeNoChange Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeError:
		return "error"
	default:
		return "nothing"
	}
}

// lookbackDays covers late games that finish after midnight in the configured zone.
const lookbackDays = 2

// Notifier remembers which games it has already reported per team.
// It is safe for concurrent use.
type Notifier struct {
	games    providers.GameProvider
	logger   *slog.Logger
	loc      *time.Location
	now      func() time.Time
	mu       sync.Mutex
	reported map[string]map[string]struct{}
}

// New builds a Notifier reading games from provider. An empty or invalid tz means UTC.
func New(provider providers.GameProvider, tz string, logger *slog.Logger) *Notifier {
	loc := providers.ResolveTimezone(tz)
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{
		games:    provider,
		logger:   logger,
		loc:      loc,
		now:      time.Now,
		reported: make(map[string]map[string]struct{}),
	}
}

// Check looks at yesterday's and today's final games of shortName and
// reports the earliest one not reported before. Failures return
// OutcomeError and an error wrapping ErrCheckResults.
func (n *Notifier) Check(ctx context.Context, shortName string) (Outcome, error) {
	short := strings.ToUpper(shortName)
	if n.games == nil {
		return OutcomeError, fmt.Errorf("%w: %w", ErrCheckResults, providers.ErrProviderUnavailable)
	}

	var finals []games.Game
	for _, date := range timeutil.RecentDates(n.now().In(n.loc), lookbackDays) {
		dayGames, err := n.games.FetchGames(ctx, date, n.loc.String())
		if err != nil {
			logging.Warn(logging.FromContext(ctx, n.logger), "result check failed",
				logging.FieldTeam, short, logging.FieldDate, date, "err", err)
			return OutcomeError, fmt.Errorf("%w: %w", ErrCheckResults, err)
		}
		for _, g := range dayGames {
			if g.Status == games.StatusFinal && g.Involves(short) {
				finals = append(finals, g)
			}
		}
	}
	sort.SliceStable(finals, func(i, j int) bool { return finals[i].StartTime < finals[j].StartTime })

	n.mu.Lock()
	defer n.mu.Unlock()

	seen := n.reported[short]
	if seen == nil {
		seen = make(map[string]struct{})
		n.reported[short] = seen
	}
	for _, g := range finals {
		if _, done := seen[g.ID]; done {
			continue
		}
		seen[g.ID] = struct{}{}
		if g.WonBy(short) {
			return OutcomeWon, nil
		}
		return OutcomeLost, nil
	}
	return OutcomeNoChange, nil
}
