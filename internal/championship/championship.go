// Package championship keeps the set of teams registered for a competition.
package championship

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
)

// ErrRegistrationRefused is returned for a missing team or a team without a short name.
var ErrRegistrationRefused = errors.New("unable to register team")

// Championship is safe for concurrent use.
type Championship struct {
	name  string
	mu    sync.RWMutex
	teams map[string]teams.Team
}

// New returns an empty championship.
func New(name string) *Championship {
	return &Championship{name: name, teams: make(map[string]teams.Team)}
}

// Name returns the championship name.
func (c *Championship) Name() string {
	return c.name
}

// RegisterTeam enrols team. Registering the same short name again refreshes
// its descriptor and still reports true.
func (c *Championship) RegisterTeam(ctx context.Context, team *teams.NBATeam) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if team == nil {
		return false, ErrRegistrationRefused
	}
	short := strings.ToUpper(strings.TrimSpace(team.Profile.ShortName))
	if short == "" {
		return false, ErrRegistrationRefused
	}

	c.mu.Lock()
	c.teams[short] = team.Info
	c.mu.Unlock()
	return true, nil
}

// IsRegistered reports whether the short name has been registered.
func (c *Championship) IsRegistered(shortName string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.teams[strings.ToUpper(shortName)]
	return ok
}

// Registered returns the registered short names in sorted order.
func (c *Championship) Registered() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.teams))
	for short := range c.teams {
		out = append(out, short)
	}
	c.mu.RUnlock()
	sort.Strings(out)
	return out
}
