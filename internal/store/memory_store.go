package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/records"
)

// MemoryStore keeps a thread-safe copy of every known team, keyed by short name.
// Callers always receive copies; mutations go through UpdateTeam.
type MemoryStore struct {
	mu    sync.RWMutex
	teams map[string]teams.NBATeam
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		teams: make(map[string]teams.NBATeam),
	}
}

// ListTeams returns copies of all teams ordered by short name.
func (s *MemoryStore) ListTeams() []teams.NBATeam {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]teams.NBATeam, 0, len(s.teams))
	for _, t := range s.teams {
		result = append(result, clone(t))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Profile.ShortName < result[j].Profile.ShortName
	})
	return result
}

// GetTeam retrieves a team by short name.
func (s *MemoryStore) GetTeam(shortName string) (teams.NBATeam, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[key(shortName)]
	if !ok {
		return teams.NBATeam{}, false
	}
	return clone(t), true
}

// UpdateTeam applies fn to the stored team under the write lock, creating an
// empty team first when none exists, and returns a copy of the result.
// fn must not block.
func (s *MemoryStore) UpdateTeam(shortName string, fn func(*teams.NBATeam)) teams.NBATeam {
	k := key(shortName)

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.teams[k]
	if !ok {
		t = *teams.NewNBATeam(k)
	}
	if fn != nil {
		fn(&t)
	}
	t.Profile.ShortName = k
	s.teams[k] = clone(t)
	return clone(t)
}

func key(shortName string) string {
	return strings.ToUpper(strings.TrimSpace(shortName))
}

func clone(t teams.NBATeam) teams.NBATeam {
	t.Profile.Players = cloneRecords(t.Profile.Players)
	t.HistoricPlayers = cloneRecords(t.HistoricPlayers)
	return t
}

func cloneRecords(in []records.Record) []records.Record {
	if in == nil {
		return nil
	}
	out := make([]records.Record, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
