package progress

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/csheth/chronicle/internal/streak"
)

// Keys under which the gamification state is persisted.
const (
	KeyXP        = "chronicle_xp"
	KeyStreak    = "chronicle_streak"
	KeyLastWrite = "chronicle_lastWriteDate"
)

// Store persists the gamification state between sessions.
type Store interface {
	Load(ctx context.Context) (streak.State, error)
	Save(ctx context.Context, state streak.State) error
}

// decode converts raw key values into a state. Missing or malformed values
// fall back to their zero default.
func decode(values map[string]string) streak.State {
	var state streak.State
	if v, err := strconv.Atoi(strings.TrimSpace(values[KeyXP])); err == nil && v > 0 {
		state.XP = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(values[KeyStreak])); err == nil && v > 0 {
		state.Streak = v
	}
	if d, err := streak.ParseDate(strings.TrimSpace(values[KeyLastWrite])); err == nil {
		state.LastWrite = d
	}
	return state
}

func encode(state streak.State) map[string]string {
	return map[string]string{
		KeyXP:        strconv.Itoa(state.XP),
		KeyStreak:    strconv.Itoa(state.Streak),
		KeyLastWrite: state.LastWrite.String(),
	}
}

// MemoryStore keeps the state in process. It is used by tests and when
// persistence is disabled.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	saves  int
}

// NewMemoryStore returns a store seeded with state.
func NewMemoryStore(state streak.State) *MemoryStore {
	return &MemoryStore{values: encode(state)}
}

func (m *MemoryStore) Load(ctx context.Context) (streak.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decode(m.values), nil
}

func (m *MemoryStore) Save(ctx context.Context, state streak.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = encode(state)
	m.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
