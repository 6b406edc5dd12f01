package editor

import (
	"context"
	"sync"
	"time"

	"github.com/csheth/chronicle/internal/logging"
	"github.com/csheth/chronicle/internal/metrics"
	"github.com/csheth/chronicle/internal/streak"
)

const (
	defaultWordGoal = 500
	saveTimeout     = 5 * time.Second
)

// ProgressSaver persists gamification changes.
type ProgressSaver interface {
	Save(ctx context.Context, state streak.State) error
}

// Options configures a Store. Progress is the already reconciled state loaded
// at startup.
type Options struct {
	Content  string
	WordGoal int
	Progress streak.State
	Saver    ProgressSaver
	Clock    func() time.Time
	Logger   logging.Logger
}

// Store is the single owner of the document, selection, gamification and AI
// request state. Every change goes through Dispatch and completes, metrics
// included, before the next one starts.
type Store struct {
	mu     sync.Mutex
	state  State
	saver  ProgressSaver
	clock  func() time.Time
	logger logging.Logger
}

// NewStore builds a store around opts.
func NewStore(opts Options) *Store {
	s := &Store{
		saver:  opts.Saver,
		clock:  opts.Clock,
		logger: opts.Logger,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	s.state.WordGoal = opts.WordGoal
	if s.state.WordGoal <= 0 {
		s.state.WordGoal = defaultWordGoal
	}
	s.state.Progress = opts.Progress
	s.setContent(opts.Content)
	s.state.Version = 0
	return s
}

// Dispatch applies action and reports whether state changed.
func (s *Store) Dispatch(action Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return action.apply(s)
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store) setContent(doc string) {
	s.state.Content = doc
	s.state.WordCount = metrics.WordCount(doc)
	s.state.ReadingMinutes = metrics.ReadingMinutes(s.state.WordCount)
	s.state.Empty = metrics.IsEmpty(doc)
	s.state.Version++
}

func (s *Store) award(before, after int) {
	current := s.state.Progress
	next := streak.ApplyWriteDelta(current, before, after, streak.DateOf(s.clock()))
	if next == current {
		return
	}
	s.state.Progress = next
	s.logger.Info("editor", "progress updated", map[string]any{
		"xp":     next.XP,
		"streak": next.Streak,
		"gained": after - before,
	})
	if s.saver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.saver.Save(ctx, next); err != nil {
		s.logger.Warn("editor", "failed to persist progress", map[string]any{"error": err})
	}
}
