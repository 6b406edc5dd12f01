package guide

import (
	"strings"
	"testing"
)

func TestBuildTailorsGoalAndStreak(t *testing.T) {
	t.Parallel()

	steps := Build(Metadata{Words: 120, WordGoal: 500, Streak: 4})
	if len(steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(steps))
	}
	if !strings.Contains(steps[0].Description, "380 more words") {
		t.Fatalf("draft step should show remaining words: %q", steps[0].Description)
	}
	if !strings.Contains(steps[1].Description, "4 days in a row") {
		t.Fatalf("streak step should show the streak: %q", steps[1].Description)
	}
}

func TestBuildHandlesReachedGoalAndNoStreak(t *testing.T) {
	t.Parallel()

	steps := Build(Metadata{Words: 600, WordGoal: 500})
	if !strings.Contains(steps[0].Description, "reached") {
		t.Fatalf("draft step should congratulate: %q", steps[0].Description)
	}
	if !strings.Contains(steps[1].Description, "start a streak") {
		t.Fatalf("streak step should invite a first write: %q", steps[1].Description)
	}
}
