package streak

const (
	// QualifyingDelta is the smallest word-count gain that earns experience.
	QualifyingDelta = 5
	// WordsPerXP converts gained words into experience points.
	WordsPerXP = 5
)

// State is the gamification snapshot persisted between sessions.
type State struct {
	XP        int
	Streak    int
	LastWrite Date
}

// ApplyWriteDelta advances state for a content change from oldWords to
// newWords on today. Gains below QualifyingDelta leave state untouched, so
// repeated small edits within a day never double count.
func ApplyWriteDelta(state State, oldWords, newWords int, today Date) State {
	delta := newWords - oldWords
	if delta < QualifyingDelta {
		return state
	}
	next := state
	next.XP += delta / WordsPerXP
	switch {
	case state.LastWrite == today:
	case !state.LastWrite.IsZero() && state.LastWrite.AddDays(1) == today:
		next.Streak++
	default:
		next.Streak = 1
	}
	next.LastWrite = today
	return next
}

// ReconcileOnLoad zeroes a saved streak when more than a day has passed
// since the last qualifying write.
func ReconcileOnLoad(savedStreak int, savedLastWrite, today Date) int {
	if savedLastWrite.IsZero() {
		return savedStreak
	}
	if today.DaysSince(savedLastWrite) > 1 {
		return 0
	}
	return savedStreak
}

// Load sanitizes a persisted state and reconciles its streak against today.
func Load(saved State, today Date) State {
	if saved.XP < 0 {
		saved.XP = 0
	}
	if saved.Streak < 0 {
		saved.Streak = 0
	}
	saved.Streak = ReconcileOnLoad(saved.Streak, saved.LastWrite, today)
	return saved
}
