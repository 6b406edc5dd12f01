package guide

import "fmt"

// Step represents one actionable recommendation in the writing workflow.
type Step struct {
	Title       string
	Description string
}

// Metadata carries just enough session context for personalizing steps.
type Metadata struct {
	Words    int
	WordGoal int
	Streak   int
}

// Build returns a drafting checklist tailored to the current session.
func Build(meta Metadata) []Step {
	draft := "Write without stopping to edit. Aim for a rough paragraph before polishing anything."
	if meta.WordGoal > 0 {
		remaining := meta.WordGoal - meta.Words
		if remaining > 0 {
			draft = fmt.Sprintf("Write without stopping to edit. %d more words reach today's goal of %d.", remaining, meta.WordGoal)
		} else {
			draft = fmt.Sprintf("Goal of %d words reached. Keep going or switch to revising.", meta.WordGoal)
		}
	}

	streak := "Add at least five words today to start a streak."
	switch {
	case meta.Streak == 1:
		streak = "Day one of a streak. Write again tomorrow to grow it."
	case meta.Streak > 1:
		streak = fmt.Sprintf("%d days in a row. Five new words today keep it alive.", meta.Streak)
	}

	return []Step{
		{Title: "Draft first", Description: draft},
		{Title: "Keep the streak", Description: streak},
		{
			Title:       "Stuck mid-thought",
			Description: "Press ctrl+g and the assistant continues from where the document ends. The new text is highlighted until you edit.",
		},
		{
			Title:       "Reshape a passage",
			Description: "Select with ctrl+l or `select <text>`, then `rewrite <words>` or `style formal|casual|modern` replaces it in place.",
		},
		{
			Title:       "Polish and translate",
			Description: "`humanize` and `translate <language>` leave your draft alone. Review the result panel and press ctrl+a to swap it in.",
		},
		{
			Title:       "Back your claims",
			Description: "`refs` suggests academic references for the selection, or for the whole document when nothing is selected.",
		},
	}
}
