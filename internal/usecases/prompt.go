package usecases

import (
	"fmt"
	"strings"

	"focus_forge/internal/models"
)

const coachPersona = `You are a warm, practical coach for adults with ADHD.
You never diagnose, never shame and never give medical advice.
Keep answers under 120 words, plain text, no markdown lists.
Always end with exactly one concrete next step the person can start in under five minutes.`

const (
	FocusMood    = "mood"
	FocusTasks   = "tasks"
	FocusGeneral = "general"
)

func writeContext(b *strings.Builder, snap models.ContextSnapshot) {
	b.WriteString("What you know about them:\n")
	fmt.Fprintf(b, "- It is %s for them.\n", snap.TimeOfDay)

	if snap.AverageMood != nil {
		fmt.Fprintf(b, "- Average mood over their last %d check-ins: %.1f/10.\n", snap.EntryCount, *snap.AverageMood)
	} else {
		b.WriteString("- No earlier check-ins yet.\n")
	}
	switch snap.Trend {
	case models.TrendImproving, models.TrendDeclining, models.TrendStable:
		fmt.Fprintf(b, "- Mood this week compared with last week: %s.\n", snap.Trend)
	}
	if snap.CheckInStreak > 0 {
		fmt.Fprintf(b, "- Check-in streak: %d day(s) (best %d).\n", snap.CheckInStreak, snap.LongestStreak)
	}
	if snap.LowMoodDays > 0 {
		fmt.Fprintf(b, "- Low-mood check-ins recently: %d.\n", snap.LowMoodDays)
	}
	if len(snap.Themes) > 0 {
		names := make([]string, len(snap.Themes))
		for i, t := range snap.Themes {
			names[i] = fmt.Sprintf("%q (%d)", t.Theme, t.Count)
		}
		fmt.Fprintf(b, "- Recurring themes in their notes: %s.\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(b, "- Open tasks: %d, overdue: %d, completed this week: %d, completed today: %d.\n",
		snap.OpenTasks, snap.OverdueTasks, snap.CompletedWeek, snap.CompletedToday)
	if len(snap.NowTasks) > 0 {
		fmt.Fprintf(b, "- Current focus tasks: %s.\n", quoteAll(snap.NowTasks))
	}
	if len(snap.ActiveGoals) > 0 {
		fmt.Fprintf(b, "- Active goals: %s.\n", quoteAll(snap.ActiveGoals))
	}
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}

// CheckInPrompt asks for advice right after a mood check-in.
func CheckInPrompt(snap models.ContextSnapshot, entry models.MoodEntry) string {
	var b strings.Builder
	b.WriteString(coachPersona)
	b.WriteString("\n\n")
	writeContext(&b, snap)

	fmt.Fprintf(&b, "\nThey just checked in with a mood of %d/10.", entry.MoodScore)
	if entry.Note != "" {
		fmt.Fprintf(&b, " Their note: %q.", entry.Note)
	}
	b.WriteString("\nRespond to how they feel right now, then give the next step.")
	return b.String()
}

// CoachPrompt answers a free-form question, weighted toward focus.
func CoachPrompt(snap models.ContextSnapshot, message, focus string) string {
	var b strings.Builder
	b.WriteString(coachPersona)
	b.WriteString("\n\n")
	writeContext(&b, snap)

	switch focus {
	case FocusMood:
		b.WriteString("\nConcentrate on their emotional state and energy.")
	case FocusTasks:
		b.WriteString("\nConcentrate on what to work on next and how to start it.")
	default:
		b.WriteString("\nBalance how they feel with what they need to get done.")
	}

	if message != "" {
		fmt.Fprintf(&b, "\nThey ask: %q", message)
	} else {
		b.WriteString("\nThey did not ask anything specific; offer one helpful observation.")
	}
	return b.String()
}

// WeeklyPrompt asks for up to three outcomes in the plan reply format.
func WeeklyPrompt(snap models.ContextSnapshot, goals []models.Goal, lastWeek models.Completion) string {
	var b strings.Builder
	b.WriteString(coachPersona)
	b.WriteString("\n\n")
	writeContext(&b, snap)

	if lastWeek.Total > 0 {
		fmt.Fprintf(&b, "- Last week they finished %d of %d commitments.\n", lastWeek.Done, lastWeek.Total)
	}
	for _, g := range goals {
		fmt.Fprintf(&b, "- Goal %q in %s.\n", g.Title, g.Category)
	}

	fmt.Fprintf(&b, `
Suggest at most %d outcomes for this week, each with two or three small commitments.
Start with one short encouraging sentence. Then write %s on its own line followed by
a JSON array like [{"title": "...", "commitments": ["...", "..."]}] and nothing else.`,
		models.MaxOutcomesPerWeek, PlanSeparator)
	return b.String()
}
