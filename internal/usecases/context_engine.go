package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"focus_forge/internal/models"

	"golang.org/x/sync/errgroup"
)

const (
	trendThreshold = 0.5
	lowMoodCutoff  = 3
	topThemes      = 3
)

type MoodHistory interface {
	RecentMoods(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error)
}

type TaskLister interface {
	ListTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
}

type GoalLister interface {
	ListGoals(ctx context.Context, userID, status string) ([]models.Goal, error)
}

type StatsReader interface {
	GetStats(ctx context.Context, userID string) (models.UserStats, error)
}

type FocusReader interface {
	GetFocusPlan(ctx context.Context, userID string, day time.Time) (models.FocusPlan, error)
}

// ContextEngine gathers a user's recent history into a ContextSnapshot.
type ContextEngine struct {
	Moods    MoodHistory
	Tasks    TaskLister
	Goals    GoalLister
	Stats    StatsReader
	Focus    FocusReader
	Themes   []ThemeRule
	Location *time.Location
}

// SnapshotInput is the raw material for Summarize.
type SnapshotInput struct {
	Moods     []models.MoodEntry // newest first
	OpenTasks []models.Task
	DoneTasks []models.Task // completed in the last 7 days
	Goals     []models.Goal
	Stats     models.UserStats
	Plan      models.FocusPlan
}

// Build reads everything in parallel and summarises it.
func (e *ContextEngine) Build(ctx context.Context, userID string, now time.Time) (models.ContextSnapshot, error) {
	var in SnapshotInput

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		moods, err := e.Moods.RecentMoods(gctx, userID, models.MoodWindowSize)
		if err != nil {
			return fmt.Errorf("moods: %w", err)
		}
		in.Moods = moods
		return nil
	})
	g.Go(func() error {
		tasks, err := e.Tasks.ListTasks(gctx, userID, models.TaskFilter{Status: models.TaskStatusTodo})
		if err != nil {
			return fmt.Errorf("open tasks: %w", err)
		}
		in.OpenTasks = tasks
		return nil
	})
	g.Go(func() error {
		tasks, err := e.Tasks.ListTasks(gctx, userID, models.TaskFilter{
			Status: models.TaskStatusDone,
			From:   now.AddDate(0, 0, -7),
		})
		if err != nil {
			return fmt.Errorf("done tasks: %w", err)
		}
		in.DoneTasks = tasks
		return nil
	})
	g.Go(func() error {
		goals, err := e.Goals.ListGoals(gctx, userID, models.GoalStatusActive)
		if err != nil {
			return fmt.Errorf("goals: %w", err)
		}
		in.Goals = goals
		return nil
	})
	g.Go(func() error {
		stats, err := e.Stats.GetStats(gctx, userID)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		in.Stats = stats
		return nil
	})
	g.Go(func() error {
		plan, err := e.Focus.GetFocusPlan(gctx, userID, Day(now, e.location()))
		if err != nil {
			return fmt.Errorf("focus plan: %w", err)
		}
		in.Plan = plan
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.ContextSnapshot{}, fmt.Errorf("context engine: %w", err)
	}

	return Summarize(in, now, e.location(), e.Themes), nil
}

func (e *ContextEngine) location() *time.Location {
	if e.Location == nil {
		return time.UTC
	}
	return e.Location
}

func Summarize(in SnapshotInput, now time.Time, loc *time.Location, rules []ThemeRule) models.ContextSnapshot {
	snap := models.ContextSnapshot{
		EntryCount:  len(in.Moods),
		Trend:       models.TrendInsufficient,
		Themes:      []models.ThemeCount{},
		NowTasks:    []string{},
		ActiveGoals: []string{},
		TimeOfDay:   TimeOfDay(now.In(loc)),
	}

	moods := in.Moods
	if len(moods) > models.MoodWindowSize {
		moods = moods[:models.MoodWindowSize]
	}

	var (
		sum, recentSum, prevSum float64
		recentN, prevN          int
		notes                   []string
	)
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	for _, m := range moods {
		score := float64(m.MoodScore)
		sum += score

		switch {
		case !m.CreatedAt.Before(weekAgo):
			recentSum += score
			recentN++
		case !m.CreatedAt.Before(twoWeeksAgo):
			prevSum += score
			prevN++
		}

		if m.MoodScore <= lowMoodCutoff {
			snap.LowMoodDays++
		}
		if m.Note != "" {
			notes = append(notes, m.Note)
		}
	}

	if len(moods) > 0 {
		snap.AverageMood = round1(sum / float64(len(moods)))
		snap.LastNote = moods[0].Note
	}
	if recentN > 0 {
		snap.RecentAverage = round1(recentSum / float64(recentN))
	}
	if prevN > 0 {
		snap.PreviousAverage = round1(prevSum / float64(prevN))
	}
	if snap.RecentAverage != nil && snap.PreviousAverage != nil {
		snap.Trend = Trend(*snap.RecentAverage, *snap.PreviousAverage)
	}

	snap.CheckInStreak = ConsecutiveDays(moods, now, loc)
	snap.LongestStreak = in.Stats.LongestStreak
	if snap.CheckInStreak > snap.LongestStreak {
		snap.LongestStreak = snap.CheckInStreak
	}
	snap.Themes = ExtractThemes(notes, rules, topThemes)

	today := Day(now, loc)
	titles := make(map[int64]string, len(in.OpenTasks))
	for _, t := range in.OpenTasks {
		titles[t.ID] = t.Title
		if t.DueDate != nil && t.DueDate.Before(today) {
			snap.OverdueTasks++
		}
	}
	snap.OpenTasks = len(in.OpenTasks)

	for _, t := range in.DoneTasks {
		snap.CompletedWeek++
		if t.CompletedAt != nil && !t.CompletedAt.Before(today) {
			snap.CompletedToday++
		}
	}

	for _, id := range in.Plan.Slots {
		if id == nil {
			continue
		}
		if title, ok := titles[*id]; ok {
			snap.NowTasks = append(snap.NowTasks, title)
		}
	}

	for _, g := range in.Goals {
		snap.ActiveGoals = append(snap.ActiveGoals, g.Title)
	}

	return snap
}

func Trend(recent, previous float64) string {
	diff := recent - previous
	switch {
	case diff >= trendThreshold:
		return models.TrendImproving
	case diff <= -trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func TimeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 22:
		return "evening"
	default:
		return "night"
	}
}

func round1(v float64) *float64 {
	r := math.Round(v*10) / 10
	return &r
}
