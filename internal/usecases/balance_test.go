package usecases

import (
	"testing"
	"time"

	"focus_forge/internal/models"

	"github.com/stretchr/testify/assert"
)

func task(category string, done bool) models.Task {
	t := models.Task{Category: category, Status: models.TaskStatusTodo}
	if done {
		t.Status = models.TaskStatusDone
	}
	return t
}

func TestBalanceReport(t *testing.T) {
	current := []models.Task{
		task(models.CategoryHealth, true),
		task(models.CategoryHealth, false),
		task(models.CategoryWork, true),
		task(models.CategoryWork, true),
	}

	report := BalanceReport(current, nil, DefaultWeights, 7)

	// (1.2*0.5 + 1.0*1.0) / 2.2
	assert.Equal(t, 73, report.Score)
	assert.Equal(t, 7, report.Days)
	assert.Equal(t, []string{"home", "learning", "personal", "relationships"}, report.Neglected)
	assert.Equal(t, models.BalanceTrend{Previous: 0, Delta: 73, Direction: "up"}, report.Trend)

	assert.Len(t, report.Categories, 6)
	assert.Equal(t, models.CategoryHealth, report.Categories[0].Category)
	assert.Equal(t, 0.5, report.Categories[0].Rate)
}

func TestBalanceNoTasks(t *testing.T) {
	report := BalanceReport(nil, nil, DefaultWeights, 7)

	assert.Equal(t, 0, report.Score)
	assert.Len(t, report.Neglected, 6)
	assert.Equal(t, "flat", report.Trend.Direction)
}

func TestBalanceNeglectUsesExactRate(t *testing.T) {
	var tasks []models.Task
	for i := 0; i < 200; i++ {
		tasks = append(tasks, task(models.CategoryWork, i < 49))
	}

	_, categories, neglected := Balance(tasks, Weights{models.CategoryWork: 1})
	assert.Equal(t, 0.25, categories[0].Rate, "shown rounded")
	assert.Equal(t, []string{models.CategoryWork}, neglected)

	tasks = append(tasks[:0], task(models.CategoryWork, true), task(models.CategoryWork, false),
		task(models.CategoryWork, false), task(models.CategoryWork, false))
	_, _, neglected = Balance(tasks, Weights{models.CategoryWork: 1})
	assert.Empty(t, neglected, "exactly a quarter is not neglected")
}

func TestBalanceTrendDeadband(t *testing.T) {
	prev := []models.Task{task(models.CategoryWork, true), task(models.CategoryWork, false)}
	curr := []models.Task{
		task(models.CategoryWork, true),
		task(models.CategoryWork, true),
		task(models.CategoryWork, true),
		task(models.CategoryWork, true),
		task(models.CategoryWork, false),
		task(models.CategoryWork, false),
		task(models.CategoryWork, false),
		task(models.CategoryWork, false),
		task(models.CategoryWork, false),
	}

	// 44 vs 50
	report := BalanceReport(curr, prev, DefaultWeights, 7)
	assert.Equal(t, -6, report.Trend.Delta)
	assert.Equal(t, "down", report.Trend.Direction)

	report = BalanceReport(prev, prev, DefaultWeights, 7)
	assert.Equal(t, "flat", report.Trend.Direction)
}

func TestBalanceUnknownCategoryCountsAsPersonal(t *testing.T) {
	score, _, neglected := Balance([]models.Task{task("Gardening", true)}, DefaultWeights)

	assert.Equal(t, 100, score)
	assert.NotContains(t, neglected, models.CategoryPersonal)
}

func TestMergeWeights(t *testing.T) {
	w := MergeWeights(map[string]float64{"HOME": 0, "learning": 2, "hobbies": 5})

	assert.Equal(t, 0.0, w[models.CategoryHome])
	assert.Equal(t, 2.0, w[models.CategoryLearning])
	assert.NotContains(t, w, "hobbies")
	assert.Equal(t, 1.2, DefaultWeights[models.CategoryHealth], "defaults stay untouched")

	_, categories, neglected := Balance(nil, w)
	assert.Len(t, categories, 5)
	assert.NotContains(t, neglected, models.CategoryHome)
}

func TestPatterns(t *testing.T) {
	productiveAt := date(2026, 3, 2, 15)
	moods := []models.MoodEntry{
		{MoodScore: 8, CreatedAt: date(2026, 3, 2, 10)}, // Monday morning
		{MoodScore: 6, CreatedAt: date(2026, 3, 9, 20)}, // Monday evening
		{MoodScore: 4, CreatedAt: date(2026, 3, 3, 10)}, // Tuesday morning
	}
	done := []models.Task{{Status: models.TaskStatusDone, CompletedAt: &productiveAt}}

	p := Patterns(moods, done, time.UTC)

	assert.Equal(t, map[string]float64{"Monday": 7, "Tuesday": 4}, p.WeekdayAverages)
	assert.Equal(t, map[string]float64{"morning": 6, "evening": 6}, p.TimeOfDayAverages)
	assert.Equal(t, "Monday", p.BestWeekday)
	assert.Equal(t, "Tuesday", p.WorstWeekday)
	if assert.NotNil(t, p.MoodOnProductiveDays) && assert.NotNil(t, p.MoodOnOtherDays) {
		assert.Equal(t, 8.0, *p.MoodOnProductiveDays)
		assert.Equal(t, 5.0, *p.MoodOnOtherDays)
	}
}

func TestBuildStatsReport(t *testing.T) {
	now := date(2026, 3, 12, 12)
	last := date(2026, 3, 11, 0)
	recent := date(2026, 3, 10, 9)
	old := date(2026, 3, 1, 9)

	report := BuildStatsReport(
		models.UserStats{CurrentStreak: 4, LongestStreak: 9, LastCheckInDate: &last, TotalCheckIns: 20},
		[]models.MoodEntry{{MoodScore: 5, CreatedAt: recent}, {MoodScore: 8, CreatedAt: old}},
		[]models.Task{{CompletedAt: &recent}, {CompletedAt: &old}},
		now, time.UTC,
	)

	assert.Equal(t, 4, report.CurrentStreak)
	assert.Equal(t, 9, report.LongestStreak)
	assert.Equal(t, 20, report.TotalCheckIns)
	if assert.NotNil(t, report.AverageMood30d) {
		assert.Equal(t, 6.5, *report.AverageMood30d)
	}
	assert.Equal(t, 1, report.TasksCompleted7d)
}
