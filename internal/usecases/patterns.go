package usecases

import (
	"time"

	"focus_forge/internal/models"
)

type avg struct {
	sum float64
	n   int
}

func (a *avg) add(v float64) { a.sum += v; a.n++ }

func (a avg) value() float64 {
	return *round1(a.sum / float64(a.n))
}

// Patterns relates mood to weekday, time of day and completed work.
func Patterns(moods []models.MoodEntry, done []models.Task, loc *time.Location) models.Patterns {
	p := models.Patterns{
		WeekdayAverages:   map[string]float64{},
		TimeOfDayAverages: map[string]float64{},
	}

	productive := make(map[time.Time]bool)
	for _, t := range done {
		if t.CompletedAt != nil {
			productive[civil(t.CompletedAt.In(loc))] = true
		}
	}

	weekdays := map[time.Weekday]*avg{}
	buckets := map[string]*avg{}
	var onProductive, onOther avg

	for _, m := range moods {
		at := m.CreatedAt.In(loc)
		score := float64(m.MoodScore)

		if weekdays[at.Weekday()] == nil {
			weekdays[at.Weekday()] = &avg{}
		}
		weekdays[at.Weekday()].add(score)

		bucket := TimeOfDay(at)
		if buckets[bucket] == nil {
			buckets[bucket] = &avg{}
		}
		buckets[bucket].add(score)

		if productive[civil(at)] {
			onProductive.add(score)
		} else {
			onOther.add(score)
		}
	}

	best, worst := -1.0, 11.0
	// Walk Monday..Sunday so ties resolve to the earlier day.
	for i := 1; i <= 7; i++ {
		wd := time.Weekday(i % 7)
		a, ok := weekdays[wd]
		if !ok {
			continue
		}
		v := a.value()
		p.WeekdayAverages[wd.String()] = v
		if v > best {
			best = v
			p.BestWeekday = wd.String()
		}
		if v < worst {
			worst = v
			p.WorstWeekday = wd.String()
		}
	}

	for bucket, a := range buckets {
		p.TimeOfDayAverages[bucket] = a.value()
	}

	if onProductive.n > 0 {
		v := onProductive.value()
		p.MoodOnProductiveDays = &v
	}
	if onOther.n > 0 {
		v := onOther.value()
		p.MoodOnOtherDays = &v
	}
	return p
}

// BuildStatsReport combines stored counters with the 30 day window.
func BuildStatsReport(stats models.UserStats, moods []models.MoodEntry, done []models.Task, now time.Time, loc *time.Location) models.StatsReport {
	report := models.StatsReport{
		CurrentStreak: EffectiveStreak(stats, now, loc),
		LongestStreak: stats.LongestStreak,
		TotalCheckIns: stats.TotalCheckIns,
		Patterns:      Patterns(moods, done, loc),
	}

	if len(moods) > 0 {
		var a avg
		for _, m := range moods {
			a.add(float64(m.MoodScore))
		}
		v := a.value()
		report.AverageMood30d = &v
	}

	weekAgo := now.AddDate(0, 0, -7)
	for _, t := range done {
		if t.CompletedAt != nil && !t.CompletedAt.Before(weekAgo) {
			report.TasksCompleted7d++
		}
	}
	return report
}
