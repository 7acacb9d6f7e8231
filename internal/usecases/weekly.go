package usecases

import (
	"time"

	"focus_forge/internal/models"
)

// WeekStart is the Monday of t's week, at local midnight.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := Day(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func Percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}

func CommitmentCompletion(commitments []models.Commitment) models.Completion {
	c := models.Completion{Total: len(commitments)}
	for _, cm := range commitments {
		if cm.Done {
			c.Done++
		}
	}
	c.Percent = Percent(c.Done, c.Total)
	return c
}

func BuildWeeklyPlan(weekStart time.Time, outcomes []models.Outcome, commitments []models.Commitment) models.WeeklyPlan {
	return models.WeeklyPlan{
		WeekStart:   weekStart.Format("2006-01-02"),
		Outcomes:    outcomes,
		Commitments: commitments,
		Completion:  CommitmentCompletion(commitments),
	}
}

func BuildWeeklyReview(weekStart time.Time, outcomes []models.Outcome, commitments []models.Commitment) models.WeeklyReview {
	review := models.WeeklyReview{
		WeekStart:        weekStart.Format("2006-01-02"),
		Completion:       CommitmentCompletion(commitments),
		AchievedOutcomes: []models.Outcome{},
		MissedOutcomes:   []models.Outcome{},
	}
	for _, o := range outcomes {
		if o.Achieved {
			review.AchievedOutcomes = append(review.AchievedOutcomes, o)
		} else {
			review.MissedOutcomes = append(review.MissedOutcomes, o)
		}
	}
	return review
}

// GoalProgress counts linked tasks.
func GoalProgress(goalID int64, tasks []models.Task) models.GoalProgress {
	p := models.GoalProgress{GoalID: goalID, Total: len(tasks)}
	for _, t := range tasks {
		if t.Done() {
			p.Done++
		}
	}
	p.Percent = Percent(p.Done, p.Total)
	return p
}
