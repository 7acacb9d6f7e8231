package handlers

import (
	"net/http"
	"strconv"
	"time"

	"focus_forge/internal/models"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const statsWindowDays = 30

type AnalyticsHandler struct {
	moods   MoodStore
	tasks   TaskStore
	stats   StatsStore
	weights usecases.Weights
	log     *zap.SugaredLogger
	now     func() time.Time
	loc     *time.Location
}

func NewAnalyticsHandler(moods MoodStore, tasks TaskStore, stats StatsStore, weights usecases.Weights, log *zap.SugaredLogger, now func() time.Time, loc *time.Location) *AnalyticsHandler {
	return &AnalyticsHandler{
		moods:   moods,
		tasks:   tasks,
		stats:   stats,
		weights: weights,
		log:     log,
		now:     now,
		loc:     loc,
	}
}

func (ah *AnalyticsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Analytics.HandleStats"
	userID := currentUser(r)
	now := ah.now()
	since := now.AddDate(0, 0, -statsWindowDays)

	var (
		stats models.UserStats
		moods []models.MoodEntry
		done  []models.Task
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		stats, err = ah.stats.GetStats(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		moods, err = ah.moods.MoodsSince(gctx, userID, since)
		return err
	})
	g.Go(func() error {
		var err error
		done, err = ah.tasks.ListTasks(gctx, userID, models.TaskFilter{Status: models.TaskStatusDone, From: since})
		return err
	})
	if err := g.Wait(); err != nil {
		fail(w, ah.log, op, err)
		return
	}

	writeJSON(w, http.StatusOK, usecases.BuildStatsReport(stats, moods, done, now, ah.loc))
}

func (ah *AnalyticsHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Analytics.HandleBalance"
	userID := currentUser(r)

	days := usecases.DefaultBalance
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > usecases.MaxBalanceDays {
			fail(w, ah.log, op, &usecases.ValidationError{Field: "days", Message: "must be between 1 and " + strconv.Itoa(usecases.MaxBalanceDays)})
			return
		}
		days = n
	}

	now := ah.now()
	start := now.AddDate(0, 0, -days)
	prevStart := start.AddDate(0, 0, -days)

	var current, previous []models.Task
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		current, err = ah.tasks.ListTasks(gctx, userID, models.TaskFilter{From: start, To: now})
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = ah.tasks.ListTasks(gctx, userID, models.TaskFilter{From: prevStart, To: start})
		return err
	})
	if err := g.Wait(); err != nil {
		fail(w, ah.log, op, err)
		return
	}

	writeJSON(w, http.StatusOK, usecases.BalanceReport(current, previous, ah.weights, days))
}
