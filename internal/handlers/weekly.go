package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"focus_forge/internal/ai"
	"focus_forge/internal/models"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type WeeklyHandler struct {
	weekly WeeklyStore
	goals  GoalStore
	engine *usecases.ContextEngine
	ai     ai.Generator
	log    *zap.SugaredLogger
	now    func() time.Time
	loc    *time.Location
}

func NewWeeklyHandler(weekly WeeklyStore, goals GoalStore, engine *usecases.ContextEngine, gen ai.Generator, log *zap.SugaredLogger, now func() time.Time, loc *time.Location) *WeeklyHandler {
	return &WeeklyHandler{
		weekly: weekly,
		goals:  goals,
		engine: engine,
		ai:     gen,
		log:    log,
		now:    now,
		loc:    loc,
	}
}

// week resolves an optional YYYY-MM-DD to the Monday of its week.
func (wh *WeeklyHandler) week(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return usecases.WeekStart(wh.now(), wh.loc), nil
	}
	day, err := usecases.ParseDay("week", value, wh.loc)
	if err != nil {
		return time.Time{}, err
	}
	return usecases.WeekStart(day, wh.loc), nil
}

func (wh *WeeklyHandler) load(ctx context.Context, userID string, weekStart time.Time) ([]models.Outcome, []models.Commitment, error) {
	var (
		outcomes    []models.Outcome
		commitments []models.Commitment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outcomes, err = wh.weekly.ListOutcomes(gctx, userID, weekStart)
		return err
	})
	g.Go(func() error {
		var err error
		commitments, err = wh.weekly.ListCommitments(gctx, userID, weekStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if outcomes == nil {
		outcomes = []models.Outcome{}
	}
	if commitments == nil {
		commitments = []models.Commitment{}
	}
	return outcomes, commitments, nil
}

func (wh *WeeklyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Weekly.HandleGet"

	weekStart, err := wh.week(r.URL.Query().Get("week"))
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}

	outcomes, commitments, err := wh.load(r.Context(), currentUser(r), weekStart)
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, usecases.BuildWeeklyPlan(weekStart, outcomes, commitments))
}

type outcomeRequest struct {
	Title    string `json:"title"`
	GoalID   *int64 `json:"goalId"`
	Week     string `json:"week"`
	Achieved *bool  `json:"achieved"`
}

func (wh *WeeklyHandler) HandleCreateOutcome(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Weekly.HandleCreateOutcome"
	userID := currentUser(r)

	var req outcomeRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, wh.log, op, err)
		return
	}

	title, err := usecases.ValidateTitle("title", req.Title)
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}
	weekStart, err := wh.week(req.Week)
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}
	if req.GoalID != nil {
		if err := checkGoal(r, wh.goals, userID, *req.GoalID); err != nil {
			fail(w, wh.log, op, err)
			return
		}
	}

	existing, err := wh.weekly.ListOutcomes(r.Context(), userID, weekStart)
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}
	if len(existing) >= models.MaxOutcomesPerWeek {
		fail(w, wh.log, op, conflict("a week holds at most %d outcomes", models.MaxOutcomesPerWeek))
		return
	}

	outcome := models.Outcome{
		UserID:    userID,
		WeekStart: weekStart,
		Title:     title,
		GoalID:    req.GoalID,
	}
	if err := wh.weekly.CreateOutcome(r.Context(), &outcome); err != nil {
		fail(w, wh.log, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, outcome)
}

func (wh *WeeklyHandler) HandleSetOutcome(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Weekly.HandleSetOutcome"

	id, err := pathID(r, "id")
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}

	var req outcomeRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, wh.log, op, err)
		return
	}
	if req.Achieved == nil {
		fail(w, wh.log, op, &usecases.ValidationError{Field: "achieved", Message: "is required"})
		return
	}

	outcome, err := wh.weekly.SetOutcomeAchieved(r.Context(), currentUser(r), id, *req.Achieved)
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

type commitmentRequest struct {
	Title     string `json:"title"`
	OutcomeID *int64 `json:"outcomeId"`
	Day       string `json:"day"`
	Week      string `json:"week"`
	Done      *bool  `json:"done"`
}

func (wh *WeeklyHandler) HandleCreateCommitment(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Weekly.HandleCreateCommitment"
	userID := currentUser(r)

	var req commitmentRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, wh.log, op, err)
		return
	}

	title, err := usecases.ValidateTitle("title", req.Title)
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}

	commitment := models.Commitment{UserID: userID, Title: title, OutcomeID: req.OutcomeID}

	week := req.Week
	if strings.TrimSpace(req.Day) != "" {
		day, err := usecases.ParseDay("day", req.Day, wh.loc)
		if err != nil {
			fail(w, wh.log, op, err)
			return
		}
		commitment.Day = &day
		if strings.TrimSpace(week) == "" {
			week = req.Day
		}
	}

	commitment.WeekStart, err = wh.week(week)
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}
	if commitment.Day != nil && !usecases.WeekStart(*commitment.Day, wh.loc).Equal(commitment.WeekStart) {
		fail(w, wh.log, op, &usecases.ValidationError{Field: "day", Message: "must fall inside the planned week"})
		return
	}

	if req.OutcomeID != nil {
		if err := wh.checkOutcome(r.Context(), userID, commitment.WeekStart, *req.OutcomeID); err != nil {
			fail(w, wh.log, op, err)
			return
		}
	}

	if err := wh.weekly.CreateCommitment(r.Context(), &commitment); err != nil {
		fail(w, wh.log, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, commitment)
}

func (wh *WeeklyHandler) checkOutcome(ctx context.Context, userID string, weekStart time.Time, outcomeID int64) error {
	outcomes, err := wh.weekly.ListOutcomes(ctx, userID, weekStart)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		if o.ID == outcomeID {
			return nil
		}
	}
	return &usecases.ValidationError{Field: "outcomeId", Message: "no such outcome in that week"}
}

func (wh *WeeklyHandler) HandleSetCommitment(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Weekly.HandleSetCommitment"

	id, err := pathID(r, "id")
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}

	var req commitmentRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, wh.log, op, err)
		return
	}
	if req.Done == nil {
		fail(w, wh.log, op, &usecases.ValidationError{Field: "done", Message: "is required"})
		return
	}

	commitment, err := wh.weekly.SetCommitmentDone(r.Context(), currentUser(r), id, *req.Done)
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, commitment)
}

type suggestResponse struct {
	WeekStart   string                  `json:"weekStart"`
	Message     string                  `json:"message"`
	Source      string                  `json:"source"`
	Suggestions []models.PlanSuggestion `json:"suggestions"`
}

// HandleSuggest proposes outcomes for the current week. Nothing is saved.
func (wh *WeeklyHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Weekly.HandleSuggest"
	ctx := r.Context()
	userID := currentUser(r)

	if wh.ai == nil {
		fail(w, wh.log, op, errAINotConfigured)
		return
	}

	now := wh.now()
	thisWeek := usecases.WeekStart(now, wh.loc)

	var (
		snap     models.ContextSnapshot
		goals    []models.Goal
		lastWeek []models.Commitment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = wh.engine.Build(gctx, userID, now)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = wh.goals.ListGoals(gctx, userID, models.GoalStatusActive)
		return err
	})
	g.Go(func() error {
		var err error
		lastWeek, err = wh.weekly.ListCommitments(gctx, userID, thisWeek.AddDate(0, 0, -7))
		return err
	})
	if err := g.Wait(); err != nil {
		fail(w, wh.log, op, err)
		return
	}

	resp := suggestResponse{
		WeekStart:   thisWeek.Format("2006-01-02"),
		Source:      usecases.SourceAI,
		Suggestions: []models.PlanSuggestion{},
	}

	prompt := usecases.WeeklyPrompt(snap, goals, usecases.CommitmentCompletion(lastWeek))
	response, err := wh.ai.Generate(ctx, prompt)
	if err != nil {
		wh.log.Warnw("AI error, no suggestions", "op", op, "error", err)
		resp.Source = usecases.SourceFallback
		resp.Message = usecases.FallbackAdvice(5, len(goals))
		writeJSON(w, http.StatusOK, resp)
		return
	}

	prose, suggestions, err := usecases.ParsePlanResponse(response)
	if err != nil {
		wh.log.Warnw("unparseable plan suggestions", "op", op, "error", err)
	}
	resp.Message = prose
	if len(suggestions) > 0 {
		resp.Suggestions = suggestions
	}
	writeJSON(w, http.StatusOK, resp)
}

func (wh *WeeklyHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Weekly.HandleReview"

	lastWeek := usecases.WeekStart(wh.now(), wh.loc).AddDate(0, 0, -7)

	outcomes, commitments, err := wh.load(r.Context(), currentUser(r), lastWeek)
	if err != nil {
		fail(w, wh.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, usecases.BuildWeeklyReview(lastWeek, outcomes, commitments))
}
