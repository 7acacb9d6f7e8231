package handlers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"focus_forge/internal/ai"
	"focus_forge/internal/models"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
)

const maxCoachMessage = 2000

var errAINotConfigured = errors.New("AI provider is not configured")

type CoachHandler struct {
	engine *usecases.ContextEngine
	ai     ai.Generator
	log    *zap.SugaredLogger
	now    func() time.Time
}

func NewCoachHandler(engine *usecases.ContextEngine, gen ai.Generator, log *zap.SugaredLogger, now func() time.Time) *CoachHandler {
	return &CoachHandler{engine: engine, ai: gen, log: log, now: now}
}

type coachRequest struct {
	Message string `json:"message"`
	Focus   string `json:"focus"`
}

type coachResponse struct {
	Advice  string                 `json:"advice"`
	Source  string                 `json:"source"`
	Context models.ContextSnapshot `json:"context"`
}

func (ch *CoachHandler) HandleCoach(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Coach.HandleCoach"

	if ch.ai == nil {
		fail(w, ch.log, op, errAINotConfigured)
		return
	}

	var input coachRequest
	if err := decodeJSON(w, r, &input, true); err != nil {
		fail(w, ch.log, op, err)
		return
	}

	message, err := usecases.ValidateText("message", input.Message, maxCoachMessage)
	if err != nil {
		fail(w, ch.log, op, err)
		return
	}
	switch input.Focus {
	case "":
		input.Focus = usecases.FocusGeneral
	case usecases.FocusMood, usecases.FocusTasks, usecases.FocusGeneral:
	default:
		fail(w, ch.log, op, &usecases.ValidationError{Field: "focus", Message: "must be mood, tasks or general"})
		return
	}

	snap, err := ch.engine.Build(r.Context(), currentUser(r), ch.now())
	if err != nil {
		fail(w, ch.log, op, err)
		return
	}

	mood := 5
	if snap.RecentAverage != nil {
		mood = int(math.Round(*snap.RecentAverage))
	}
	advice, source := generateAdvice(r, ch.ai, ch.log, op, usecases.CoachPrompt(snap, message, input.Focus), mood, snap.EntryCount)

	writeJSON(w, http.StatusOK, coachResponse{Advice: advice, Source: source, Context: snap})
}

func (ch *CoachHandler) HandleContext(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Coach.HandleContext"

	snap, err := ch.engine.Build(r.Context(), currentUser(r), ch.now())
	if err != nil {
		fail(w, ch.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
