package handlers

import (
	"net/http"
	"time"

	"focus_forge/internal/ai"
	"focus_forge/internal/models"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
)

type CheckInHandler struct {
	moods  MoodStore
	stats  StatsStore
	engine *usecases.ContextEngine
	ai     ai.Generator
	log    *zap.SugaredLogger
	now    func() time.Time
	loc    *time.Location
}

func NewCheckInHandler(moods MoodStore, stats StatsStore, engine *usecases.ContextEngine, gen ai.Generator, log *zap.SugaredLogger, now func() time.Time, loc *time.Location) *CheckInHandler {
	return &CheckInHandler{
		moods:  moods,
		stats:  stats,
		engine: engine,
		ai:     gen,
		log:    log,
		now:    now,
		loc:    loc,
	}
}

type checkInRequest struct {
	MoodScore *int   `json:"moodScore"`
	Note      string `json:"note"`
}

type checkInResponse struct {
	Entry   models.MoodEntry        `json:"entry"`
	Advice  string                  `json:"advice"`
	Source  string                  `json:"source"`
	Context *models.ContextSnapshot `json:"context,omitempty"`
	Streak  int                     `json:"streak"`
}

func (ch *CheckInHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	op := "handlers.CheckIn.HandleCheckIn"
	ctx := r.Context()
	userID := currentUser(r)

	var input checkInRequest
	if err := decodeJSON(w, r, &input, false); err != nil {
		fail(w, ch.log, op, err)
		return
	}
	if err := usecases.ValidateMood(input.MoodScore, input.Note); err != nil {
		fail(w, ch.log, op, err)
		return
	}

	now := ch.now()
	entry := models.MoodEntry{
		UserID:    userID,
		MoodScore: *input.MoodScore,
		Note:      input.Note,
		CreatedAt: now,
	}
	if err := ch.moods.CreateMood(ctx, &entry); err != nil {
		fail(w, ch.log, op, err)
		return
	}

	streak := ch.updateStreak(r, op, userID, now)

	resp := checkInResponse{Entry: entry, Streak: streak}

	snap, err := ch.engine.Build(ctx, userID, now)
	if err != nil {
		ch.log.Warnw("context unavailable, using fallback advice", "op", op, "error", err)
		resp.Advice, resp.Source = usecases.FallbackAdvice(entry.MoodScore, int(entry.ID)), usecases.SourceFallback
		writeJSON(w, http.StatusCreated, resp)
		return
	}
	resp.Context = &snap
	resp.Advice, resp.Source = generateAdvice(r, ch.ai, ch.log, op, usecases.CheckInPrompt(snap, entry), entry.MoodScore, int(entry.ID))

	writeJSON(w, http.StatusCreated, resp)
}

// updateStreak never fails the check-in; the entry is already stored.
func (ch *CheckInHandler) updateStreak(r *http.Request, op, userID string, now time.Time) int {
	stats, err := ch.stats.GetStats(r.Context(), userID)
	if err != nil {
		ch.log.Errorw("failed to load stats", "op", op, "error", err)
		return 0
	}

	stats = usecases.ApplyCheckIn(stats, now, ch.loc)
	stats.UserID = userID
	if err := ch.stats.SaveStats(r.Context(), &stats); err != nil {
		ch.log.Errorw("failed to save stats", "op", op, "error", err)
	}
	return stats.CurrentStreak
}

// generateAdvice asks the model and falls back to canned advice for the mood
// band when it is missing, fails or says nothing.
func generateAdvice(r *http.Request, gen ai.Generator, log *zap.SugaredLogger, op, prompt string, mood, seed int) (string, string) {
	if gen == nil {
		return usecases.FallbackAdvice(mood, seed), usecases.SourceFallback
	}

	response, err := gen.Generate(r.Context(), prompt)
	if err != nil {
		log.Warnw("AI error, using fallback advice", "op", op, "error", err)
		return usecases.FallbackAdvice(mood, seed), usecases.SourceFallback
	}

	advice := usecases.CleanAdvice(response)
	if advice == "" {
		return usecases.FallbackAdvice(mood, seed), usecases.SourceFallback
	}
	return advice, usecases.SourceAI
}
