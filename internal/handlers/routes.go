package handlers

import (
	"net/http"
	"time"

	"focus_forge/internal/ai"
	"focus_forge/internal/auth"
	"focus_forge/internal/ratelimit"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
)

// Deps is everything the router needs. AI and Calendar may be nil when the
// integration is not configured.
type Deps struct {
	Log *zap.SugaredLogger

	Moods  MoodStore
	Tasks  TaskStore
	Goals  GoalStore
	Focus  FocusStore
	Inbox  InboxStore
	Weekly WeeklyStore
	Stats  StatsStore
	DB     Pinger

	Engine   *usecases.ContextEngine
	AI       ai.Generator
	Calendar Calendar
	Verifier *auth.Verifier

	Limiter          ratelimit.Limiter
	IPLimitPerMinute int
	AILimitPerHour   int

	Weights  usecases.Weights
	Location *time.Location
	Now      func() time.Time
}

func NewRouter(d Deps) http.Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Weights == nil {
		d.Weights = usecases.DefaultWeights
	}
	log := d.Log

	plans := &focusPlans{store: d.Focus, tasks: d.Tasks, now: d.Now, loc: d.Location}

	checkIn := NewCheckInHandler(d.Moods, d.Stats, d.Engine, d.AI, log, d.Now, d.Location)
	coach := NewCoachHandler(d.Engine, d.AI, log, d.Now)
	goals := NewGoalHandler(d.Goals, d.Tasks, log, d.Location)
	tasks := NewTaskHandler(d.Tasks, d.Goals, plans, log, d.Now, d.Location)
	now := NewNowHandler(plans, log)
	inbox := NewInboxHandler(d.Inbox, d.Tasks, plans, d.Calendar, log, d.Now, d.Location)
	weekly := NewWeeklyHandler(d.Weekly, d.Goals, d.Engine, d.AI, log, d.Now, d.Location)
	analytics := NewAnalyticsHandler(d.Moods, d.Tasks, d.Stats, d.Weights, log, d.Now, d.Location)
	calendar := NewCalendarHandler(d.Calendar, d.Verifier, log)
	health := NewHealthHandler(d.DB, log)

	authed := func(h http.HandlerFunc) http.Handler {
		return requireAuth(d.Verifier, h)
	}
	aiRule := rateRule{bucket: "ai", limit: d.AILimitPerHour, window: time.Hour}
	aiLimited := func(h http.HandlerFunc) http.Handler {
		limited := rateLimit(log, d.Limiter, aiRule, currentUser, h)
		return requireAuth(d.Verifier, limited)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", health.HandleHealth)

	mux.Handle("POST /api/checkin", aiLimited(checkIn.HandleCheckIn))
	mux.Handle("POST /api/coach", aiLimited(coach.HandleCoach))
	mux.Handle("GET /api/context", authed(coach.HandleContext))

	mux.Handle("GET /api/goals", authed(goals.HandleList))
	mux.Handle("POST /api/goals", authed(goals.HandleCreate))
	mux.Handle("PATCH /api/goals/{id}", authed(goals.HandleUpdate))
	mux.Handle("DELETE /api/goals/{id}", authed(goals.HandleDelete))
	mux.Handle("GET /api/goals/{id}/progress", authed(goals.HandleProgress))

	mux.Handle("GET /api/tasks", authed(tasks.HandleList))
	mux.Handle("POST /api/tasks", authed(tasks.HandleCreate))
	mux.Handle("PATCH /api/tasks/{id}", authed(tasks.HandleUpdate))
	mux.Handle("DELETE /api/tasks/{id}", authed(tasks.HandleDelete))
	mux.Handle("PUT /api/tasks/{id}/completion", authed(tasks.HandleCompletion))

	mux.Handle("GET /api/now", authed(now.HandleGet))
	mux.Handle("POST /api/now/pin", authed(now.HandlePin))
	mux.Handle("POST /api/now/unpin", authed(now.HandleUnpin))
	mux.Handle("POST /api/now/swap", authed(now.HandleSwap))
	mux.Handle("POST /api/now/clear", authed(now.HandleClear))

	mux.Handle("POST /api/inbox", authed(inbox.HandleCapture))
	mux.Handle("GET /api/inbox", authed(inbox.HandleList))
	mux.Handle("POST /api/inbox/{id}/triage", authed(inbox.HandleTriage))

	mux.Handle("GET /api/weekly", authed(weekly.HandleGet))
	mux.Handle("POST /api/weekly/outcomes", authed(weekly.HandleCreateOutcome))
	mux.Handle("PATCH /api/weekly/outcomes/{id}", authed(weekly.HandleSetOutcome))
	mux.Handle("POST /api/weekly/commitments", authed(weekly.HandleCreateCommitment))
	mux.Handle("PUT /api/weekly/commitments/{id}/done", authed(weekly.HandleSetCommitment))
	mux.Handle("POST /api/weekly/suggest", aiLimited(weekly.HandleSuggest))
	mux.Handle("GET /api/weekly/review", authed(weekly.HandleReview))

	mux.Handle("GET /api/stats", authed(analytics.HandleStats))
	mux.Handle("GET /api/balance", authed(analytics.HandleBalance))

	mux.Handle("GET /api/calendar/connect", authed(calendar.HandleConnect))
	mux.HandleFunc("GET /auth/callback", calendar.HandleCallback)

	ipRule := rateRule{bucket: "ip", limit: d.IPLimitPerMinute, window: time.Minute}
	var handler http.Handler = mux
	handler = rateLimit(log, d.Limiter, ipRule, clientIP, handler)
	handler = recoverer(log, handler)
	handler = requestLogger(log, handler)
	return handler
}
