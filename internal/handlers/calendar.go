package handlers

import (
	"fmt"
	"net/http"

	"focus_forge/internal/auth"

	"go.uber.org/zap"
)

// CalendarHandler connects a user's Google Calendar so scheduled inbox
// items show up there.
type CalendarHandler struct {
	calendar Calendar
	verifier *auth.Verifier
	log      *zap.SugaredLogger
}

func NewCalendarHandler(calendar Calendar, verifier *auth.Verifier, log *zap.SugaredLogger) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, verifier: verifier, log: log}
}

// /api/calendar/connect -> consent URL for the signed-in user
func (h *CalendarHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Calendar.HandleConnect"

	if h.calendar == nil {
		writeError(w, http.StatusNotFound, "calendar integration is not enabled")
		return
	}

	state, err := h.verifier.IssueState(currentUser(r))
	if err != nil {
		fail(w, h.log, op, fmt.Errorf("issue state: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": h.calendar.AuthURL(state)})
}

// /auth/callback -> Google sends the code here
func (h *CalendarHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Calendar.HandleCallback"

	if h.calendar == nil {
		writeError(w, http.StatusNotFound, "calendar integration is not enabled")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "code not found")
		return
	}

	userID, err := h.verifier.ParseState(r.URL.Query().Get("state"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or expired state")
		return
	}

	if err := h.calendar.Exchange(r.Context(), userID, code); err != nil {
		h.log.Errorw("failed to exchange code", "op", op, "user_id", userID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to connect calendar")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Calendar connected. You can close this window.")
}
