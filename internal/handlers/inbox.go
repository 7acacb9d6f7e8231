package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"focus_forge/internal/models"
	"focus_forge/internal/storage"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
)

const scheduledEventLength = 30 * time.Minute

type InboxHandler struct {
	inbox    InboxStore
	tasks    TaskStore
	plans    *focusPlans
	calendar Calendar
	log      *zap.SugaredLogger
	now      func() time.Time
	loc      *time.Location
}

func NewInboxHandler(inbox InboxStore, tasks TaskStore, plans *focusPlans, calendar Calendar, log *zap.SugaredLogger, now func() time.Time, loc *time.Location) *InboxHandler {
	return &InboxHandler{
		inbox:    inbox,
		tasks:    tasks,
		plans:    plans,
		calendar: calendar,
		log:      log,
		now:      now,
		loc:      loc,
	}
}

type captureRequest struct {
	Content string `json:"content"`
}

func (ih *InboxHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Inbox.HandleCapture"

	var req captureRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, ih.log, op, err)
		return
	}

	content, err := usecases.ValidateText("content", req.Content, models.MaxInboxContentLength)
	if err != nil {
		fail(w, ih.log, op, err)
		return
	}
	if content == "" {
		fail(w, ih.log, op, &usecases.ValidationError{Field: "content", Message: "is required"})
		return
	}

	item := models.InboxItem{
		UserID:  currentUser(r),
		Content: content,
		Status:  models.InboxStatusCaptured,
	}
	if err := ih.inbox.CreateItem(r.Context(), &item); err != nil {
		fail(w, ih.log, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (ih *InboxHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Inbox.HandleList"

	status := r.URL.Query().Get("status")
	switch status {
	case "", models.InboxStatusCaptured, models.InboxStatusTriaged:
	default:
		fail(w, ih.log, op, &usecases.ValidationError{Field: "status", Message: "must be captured or triaged"})
		return
	}

	items, err := ih.inbox.ListItems(r.Context(), currentUser(r), status)
	if err != nil {
		fail(w, ih.log, op, err)
		return
	}
	if items == nil {
		items = []models.InboxItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (ih *InboxHandler) HandleTriage(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Inbox.HandleTriage"
	ctx := r.Context()
	userID := currentUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		fail(w, ih.log, op, err)
		return
	}

	var req usecases.TriageRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, ih.log, op, err)
		return
	}
	req, err = usecases.ValidateTriage(req)
	if err != nil {
		fail(w, ih.log, op, err)
		return
	}

	item, err := ih.inbox.GetItem(ctx, userID, id)
	if err != nil {
		fail(w, ih.log, op, err)
		return
	}
	if item.Status != models.InboxStatusCaptured {
		fail(w, ih.log, op, conflict("item was already triaged as %s", item.Action))
		return
	}

	var schedule usecases.Schedule
	if req.Action == models.ActionSchedule {
		schedule, err = usecases.ParseWhen(req.When, ih.now(), ih.loc)
		if err != nil {
			fail(w, ih.log, op, err)
			return
		}
	}

	result := models.TriageResult{}
	item.Action = req.Action

	switch req.Action {
	case models.ActionDoNow, models.ActionSchedule:
		task := models.Task{
			UserID:   userID,
			Title:    taskTitle(item.Content),
			Category: models.NormalizeCategory(req.Category),
			Status:   models.TaskStatusTodo,
		}
		if req.Action == models.ActionSchedule {
			due := usecases.Day(schedule.At, ih.loc)
			task.DueDate = &due
			at := schedule.At
			item.ScheduledFor = &at
		}
		if err := ih.tasks.CreateTask(ctx, &task); err != nil {
			fail(w, ih.log, op, err)
			return
		}
		item.TaskID = &task.ID
		result.Task = &task
	case models.ActionDelegate:
		item.DelegatedTo = req.DelegateTo
	}

	if err := ih.inbox.MarkTriaged(ctx, &item); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = conflict("item was already triaged")
		}
		fail(w, ih.log, op, err)
		return
	}
	result.Item = item

	switch req.Action {
	case models.ActionDoNow:
		ih.pin(r, op, &result)
	case models.ActionSchedule:
		result.CalendarEvent = ih.addToCalendar(r, op, result.Task.Title, schedule)
	}

	writeJSON(w, http.StatusOK, result)
}

// pin puts a do_now task into the first free slot. A full Now list leaves
// the task unpinned.
func (ih *InboxHandler) pin(r *http.Request, op string, result *models.TriageResult) {
	taskID := result.Task.ID
	var slot int
	_, err := ih.plans.update(r.Context(), currentUser(r), func(s models.Slots) (models.Slots, error) {
		var err error
		s, slot, err = usecases.Pin(s, taskID, 0)
		return s, err
	})
	switch {
	case err == nil:
		result.Pinned, result.Slot = true, slot
	case errors.Is(err, usecases.ErrSlotsFull):
	default:
		ih.log.Warnw("failed to pin triaged task", "op", op, "task_id", taskID, "error", err)
	}
}

// addToCalendar is best effort; users without a connected calendar get no
// event.
func (ih *InboxHandler) addToCalendar(r *http.Request, op, title string, schedule usecases.Schedule) string {
	if ih.calendar == nil {
		return ""
	}

	eventID, err := ih.calendar.CreateEvent(r.Context(), currentUser(r), models.CalendarEvent{
		Title:       title,
		Start:       schedule.At,
		Duration:    scheduledEventLength,
		AllDay:      schedule.AllDay,
		Description: fmt.Sprintf("Scheduled from your inbox for %s.", schedule),
	})
	if errors.Is(err, storage.ErrCalendarNotConnected) {
		return ""
	}
	if err != nil {
		ih.log.Warnw("failed to create calendar event", "op", op, "error", err)
		return ""
	}
	return eventID
}

// taskTitle shortens captured text to a valid task title.
func taskTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= models.MaxTitleLength {
		return content
	}
	return string(runes[:models.MaxTitleLength-1]) + "…"
}
