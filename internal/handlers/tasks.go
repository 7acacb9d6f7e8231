package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"focus_forge/internal/models"
	"focus_forge/internal/storage"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks TaskStore
	goals GoalStore
	plans *focusPlans
	log   *zap.SugaredLogger
	now   func() time.Time
	loc   *time.Location
}

func NewTaskHandler(tasks TaskStore, goals GoalStore, plans *focusPlans, log *zap.SugaredLogger, now func() time.Time, loc *time.Location) *TaskHandler {
	return &TaskHandler{tasks: tasks, goals: goals, plans: plans, log: log, now: now, loc: loc}
}

// taskRequest is shared by create and patch. goalId 0 and an empty dueDate
// clear the field on patch.
type taskRequest struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
	GoalID   *int64  `json:"goalId"`
	DueDate  *string `json:"dueDate"`
}

func (th *TaskHandler) apply(r *http.Request, req taskRequest, task *models.Task) error {
	if req.Title != nil {
		title, err := usecases.ValidateTitle("title", *req.Title)
		if err != nil {
			return err
		}
		task.Title = title
	}
	if req.Category != nil {
		task.Category = models.NormalizeCategory(*req.Category)
	}
	if req.GoalID != nil {
		if *req.GoalID == 0 {
			task.GoalID = nil
		} else {
			if err := checkGoal(r, th.goals, task.UserID, *req.GoalID); err != nil {
				return err
			}
			goalID := *req.GoalID
			task.GoalID = &goalID
		}
	}
	if req.DueDate != nil {
		if strings.TrimSpace(*req.DueDate) == "" {
			task.DueDate = nil
		} else {
			d, err := usecases.ParseDay("dueDate", *req.DueDate, th.loc)
			if err != nil {
				return err
			}
			task.DueDate = &d
		}
	}
	return nil
}

// checkGoal turns an unknown goal reference into a validation error.
func checkGoal(r *http.Request, goals GoalStore, userID string, goalID int64) error {
	_, err := goals.GetGoal(r.Context(), userID, goalID)
	if errors.Is(err, storage.ErrNotFound) {
		return &usecases.ValidationError{Field: "goalId", Message: "unknown goal"}
	}
	return err
}

func (th *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Tasks.HandleList"
	q := r.URL.Query()

	filter := models.TaskFilter{Status: q.Get("status")}
	if err := usecases.ValidateTaskStatus(filter.Status); err != nil {
		fail(w, th.log, op, err)
		return
	}
	if c := q.Get("category"); c != "" {
		filter.Category = models.NormalizeCategory(c)
	}

	tasks, err := th.tasks.ListTasks(r.Context(), currentUser(r), filter)
	if err != nil {
		fail(w, th.log, op, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (th *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Tasks.HandleCreate"

	var req taskRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, th.log, op, err)
		return
	}
	if req.Title == nil {
		fail(w, th.log, op, &usecases.ValidationError{Field: "title", Message: "is required"})
		return
	}

	task := models.Task{
		UserID:   currentUser(r),
		Category: models.CategoryPersonal,
		Status:   models.TaskStatusTodo,
	}
	if err := th.apply(r, req, &task); err != nil {
		fail(w, th.log, op, err)
		return
	}

	if err := th.tasks.CreateTask(r.Context(), &task); err != nil {
		fail(w, th.log, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (th *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Tasks.HandleUpdate"

	id, err := pathID(r, "id")
	if err != nil {
		fail(w, th.log, op, err)
		return
	}

	var req taskRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, th.log, op, err)
		return
	}

	task, err := th.tasks.GetTask(r.Context(), currentUser(r), id)
	if err != nil {
		fail(w, th.log, op, err)
		return
	}
	if err := th.apply(r, req, &task); err != nil {
		fail(w, th.log, op, err)
		return
	}

	if err := th.tasks.UpdateTask(r.Context(), &task); err != nil {
		fail(w, th.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// HandleDelete removes the task; the focus_plans foreign keys clear any slot
// that held it.
func (th *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Tasks.HandleDelete"

	id, err := pathID(r, "id")
	if err != nil {
		fail(w, th.log, op, err)
		return
	}
	if err := th.tasks.DeleteTask(r.Context(), currentUser(r), id); err != nil {
		fail(w, th.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type completionRequest struct {
	Completed *bool `json:"completed"`
}

// HandleCompletion sets the done state. Repeating the same value is a no-op,
// so completedAt keeps the time of the first completion.
func (th *TaskHandler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Tasks.HandleCompletion"
	userID := currentUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		fail(w, th.log, op, err)
		return
	}

	var req completionRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, th.log, op, err)
		return
	}
	if req.Completed == nil {
		fail(w, th.log, op, &usecases.ValidationError{Field: "completed", Message: "is required"})
		return
	}

	task, err := th.tasks.GetTask(r.Context(), userID, id)
	if err != nil {
		fail(w, th.log, op, err)
		return
	}

	if *req.Completed != task.Done() {
		if *req.Completed {
			now := th.now()
			task.Status = models.TaskStatusDone
			task.CompletedAt = &now
		} else {
			task.Status = models.TaskStatusTodo
			task.CompletedAt = nil
		}
		if err := th.tasks.UpdateTask(r.Context(), &task); err != nil {
			fail(w, th.log, op, err)
			return
		}
	}

	if task.Done() {
		if err := th.plans.unpin(r.Context(), userID, task.ID); err != nil {
			th.log.Warnw("failed to unpin completed task", "op", op, "task_id", task.ID, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, task)
}
