package handlers

import (
	"net/http"
	"strings"
	"time"

	"focus_forge/internal/models"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
)

const maxDescription = 2000

type GoalHandler struct {
	goals GoalStore
	tasks TaskStore
	log   *zap.SugaredLogger
	loc   *time.Location
}

func NewGoalHandler(goals GoalStore, tasks TaskStore, log *zap.SugaredLogger, loc *time.Location) *GoalHandler {
	return &GoalHandler{goals: goals, tasks: tasks, log: log, loc: loc}
}

type goalRequest struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	TargetDate  *string `json:"targetDate"`
	Status      *string `json:"status"`
}

// apply copies the set fields onto goal. An empty targetDate clears it.
func (req goalRequest) apply(goal *models.Goal, loc *time.Location) error {
	if req.Title != nil {
		title, err := usecases.ValidateTitle("title", *req.Title)
		if err != nil {
			return err
		}
		goal.Title = title
	}
	if req.Category != nil {
		goal.Category = models.NormalizeCategory(*req.Category)
	}
	if req.Description != nil {
		d, err := usecases.ValidateText("description", *req.Description, maxDescription)
		if err != nil {
			return err
		}
		goal.Description = d
	}
	if req.TargetDate != nil {
		if strings.TrimSpace(*req.TargetDate) == "" {
			goal.TargetDate = nil
		} else {
			d, err := usecases.ParseDay("targetDate", *req.TargetDate, loc)
			if err != nil {
				return err
			}
			goal.TargetDate = &d
		}
	}
	if req.Status != nil {
		if err := usecases.ValidateGoalStatus(*req.Status); err != nil {
			return err
		}
		goal.Status = *req.Status
	}
	return nil
}

func (gh *GoalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Goals.HandleList"

	status := r.URL.Query().Get("status")
	if status != "" {
		if err := usecases.ValidateGoalStatus(status); err != nil {
			fail(w, gh.log, op, err)
			return
		}
	}

	goals, err := gh.goals.ListGoals(r.Context(), currentUser(r), status)
	if err != nil {
		fail(w, gh.log, op, err)
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (gh *GoalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Goals.HandleCreate"

	var req goalRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, gh.log, op, err)
		return
	}
	if req.Title == nil {
		fail(w, gh.log, op, &usecases.ValidationError{Field: "title", Message: "is required"})
		return
	}

	goal := models.Goal{
		UserID:   currentUser(r),
		Category: models.CategoryPersonal,
		Status:   models.GoalStatusActive,
	}
	if err := req.apply(&goal, gh.loc); err != nil {
		fail(w, gh.log, op, err)
		return
	}

	if err := gh.goals.CreateGoal(r.Context(), &goal); err != nil {
		fail(w, gh.log, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (gh *GoalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Goals.HandleUpdate"
	userID := currentUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		fail(w, gh.log, op, err)
		return
	}

	var req goalRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, gh.log, op, err)
		return
	}

	goal, err := gh.goals.GetGoal(r.Context(), userID, id)
	if err != nil {
		fail(w, gh.log, op, err)
		return
	}
	if err := req.apply(&goal, gh.loc); err != nil {
		fail(w, gh.log, op, err)
		return
	}

	if err := gh.goals.UpdateGoal(r.Context(), &goal); err != nil {
		fail(w, gh.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (gh *GoalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Goals.HandleDelete"

	id, err := pathID(r, "id")
	if err != nil {
		fail(w, gh.log, op, err)
		return
	}
	if err := gh.goals.DeleteGoal(r.Context(), currentUser(r), id); err != nil {
		fail(w, gh.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (gh *GoalHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Goals.HandleProgress"
	userID := currentUser(r)

	id, err := pathID(r, "id")
	if err != nil {
		fail(w, gh.log, op, err)
		return
	}
	if _, err := gh.goals.GetGoal(r.Context(), userID, id); err != nil {
		fail(w, gh.log, op, err)
		return
	}

	tasks, err := gh.tasks.ListTasks(r.Context(), userID, models.TaskFilter{GoalID: &id})
	if err != nil {
		fail(w, gh.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, usecases.GoalProgress(id, tasks))
}
