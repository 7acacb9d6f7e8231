package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"focus_forge/internal/models"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
)

// focusPlans edits today's Now slots. Every edit is a read, a pure slot
// transition and one upsert.
type focusPlans struct {
	store FocusStore
	tasks TaskStore
	now   func() time.Time
	loc   *time.Location
}

func (fp *focusPlans) today() time.Time {
	return usecases.Day(fp.now(), fp.loc)
}

func (fp *focusPlans) get(ctx context.Context, userID string) (models.FocusPlan, error) {
	return fp.store.GetFocusPlan(ctx, userID, fp.today())
}

func (fp *focusPlans) update(ctx context.Context, userID string, edit func(models.Slots) (models.Slots, error)) (models.FocusPlan, error) {
	plan, err := fp.get(ctx, userID)
	if err != nil {
		return models.FocusPlan{}, err
	}

	slots, err := edit(plan.Slots)
	if err != nil {
		return models.FocusPlan{}, err
	}

	plan.UserID = userID
	plan.PlanDate = fp.today()
	plan.Slots = slots
	if err := fp.store.SaveFocusPlan(ctx, &plan); err != nil {
		return models.FocusPlan{}, err
	}
	return plan, nil
}

// unpin drops taskID from today's slots if it is there.
func (fp *focusPlans) unpin(ctx context.Context, userID string, taskID int64) error {
	_, err := fp.update(ctx, userID, func(s models.Slots) (models.Slots, error) {
		return usecases.UnpinTask(s, taskID)
	})
	if errors.Is(err, usecases.ErrNotPinned) {
		return nil
	}
	return err
}

func (fp *focusPlans) view(ctx context.Context, userID string, plan models.FocusPlan) (models.NowView, error) {
	ids := make([]int64, 0, models.SlotCount)
	for _, id := range plan.Slots {
		if id != nil {
			ids = append(ids, *id)
		}
	}

	tasks, err := fp.tasks.GetTasks(ctx, userID, ids)
	if err != nil {
		return models.NowView{}, err
	}

	view := models.NowView{Date: fp.today().Format("2006-01-02")}
	for i, id := range plan.Slots {
		if id == nil {
			view.Free++
			continue
		}
		if t, ok := tasks[*id]; ok {
			view.Slots[i] = &t
		} else {
			view.Free++
		}
	}
	return view, nil
}

// pinnable loads a task that may go into a slot.
func (fp *focusPlans) pinnable(ctx context.Context, userID string, taskID int64) error {
	if taskID <= 0 {
		return &usecases.ValidationError{Field: "taskId", Message: "is required"}
	}
	task, err := fp.tasks.GetTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if task.Done() {
		return &usecases.ValidationError{Field: "taskId", Message: "task is already done"}
	}
	return nil
}

type NowHandler struct {
	plans *focusPlans
	log   *zap.SugaredLogger
}

func NewNowHandler(plans *focusPlans, log *zap.SugaredLogger) *NowHandler {
	return &NowHandler{plans: plans, log: log}
}

func (nh *NowHandler) respond(w http.ResponseWriter, r *http.Request, op string, plan models.FocusPlan) {
	view, err := nh.plans.view(r.Context(), currentUser(r), plan)
	if err != nil {
		fail(w, nh.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (nh *NowHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Now.HandleGet"

	plan, err := nh.plans.get(r.Context(), currentUser(r))
	if err != nil {
		fail(w, nh.log, op, err)
		return
	}
	nh.respond(w, r, op, plan)
}

type slotRequest struct {
	TaskID int64 `json:"taskId"`
	Slot   int   `json:"slot"`
}

func (nh *NowHandler) HandlePin(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Now.HandlePin"
	userID := currentUser(r)

	var req slotRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, nh.log, op, err)
		return
	}
	if err := nh.plans.pinnable(r.Context(), userID, req.TaskID); err != nil {
		fail(w, nh.log, op, err)
		return
	}

	plan, err := nh.plans.update(r.Context(), userID, func(s models.Slots) (models.Slots, error) {
		s, _, err := usecases.Pin(s, req.TaskID, req.Slot)
		return s, err
	})
	if err != nil {
		fail(w, nh.log, op, err)
		return
	}
	nh.respond(w, r, op, plan)
}

func (nh *NowHandler) HandleUnpin(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Now.HandleUnpin"

	var req slotRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, nh.log, op, err)
		return
	}

	var edit func(models.Slots) (models.Slots, error)
	switch {
	case req.Slot != 0:
		edit = func(s models.Slots) (models.Slots, error) { return usecases.UnpinSlot(s, req.Slot) }
	case req.TaskID != 0:
		edit = func(s models.Slots) (models.Slots, error) { return usecases.UnpinTask(s, req.TaskID) }
	default:
		fail(w, nh.log, op, &usecases.ValidationError{Message: "slot or taskId is required"})
		return
	}

	plan, err := nh.plans.update(r.Context(), currentUser(r), edit)
	if err != nil {
		fail(w, nh.log, op, err)
		return
	}
	nh.respond(w, r, op, plan)
}

func (nh *NowHandler) HandleSwap(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Now.HandleSwap"
	userID := currentUser(r)

	var req slotRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		fail(w, nh.log, op, err)
		return
	}
	if req.Slot == 0 {
		fail(w, nh.log, op, &usecases.ValidationError{Field: "slot", Message: "is required"})
		return
	}
	if err := nh.plans.pinnable(r.Context(), userID, req.TaskID); err != nil {
		fail(w, nh.log, op, err)
		return
	}

	plan, err := nh.plans.update(r.Context(), userID, func(s models.Slots) (models.Slots, error) {
		return usecases.Swap(s, req.Slot, req.TaskID)
	})
	if err != nil {
		fail(w, nh.log, op, err)
		return
	}
	nh.respond(w, r, op, plan)
}

func (nh *NowHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	op := "handlers.Now.HandleClear"

	plan, err := nh.plans.update(r.Context(), currentUser(r), func(models.Slots) (models.Slots, error) {
		return models.Slots{}, nil
	})
	if err != nil {
		fail(w, nh.log, op, fmt.Errorf("clear: %w", err))
		return
	}
	nh.respond(w, r, op, plan)
}
