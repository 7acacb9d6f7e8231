package handlers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"focus_forge/internal/models"
	"focus_forge/internal/storage"
)

// memStore is an in-memory stand-in for every Postgres storage.
type memStore struct {
	mu sync.Mutex

	nextID      int64
	moods       []models.MoodEntry
	tasks       map[int64]models.Task
	goals       map[int64]models.Goal
	plans       map[string]models.FocusPlan
	items       map[int64]models.InboxItem
	outcomes    map[int64]models.Outcome
	commitments map[int64]models.Commitment
	stats       map[string]models.UserStats

	pingErr error
	now     func() time.Time
}

func newMemStore() *memStore {
	return &memStore{
		tasks:       map[int64]models.Task{},
		goals:       map[int64]models.Goal{},
		plans:       map[string]models.FocusPlan{},
		items:       map[int64]models.InboxItem{},
		outcomes:    map[int64]models.Outcome{},
		commitments: map[int64]models.Commitment{},
		stats:       map[string]models.UserStats{},
		now:         time.Now,
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

func (m *memStore) CreateMood(_ context.Context, entry *models.MoodEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = m.id()
	m.moods = append(m.moods, *entry)
	return nil
}

func (m *memStore) RecentMoods(_ context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.MoodEntry
	for i := len(m.moods) - 1; i >= 0 && len(out) < limit; i-- {
		if m.moods[i].UserID == userID {
			out = append(out, m.moods[i])
		}
	}
	return out, nil
}

func (m *memStore) MoodsSince(_ context.Context, userID string, since time.Time) ([]models.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.MoodEntry
	for _, e := range m.moods {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) CreateTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = m.id()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = m.now()
	}
	task.UpdatedAt = task.CreatedAt
	m.tasks[task.ID] = *task
	return nil
}

func (m *memStore) GetTask(_ context.Context, userID string, id int64) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return models.Task{}, notFound("GetTask")
	}
	return t, nil
}

func (m *memStore) GetTasks(_ context.Context, userID string, ids []int64) (map[int64]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[int64]models.Task{}
	for _, id := range ids {
		if t, ok := m.tasks[id]; ok && t.UserID == userID {
			out[id] = t
		}
	}
	return out, nil
}

func (m *memStore) ListTasks(_ context.Context, userID string, f models.TaskFilter) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Task{}
	for _, t := range m.tasks {
		switch {
		case t.UserID != userID,
			f.Status != "" && t.Status != f.Status,
			f.Category != "" && t.Category != f.Category,
			f.GoalID != nil && (t.GoalID == nil || *t.GoalID != *f.GoalID),
			!f.From.IsZero() && t.ActivityAt().Before(f.From),
			!f.To.IsZero() && !t.ActivityAt().Before(f.To):
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.tasks[task.ID]
	if !ok || old.UserID != task.UserID {
		return notFound("UpdateTask")
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *memStore) DeleteTask(_ context.Context, userID string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return notFound("DeleteTask")
	}
	delete(m.tasks, id)
	return nil
}

func (m *memStore) CreateGoal(_ context.Context, goal *models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	goal.ID = m.id()
	m.goals[goal.ID] = *goal
	return nil
}

func (m *memStore) GetGoal(_ context.Context, userID string, id int64) (models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return models.Goal{}, notFound("GetGoal")
	}
	return g, nil
}

func (m *memStore) ListGoals(_ context.Context, userID, status string) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Goal{}
	for _, g := range m.goals {
		if g.UserID == userID && (status == "" || g.Status == status) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateGoal(_ context.Context, goal *models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[goal.ID]; !ok {
		return notFound("UpdateGoal")
	}
	m.goals[goal.ID] = *goal
	return nil
}

func (m *memStore) DeleteGoal(_ context.Context, userID string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return notFound("DeleteGoal")
	}
	delete(m.goals, id)
	return nil
}

func planKey(userID string, day time.Time) string {
	return userID + "/" + day.Format("2006-01-02")
}

func (m *memStore) GetFocusPlan(_ context.Context, userID string, day time.Time) (models.FocusPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.plans[planKey(userID, day)]; ok {
		return p, nil
	}
	return models.FocusPlan{UserID: userID, PlanDate: day}, nil
}

func (m *memStore) SaveFocusPlan(_ context.Context, plan *models.FocusPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[planKey(plan.UserID, plan.PlanDate)] = *plan
	return nil
}

func (m *memStore) CreateItem(_ context.Context, item *models.InboxItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.id()
	m.items[item.ID] = *item
	return nil
}

func (m *memStore) GetItem(_ context.Context, userID string, id int64) (models.InboxItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok || it.UserID != userID {
		return models.InboxItem{}, notFound("GetItem")
	}
	return it, nil
}

func (m *memStore) ListItems(_ context.Context, userID, status string) ([]models.InboxItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.InboxItem{}
	for _, it := range m.items {
		if it.UserID == userID && (status == "" || it.Status == status) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) MarkTriaged(_ context.Context, item *models.InboxItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.items[item.ID]
	if !ok || old.UserID != item.UserID || old.Status != models.InboxStatusCaptured {
		return notFound("MarkTriaged")
	}
	now := m.now()
	item.Status = models.InboxStatusTriaged
	item.TriagedAt = &now
	m.items[item.ID] = *item
	return nil
}

func (m *memStore) CreateOutcome(_ context.Context, o *models.Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.id()
	m.outcomes[o.ID] = *o
	return nil
}

func (m *memStore) ListOutcomes(_ context.Context, userID string, weekStart time.Time) ([]models.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Outcome
	for _, o := range m.outcomes {
		if o.UserID == userID && o.WeekStart.Equal(weekStart) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) SetOutcomeAchieved(_ context.Context, userID string, id int64, achieved bool) (models.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.outcomes[id]
	if !ok || o.UserID != userID {
		return models.Outcome{}, notFound("SetOutcomeAchieved")
	}
	o.Achieved = achieved
	m.outcomes[id] = o
	return o, nil
}

func (m *memStore) CreateCommitment(_ context.Context, c *models.Commitment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	m.commitments[c.ID] = *c
	return nil
}

func (m *memStore) ListCommitments(_ context.Context, userID string, weekStart time.Time) ([]models.Commitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Commitment
	for _, c := range m.commitments {
		if c.UserID == userID && c.WeekStart.Equal(weekStart) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) SetCommitmentDone(_ context.Context, userID string, id int64, done bool) (models.Commitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.commitments[id]
	if !ok || c.UserID != userID {
		return models.Commitment{}, notFound("SetCommitmentDone")
	}
	c.Done = done
	m.commitments[id] = c
	return c, nil
}

func (m *memStore) GetStats(_ context.Context, userID string) (models.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[userID]
	if !ok {
		return models.UserStats{UserID: userID}, nil
	}
	return s, nil
}

func (m *memStore) SaveStats(_ context.Context, stats *models.UserStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[stats.UserID] = *stats
	return nil
}

func (m *memStore) Ping(context.Context) error {
	return m.pingErr
}

type fakeAI struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeAI) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type fakeCalendar struct {
	mu        sync.Mutex
	connected bool
	events    []models.CalendarEvent
	exchanged map[string]string
}

func (f *fakeCalendar) AuthURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeCalendar) Exchange(_ context.Context, userID, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.exchanged == nil {
		f.exchanged = map[string]string{}
	}
	f.exchanged[userID] = code
	return nil
}

func (f *fakeCalendar) CreateEvent(_ context.Context, _ string, event models.CalendarEvent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return "", storage.ErrCalendarNotConnected
	}
	f.events = append(f.events, event)
	return fmt.Sprintf("evt-%d", len(f.events)), nil
}
