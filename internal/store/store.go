package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/driftware/taskdeck/internal/api"
	"github.com/driftware/taskdeck/internal/logger"
	"github.com/driftware/taskdeck/internal/model"
)

// Validation errors surfaced before any remote call is made
var (
	ErrEmptyTitle        = errors.New("title must not be empty")
	ErrEmptyCategoryName = errors.New("category name must not be empty")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrNoPendingDelete   = errors.New("no delete staged")
)

// Remote is the slice of the task service the store needs. *api.Client
// satisfies it; tests inject a failing fake.
type Remote interface {
	ListTasks(ctx context.Context, filter api.TaskFilter) ([]model.Task, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateTask(ctx context.Context, payload model.TaskPayload) (model.Task, error)
	UpdateTask(ctx context.Context, id int64, payload model.TaskPayload) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ToggleTask(ctx context.Context, id int64) (model.Task, error)
	CreateCategory(ctx context.Context, name string) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// Store holds the in-memory task snapshot and runs all mutations
// against it. The snapshot is replaced wholesale on every reload; the
// only in-place writes are the optimistic toggle and its rollback, each
// scoped to a single task id. Last write wins at the snapshot level.
type Store struct {
	remote Remote

	mu         sync.Mutex
	tasks      []model.Task
	categories []model.Category
	filter     api.TaskFilter
	loading    bool
	generation uint64

	// One marker per task id keeps overlapping toggles on the same
	// task from clobbering each other's rollback value.
	inflight map[int64]struct{}

	pendingDelete *model.Task
}

// New creates a store backed by the given remote
func New(remote Remote) *Store {
	return &Store{
		remote:   remote,
		filter:   api.TaskFilter{Status: "all", Priority: "all", Category: "all"},
		inflight: make(map[int64]struct{}),
	}
}

// Tasks returns a copy of the current snapshot
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Categories returns a copy of the known categories
func (s *Store) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Filter returns the current server-side filter parameters
func (s *Store) Filter() api.TaskFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter replaces the server-side filter. Takes effect on the next
// Reload.
func (s *Store) SetFilter(filter api.TaskFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

// Loading reports whether a reload is in progress
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Reload fetches tasks and categories and replaces the snapshot
// wholesale. The loading flag clears on every exit path. A reload that
// was overtaken by a newer one discards its result instead of clobbering
// the fresher snapshot.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.generation++
	gen := s.generation
	filter := s.filter
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if gen == s.generation {
			s.loading = false
		}
		s.mu.Unlock()
	}()

	tasks, err := s.remote.ListTasks(ctx, filter)
	if err != nil {
		return err
	}

	categories, err := s.remote.ListCategories(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		logger.Debug("Stale reload discarded", logger.F("generation", gen))
		return nil
	}
	s.tasks = tasks
	s.categories = categories
	logger.Debug("Snapshot reloaded",
		logger.F("tasks", len(tasks)),
		logger.F("categories", len(categories)))
	return nil
}

// Toggle flips a task's completed flag optimistically: the local
// snapshot changes before the remote call goes out, and a remote
// failure restores the value captured beforehand (not a re-flip, which
// would race with a later toggle). Failures are logged, never returned:
// toggling is low-stakes and the rollback already corrects the state.
// A toggle for a task that already has one in flight is dropped.
func (s *Store) Toggle(ctx context.Context, id int64) {
	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		logger.Debug("Toggle dropped, mutation in flight", logger.F("task", id))
		return
	}
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	wasCompleted := s.tasks[idx].Completed
	s.tasks[idx].Completed = !wasCompleted
	s.inflight[id] = struct{}{}
	s.mu.Unlock()

	op := uuid.New().String()[:8]
	logger.Debug("Toggle issued",
		logger.F("op", op),
		logger.F("task", id),
		logger.F("wasCompleted", wasCompleted))

	_, err := s.remote.ToggleTask(ctx, id)

	s.mu.Lock()
	delete(s.inflight, id)
	if err != nil {
		if idx := s.indexOfLocked(id); idx >= 0 {
			s.tasks[idx].Completed = wasCompleted
		}
	}
	s.mu.Unlock()

	if err != nil {
		logger.Warn("Toggle failed, rolled back",
			logger.F("op", op),
			logger.F("task", id),
			logger.F("error", err))
	}
}

// indexOfLocked finds a task by id. Caller must hold s.mu.
func (s *Store) indexOfLocked(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Save creates a task (editingID nil) or fully updates one. Not
// optimistic: the caller blocks until the remote call resolves and
// reloads the snapshot on success; errors propagate for user-visible
// reporting. The title is validated before anything goes on the wire.
func (s *Store) Save(ctx context.Context, payload model.TaskPayload, editingID *int64) (model.Task, error) {
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	if payload.Priority == "" {
		payload.Priority = model.PriorityMedium
	}
	if payload.Tags == nil {
		payload.Tags = []string{}
	}

	if editingID == nil {
		return s.remote.CreateTask(ctx, payload)
	}
	return s.remote.UpdateTask(ctx, *editingID, payload)
}

// StageDelete marks a task for deletion pending explicit confirmation.
// Delete never fires straight from a list action.
func (s *Store) StageDelete(t model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = &t
}

// PendingDelete returns the staged task, if any
func (s *Store) PendingDelete() *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingDelete == nil {
		return nil
	}
	t := *s.pendingDelete
	return &t
}

// CancelDelete clears the staged deletion
func (s *Store) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = nil
}

// ConfirmDelete deletes the staged task. The stage is cleared whether
// the remote call succeeds or not; the error is returned for surfacing.
func (s *Store) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pendingDelete
	s.pendingDelete = nil
	s.mu.Unlock()

	if pending == nil {
		return ErrNoPendingDelete
	}

	if err := s.remote.DeleteTask(ctx, pending.ID); err != nil {
		logger.Warn("Delete failed", logger.F("task", pending.ID), logger.F("error", err))
		return err
	}
	return nil
}

// CreateCategory creates a category after a local case-insensitive
// duplicate check for immediate feedback. The server stays the
// authority: two clients racing on the same name is possible, and the
// second one's server error is surfaced as-is.
func (s *Store) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, ErrEmptyCategoryName
	}

	s.mu.Lock()
	for _, c := range s.categories {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			s.mu.Unlock()
			return model.Category{}, ErrDuplicateCategory
		}
	}
	s.mu.Unlock()

	created, err := s.remote.CreateCategory(ctx, name)
	if err != nil {
		return model.Category{}, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, created)
	s.mu.Unlock()
	return created, nil
}

// DeleteCategory removes a category. If the current filter pointed at
// it, the filter falls back to all categories.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.remote.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	if s.filter.Category == strconv.FormatInt(id, 10) {
		s.filter.Category = "all"
	}
	return nil
}
