package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/taskdeck/internal/api"
	"github.com/driftware/taskdeck/internal/model"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type fakeRemote struct {
	mu         sync.Mutex
	tasks      []model.Task
	categories []model.Category

	toggleErr   error
	toggleCalls int
	toggleGate  chan struct{} // when set, ToggleTask blocks until closed

	deleteErr   error
	deletedIDs  []int64
	createdCats []string
}

func (f *fakeRemote) ListTasks(_ context.Context, _ api.TaskFilter) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeRemote) ListCategories(_ context.Context) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeRemote) CreateTask(_ context.Context, payload model.TaskPayload) (model.Task, error) {
	return model.Task{ID: 99, Title: payload.Title, Priority: payload.Priority}, nil
}

func (f *fakeRemote) UpdateTask(_ context.Context, id int64, payload model.TaskPayload) (model.Task, error) {
	return model.Task{ID: id, Title: payload.Title, Priority: payload.Priority}, nil
}

func (f *fakeRemote) DeleteTask(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeRemote) ToggleTask(_ context.Context, id int64) (model.Task, error) {
	if f.toggleGate != nil {
		<-f.toggleGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggleCalls++
	if f.toggleErr != nil {
		return model.Task{}, f.toggleErr
	}
	return model.Task{ID: id, Completed: true}, nil
}

func (f *fakeRemote) CreateCategory(_ context.Context, name string) (model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdCats = append(f.createdCats, name)
	return model.Category{ID: int64(len(f.createdCats)), Name: name}, nil
}

func (f *fakeRemote) DeleteCategory(_ context.Context, _ int64) error {
	return nil
}

func loadedStore(t *testing.T, remote *fakeRemote) *Store {
	t.Helper()
	s := New(remote)
	require.NoError(t, s.Reload(context.Background()))
	return s
}

func TestToggleOptimisticAndRollback(t *testing.T) {
	remote := &fakeRemote{
		tasks:     []model.Task{{ID: 1, Title: "Write report", Completed: false}},
		toggleErr: errors.New("server unavailable"),
	}
	s := loadedStore(t, remote)

	s.Toggle(context.Background(), 1)

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completed, "failed toggle must restore the pre-toggle value")
}

func TestToggleSuccessKeepsFlip(t *testing.T) {
	remote := &fakeRemote{
		tasks: []model.Task{{ID: 1, Title: "Write report", Completed: false}},
	}
	s := loadedStore(t, remote)

	s.Toggle(context.Background(), 1)

	assert.True(t, s.Tasks()[0].Completed)
	assert.Equal(t, 1, remote.toggleCalls)
}

func TestToggleOverlappingSameTaskDropped(t *testing.T) {
	gate := make(chan struct{})
	remote := &fakeRemote{
		tasks:      []model.Task{{ID: 1, Completed: false}},
		toggleGate: gate,
	}
	s := loadedStore(t, remote)

	done := make(chan struct{})
	go func() {
		s.Toggle(context.Background(), 1)
		close(done)
	}()

	// wait for the first toggle to mark itself in flight
	require.Eventually(t, func() bool {
		return s.Tasks()[0].Completed
	}, timeout, tick)

	s.Toggle(context.Background(), 1) // dropped, first still in flight

	close(gate)
	<-done

	assert.Equal(t, 1, remote.toggleCalls, "second toggle for the same task must be dropped")
	assert.True(t, s.Tasks()[0].Completed)
}

func TestToggleUnknownTaskIsNoop(t *testing.T) {
	remote := &fakeRemote{tasks: []model.Task{{ID: 1}}}
	s := loadedStore(t, remote)

	s.Toggle(context.Background(), 42)

	assert.Zero(t, remote.toggleCalls)
}

func TestSaveRejectsEmptyTitle(t *testing.T) {
	remote := &fakeRemote{}
	s := loadedStore(t, remote)

	_, err := s.Save(context.Background(), model.TaskPayload{Title: "   "}, nil)
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestSaveCreateDefaultsPriority(t *testing.T) {
	remote := &fakeRemote{}
	s := loadedStore(t, remote)

	created, err := s.Save(context.Background(), model.TaskPayload{Title: "New task"}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, created.Priority)
}

func TestSaveUpdateUsesEditingID(t *testing.T) {
	remote := &fakeRemote{}
	s := loadedStore(t, remote)

	id := int64(7)
	updated, err := s.Save(context.Background(), model.TaskPayload{Title: "Renamed"}, &id)
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
}

func TestStagedDeleteFlow(t *testing.T) {
	remote := &fakeRemote{tasks: []model.Task{{ID: 5, Title: "Doomed"}}}
	s := loadedStore(t, remote)

	// confirm without staging
	assert.ErrorIs(t, s.ConfirmDelete(context.Background()), ErrNoPendingDelete)

	s.StageDelete(s.Tasks()[0])
	require.NotNil(t, s.PendingDelete())
	assert.Empty(t, remote.deletedIDs, "staging must not delete anything")

	s.CancelDelete()
	assert.Nil(t, s.PendingDelete())
	assert.Empty(t, remote.deletedIDs)

	s.StageDelete(s.Tasks()[0])
	require.NoError(t, s.ConfirmDelete(context.Background()))
	assert.Equal(t, []int64{5}, remote.deletedIDs)
	assert.Nil(t, s.PendingDelete())
}

func TestConfirmDeleteClearsStageOnFailure(t *testing.T) {
	remote := &fakeRemote{
		tasks:     []model.Task{{ID: 5}},
		deleteErr: errors.New("forbidden"),
	}
	s := loadedStore(t, remote)

	s.StageDelete(s.Tasks()[0])
	require.Error(t, s.ConfirmDelete(context.Background()))
	assert.Nil(t, s.PendingDelete(), "stage clears even when the delete fails")
}

func TestCreateCategoryDuplicateCheck(t *testing.T) {
	remote := &fakeRemote{categories: []model.Category{{ID: 1, Name: "Work"}}}
	s := loadedStore(t, remote)

	_, err := s.CreateCategory(context.Background(), "  work ")
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	_, err = s.CreateCategory(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyCategoryName)

	created, err := s.CreateCategory(context.Background(), "Home")
	require.NoError(t, err)
	assert.Equal(t, "Home", created.Name)
	assert.Len(t, s.Categories(), 2)
}

func TestDeleteCategoryResetsFilter(t *testing.T) {
	remote := &fakeRemote{categories: []model.Category{{ID: 3, Name: "Work"}}}
	s := loadedStore(t, remote)

	filter := s.Filter()
	filter.Category = "3"
	s.SetFilter(filter)

	require.NoError(t, s.DeleteCategory(context.Background(), 3))
	assert.Equal(t, "all", s.Filter().Category)
	assert.Empty(t, s.Categories())
}
