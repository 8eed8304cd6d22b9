package task

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/fastygo/taskdesk/domain"
	"github.com/fastygo/taskdesk/repository"
)

type fakeTasks struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]domain.Task
	writes int

	failList   error
	failDelete error
	failCreate error
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{nextID: 1, tasks: make(map[int64]domain.Task)}
}

func (f *fakeTasks) GetByID(_ context.Context, accountID, id int64) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.AccountID != accountID {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (f *fakeTasks) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failList != nil {
		return nil, f.failList
	}

	out := make([]domain.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if t.AccountID == filter.AccountID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortByDeadline {
			di, dj := out[i].DeadlineString(), out[j].DeadlineString()
			if di != dj {
				return di < dj
			}
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeTasks) TitleExists(_ context.Context, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tasks {
		if t.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTasks) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.writes++
	task.ID = f.nextID
	f.nextID++
	f.tasks[task.ID] = *task
	return task, nil
}

func (f *fakeTasks) Delete(_ context.Context, accountID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDelete != nil {
		return f.failDelete
	}
	t, ok := f.tasks[id]
	if !ok || t.AccountID != accountID {
		return domain.ErrTaskNotFound
	}
	f.writes++
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasks) DeleteByTitle(_ context.Context, title string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDelete != nil {
		return 0, f.failDelete
	}
	var removed int64
	for id, t := range f.tasks {
		if t.Title == title {
			delete(f.tasks, id)
			removed++
		}
	}
	f.writes++
	return removed, nil
}

var errStorage = errors.New("disk I/O error")
