package repository

import (
	"context"

	"github.com/fastygo/taskdesk/domain"
)

type TaskFilter struct {
	AccountID      int64
	SortByDeadline bool
}

type TaskRepository interface {
	GetByID(ctx context.Context, accountID, id int64) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, accountID, id int64) error
	// DeleteByTitle removes every task with the title, whoever owns it.
	DeleteByTitle(ctx context.Context, title string) (int64, error)
}
