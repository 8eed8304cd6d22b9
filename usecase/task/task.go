package task

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/taskdesk/domain"
	appLogger "github.com/fastygo/taskdesk/pkg/logger"
	"github.com/fastygo/taskdesk/repository"
)

// NewTask is the raw form input for Add.
type NewTask struct {
	Title       string
	Description string
	Deadline    string
}

type Options struct {
	// DeleteByTitle removes every task sharing a selected row's title, across
	// all accounts, instead of the selected task only.
	DeleteByTitle bool
}

type UseCase struct {
	tasks  repository.TaskRepository
	opts   Options
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, opts Options, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		opts:   opts,
		logger: logger,
	}
}

func (uc *UseCase) List(ctx context.Context, sess *domain.Session) ([]domain.Task, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	return uc.tasks.List(ctx, repository.TaskFilter{
		AccountID:      sess.AccountID,
		SortByDeadline: sess.SortByDeadline,
	})
}

// ToggleSort flips the session's deadline ordering and returns the re-queried list.
func (uc *UseCase) ToggleSort(ctx context.Context, sess *domain.Session) ([]domain.Task, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	sorted := sess.ToggleSort()
	appLogger.WithSession(ctx, uc.logger).Debug("sort toggled", zap.Bool("by_deadline", sorted))
	return uc.List(ctx, sess)
}

func (uc *UseCase) Get(ctx context.Context, sess *domain.Session, id int64) (*domain.Task, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	return uc.tasks.GetByID(ctx, sess.AccountID, id)
}

// Add validates and stores a task for the session's account. Titles are unique
// across every account, not just the caller's.
func (uc *UseCase) Add(ctx context.Context, sess *domain.Session, in NewTask) (*domain.Task, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	if in.Title == "" {
		return nil, domain.ErrTaskFieldsRequired
	}
	deadline, err := domain.ParseDeadline(in.Deadline)
	if err != nil {
		return nil, err
	}

	exists, err := uc.tasks.TitleExists(ctx, in.Title)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "could not add task", err)
	}
	if exists {
		return nil, domain.ErrDuplicateTitle
	}

	created, err := uc.tasks.Create(ctx, &domain.Task{
		AccountID:   sess.AccountID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    deadline,
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "could not add task", err)
	}

	appLogger.WithSession(ctx, uc.logger).Info("task added",
		zap.Int64("task_id", created.ID),
		zap.String("deadline", created.DeadlineString()))
	return created, nil
}

// Delete removes the selected tasks. Each deletion commits on its own; the
// first storage failure stops the loop and is returned.
func (uc *UseCase) Delete(ctx context.Context, sess *domain.Session, selected []domain.Task) error {
	if !sess.IsAuthenticated() {
		return domain.ErrUnauthorized
	}

	log := appLogger.WithSession(ctx, uc.logger)
	for _, t := range selected {
		if uc.opts.DeleteByTitle {
			removed, err := uc.tasks.DeleteByTitle(ctx, t.Title)
			if err != nil {
				return err
			}
			log.Info("tasks deleted by title", zap.Int64("rows", removed))
			continue
		}

		if err := uc.tasks.Delete(ctx, sess.AccountID, t.ID); err != nil {
			// already gone: nothing left to remove
			if errors.Is(err, domain.ErrTaskNotFound) {
				continue
			}
			return err
		}
		log.Info("task deleted", zap.Int64("task_id", t.ID))
	}
	return nil
}
