package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fastygo/taskdesk/domain"
	"github.com/fastygo/taskdesk/repository"
)

type taskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository returns a SQL-backed implementation of TaskRepository.
func NewTaskRepository(db *sqlx.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

type taskRow struct {
	ID          int64         `db:"id"`
	AccountID   sql.NullInt64 `db:"user_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Deadline    dateColumn    `db:"deadline"`
}

func (row taskRow) toDomain() domain.Task {
	return domain.Task{
		ID:          row.ID,
		AccountID:   row.AccountID.Int64,
		Title:       row.Title,
		Description: row.Description,
		Deadline:    row.Deadline.Time,
	}
}

const taskColumns = `id, user_id, title, COALESCE(description, '') AS description, deadline`

func (r *taskRepository) GetByID(ctx context.Context, accountID, id int64) (*domain.Task, error) {
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM todos WHERE id = ? AND user_id = ?`)

	var row taskRow
	if err := r.db.GetContext(ctx, &row, query, id, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	task := row.toDomain()
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	order := `id ASC`
	if filter.SortByDeadline {
		order = `deadline ASC, id ASC`
	}
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM todos WHERE user_id = ? ORDER BY ` + order)

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, filter.AccountID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	return tasks, nil
}

func (r *taskRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM todos WHERE title = ?)`)

	var exists bool
	if err := r.db.QueryRowxContext(ctx, query, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	return exists, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	query := r.db.Rebind(`
	INSERT INTO todos (user_id, title, description, deadline)
	VALUES (?, ?, ?, ?)
	RETURNING id
	`)

	if err := r.db.QueryRowxContext(ctx, query,
		task.AccountID,
		task.Title,
		task.Description,
		dateArg(task.Deadline),
	).Scan(&task.ID); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, accountID, id int64) error {
	query := r.db.Rebind(`DELETE FROM todos WHERE id = ? AND user_id = ?`)

	res, err := r.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	query := r.db.Rebind(`DELETE FROM todos WHERE title = ?`)

	res, err := r.db.ExecContext(ctx, query, title)
	if err != nil {
		return 0, fmt.Errorf("delete tasks by title: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
