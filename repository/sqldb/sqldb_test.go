package sqldb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fastygo/taskdesk/domain"
	"github.com/fastygo/taskdesk/internal/config"
	"github.com/fastygo/taskdesk/internal/infrastructure/database"
	"github.com/fastygo/taskdesk/repository"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "todo.db"),
			Name:   "taskdesk",
		},
		Migrations: config.MigrationsConfig{Enabled: true},
	}
	if err := database.RunMigrations(cfg, nil); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	db, err := database.Open(context.Background(), cfg.Database, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustCreateAccount(t *testing.T, repo repository.AccountRepository, username string) *domain.Account {
	t.Helper()

	account, err := repo.Create(context.Background(), username, "pw-"+username)
	if err != nil {
		t.Fatalf("failed to prepare account %q: %v", username, err)
	}
	return account
}

func mustCreateTask(t *testing.T, repo repository.TaskRepository, accountID int64, title, deadline string) *domain.Task {
	t.Helper()

	due, err := time.Parse(domain.DateLayout, deadline)
	if err != nil {
		t.Fatalf("bad deadline %q: %v", deadline, err)
	}
	task, err := repo.Create(context.Background(), &domain.Task{
		AccountID:   accountID,
		Title:       title,
		Description: "about " + title,
		Deadline:    due,
	})
	if err != nil {
		t.Fatalf("failed to prepare task %q: %v", title, err)
	}
	return task
}

func titles(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func TestAccountRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)

	created := mustCreateAccount(t, repo, "alice")
	if created.ID <= 0 {
		t.Fatalf("expected assigned id, got %d", created.ID)
	}

	loaded, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if loaded.ID != created.ID || loaded.Password != "pw-alice" {
		t.Fatalf("loaded account mismatch: %+v", loaded)
	}
}

func TestAccountRepository_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)

	mustCreateAccount(t, repo, "alice")

	_, err := repo.Create(context.Background(), "alice", "other")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	loaded, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if loaded.Password != "pw-alice" {
		t.Fatalf("original password changed to %q", loaded.Password)
	}
}

func TestAccountRepository_LookupIsLiteral(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)

	mustCreateAccount(t, repo, "alice")

	for _, name := range []string{"Alice", "alice ", " alice"} {
		if _, err := repo.GetByUsername(context.Background(), name); !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("lookup %q: expected ErrAccountNotFound, got %v", name, err)
		}
	}
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	tasks := NewTaskRepository(db)

	alice := mustCreateAccount(t, accounts, "alice")
	created := mustCreateTask(t, tasks, alice.ID, "Buy milk", "2024-01-01")

	loaded, err := tasks.GetByID(context.Background(), alice.ID, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.Title != "Buy milk" || loaded.Description != "about Buy milk" {
		t.Fatalf("loaded task mismatch: %+v", loaded)
	}
	if loaded.DeadlineString() != "2024-01-01" {
		t.Fatalf("expected deadline 2024-01-01, got %q", loaded.DeadlineString())
	}
	if loaded.AccountID != alice.ID {
		t.Fatalf("expected owner %d, got %d", alice.ID, loaded.AccountID)
	}
}

func TestTaskRepository_GetByIDScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	tasks := NewTaskRepository(db)

	alice := mustCreateAccount(t, accounts, "alice")
	bob := mustCreateAccount(t, accounts, "bob")
	task := mustCreateTask(t, tasks, alice.ID, "Buy milk", "2024-01-01")

	if _, err := tasks.GetByID(context.Background(), bob.ID, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_ListOrdering(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	tasks := NewTaskRepository(db)

	alice := mustCreateAccount(t, accounts, "alice")
	mustCreateTask(t, tasks, alice.ID, "Buy milk", "2024-01-01")
	mustCreateTask(t, tasks, alice.ID, "Pay rent", "2023-12-01")
	mustCreateTask(t, tasks, alice.ID, "File taxes", "2024-04-15")

	inserted, err := tasks.List(context.Background(), repository.TaskFilter{AccountID: alice.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := titles(inserted); got[0] != "Buy milk" || got[1] != "Pay rent" || got[2] != "File taxes" {
		t.Fatalf("expected insertion order, got %v", got)
	}

	sorted, err := tasks.List(context.Background(), repository.TaskFilter{AccountID: alice.ID, SortByDeadline: true})
	if err != nil {
		t.Fatalf("List sorted: %v", err)
	}
	if got := titles(sorted); got[0] != "Pay rent" || got[1] != "Buy milk" || got[2] != "File taxes" {
		t.Fatalf("expected deadline order, got %v", got)
	}
}

func TestTaskRepository_ListScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	tasks := NewTaskRepository(db)

	alice := mustCreateAccount(t, accounts, "alice")
	bob := mustCreateAccount(t, accounts, "bob")
	mustCreateTask(t, tasks, alice.ID, "Buy milk", "2024-01-01")
	mustCreateTask(t, tasks, bob.ID, "Walk dog", "2024-01-02")

	list, err := tasks.List(context.Background(), repository.TaskFilter{AccountID: alice.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Buy milk" {
		t.Fatalf("expected only alice's task, got %v", titles(list))
	}
	for _, task := range list {
		if task.AccountID != alice.ID {
			t.Fatalf("listed task owned by %d", task.AccountID)
		}
	}
}

func TestTaskRepository_TitleExistsAcrossAccounts(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	tasks := NewTaskRepository(db)

	alice := mustCreateAccount(t, accounts, "alice")
	mustCreateTask(t, tasks, alice.ID, "Buy milk", "2024-01-01")

	exists, err := tasks.TitleExists(context.Background(), "Buy milk")
	if err != nil {
		t.Fatalf("TitleExists: %v", err)
	}
	if !exists {
		t.Fatalf("expected title to exist")
	}

	exists, err = tasks.TitleExists(context.Background(), "buy milk")
	if err != nil {
		t.Fatalf("TitleExists: %v", err)
	}
	if exists {
		t.Fatalf("expected case-sensitive title match")
	}
}

func TestTaskRepository_DeleteByID(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	tasks := NewTaskRepository(db)

	alice := mustCreateAccount(t, accounts, "alice")
	bob := mustCreateAccount(t, accounts, "bob")
	task := mustCreateTask(t, tasks, alice.ID, "Buy milk", "2024-01-01")

	if err := tasks.Delete(context.Background(), bob.ID, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound deleting another owner's task, got %v", err)
	}
	if err := tasks.Delete(context.Background(), alice.ID, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := tasks.GetByID(context.Background(), alice.ID, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected task gone, got %v", err)
	}
}

func TestTaskRepository_DeleteByTitleCrossesAccounts(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountRepository(db)
	tasks := NewTaskRepository(db)

	alice := mustCreateAccount(t, accounts, "alice")
	bob := mustCreateAccount(t, accounts, "bob")
	// the add path forbids this; older databases can still contain it
	mustCreateTask(t, tasks, alice.ID, "Shared", "2024-01-01")
	mustCreateTask(t, tasks, bob.ID, "Shared", "2024-02-01")
	mustCreateTask(t, tasks, bob.ID, "Keep me", "2024-03-01")

	affected, err := tasks.DeleteByTitle(context.Background(), "Shared")
	if err != nil {
		t.Fatalf("DeleteByTitle: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 rows removed, got %d", affected)
	}

	left, err := tasks.List(context.Background(), repository.TaskFilter{AccountID: bob.ID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(left) != 1 || left[0].Title != "Keep me" {
		t.Fatalf("expected only bob's other task left, got %v", titles(left))
	}
}

func TestDateColumn_Scan(t *testing.T) {
	var d dateColumn

	if err := d.Scan("2024-01-01"); err != nil || d.Time.Format(domain.DateLayout) != "2024-01-01" {
		t.Fatalf("scan text: %v %v", d, err)
	}
	if err := d.Scan([]byte("2023-12-01")); err != nil || d.Time.Format(domain.DateLayout) != "2023-12-01" {
		t.Fatalf("scan bytes: %v %v", d, err)
	}
	when := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	if err := d.Scan(when); err != nil || !d.Time.Equal(when) {
		t.Fatalf("scan time: %v %v", d, err)
	}
	if err := d.Scan(nil); err != nil || d.Valid {
		t.Fatalf("scan nil: %v %v", d, err)
	}
	if err := d.Scan("next tuesday"); err == nil {
		t.Fatalf("expected parse error")
	}
}
