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

type accountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository instantiates a SQL-backed account repository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, username, password string) (*domain.Account, error) {
	query := r.db.Rebind(`
	INSERT INTO users (username, password)
	VALUES (?, ?)
	RETURNING id
	`)

	account := &domain.Account{Username: username, Password: password}
	if err := r.db.QueryRowxContext(ctx, query, username, password).Scan(&account.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := r.db.Rebind(`SELECT id, username, password FROM users WHERE username = ?`)

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}
