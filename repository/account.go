package repository

import (
	"context"

	"github.com/fastygo/taskdesk/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, username, password string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}
