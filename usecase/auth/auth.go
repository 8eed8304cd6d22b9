package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/taskdesk/domain"
	appLogger "github.com/fastygo/taskdesk/pkg/logger"
	"github.com/fastygo/taskdesk/repository"
)

type UseCase struct {
	accounts repository.AccountRepository
	hasher   Hasher
	logger   *zap.Logger
	now      func() time.Time
}

func New(accounts repository.AccountRepository, hasher Hasher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = NewBcryptHasher(0)
	}
	return &UseCase{
		accounts: accounts,
		hasher:   hasher,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates an account. It does not log the caller in.
func (uc *UseCase) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, domain.ErrCredentialsRequired
	}

	stored, err := uc.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "Password is too long.", err)
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "could not hash password", err)
	}

	account, err := uc.accounts.Create(ctx, username, stored)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			appLogger.WithSession(ctx, uc.logger).Info("registration rejected", zap.String("username", username))
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "registration failed", err)
	}

	appLogger.WithSession(ctx, uc.logger).Info("account registered",
		zap.String("username", username),
		zap.Int64("account_id", account.ID))
	return account, nil
}

// Authenticate resolves a username/password pair to an account ID.
func (uc *UseCase) Authenticate(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, domain.ErrCredentialsRequired
	}

	account, err := uc.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return 0, domain.ErrInvalidCredentials
		}
		return 0, domain.WrapError(domain.ErrCodeInternal, "login failed", err)
	}

	if !uc.hasher.Matches(account.Password, password) {
		return 0, domain.ErrInvalidCredentials
	}
	return account.ID, nil
}

// Login authenticates and opens the session the task view runs under.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	accountID, err := uc.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			appLogger.WithSession(ctx, uc.logger).Info("login rejected", zap.String("username", username))
		}
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Username:  username,
		StartedAt: uc.now(),
	}

	appLogger.WithSession(appLogger.ContextWithSessionID(ctx, session.ID), uc.logger).Info("login succeeded",
		zap.String("username", username),
		zap.Int64("account_id", accountID))
	return session, nil
}
