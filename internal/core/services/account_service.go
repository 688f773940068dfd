package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
	"github.com/trustbooks/trust_ledger_app/internal/middleware"
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		IsActive:     true, // Default to active on creation
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to find accounts by IDs in repository", slog.String("error", err.Error()))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Ensure the account exists first so callers get ErrNotFound, not a no-op.
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
