package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
	"github.com/trustbooks/trust_ledger_app/internal/middleware"
	"github.com/trustbooks/trust_ledger_app/internal/utils/numwords"
)

var (
	ErrCheckAmountInvalid = errors.New("check amount must be positive")
	ErrCheckNotPrintable  = errors.New("check item is not in a printable state")
)

// checkQueueService drives the disbursement queue state machine. The only
// money-moving step is Confirm; everything before it is editable staging.
type checkQueueService struct {
	checkRepo   portsrepo.CheckRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	entityRepo  portsrepo.EntityReader
	auditSink   portssvc.AuditSink
}

// NewCheckQueueService creates a new check queue service. auditSink may be
// nil, in which case no audit events are emitted.
func NewCheckQueueService(checkRepo portsrepo.CheckRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, entityRepo portsrepo.EntityReader, auditSink portssvc.AuditSink) portssvc.CheckSvcFacade {
	return &checkQueueService{
		checkRepo:   checkRepo,
		accountRepo: accountRepo,
		entityRepo:  entityRepo,
		auditSink:   auditSink,
	}
}

var _ portssvc.CheckSvcFacade = (*checkQueueService)(nil)

func (s *checkQueueService) emitAudit(ctx context.Context, event domain.AuditEvent) {
	if s.auditSink == nil {
		return
	}
	if err := s.auditSink.Publish(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish audit event", slog.String("action", event.Action), slog.String("error", err.Error()))
	}
}

// formatPayeeAddress renders the address block printed on the check face.
func formatPayeeAddress(entity *domain.Entity) string {
	lines := []string{entity.Name}
	if entity.AddressLine1 != "" {
		lines = append(lines, entity.AddressLine1)
	}
	if entity.AddressLine2 != "" {
		lines = append(lines, entity.AddressLine2)
	}
	cityLine := strings.TrimSpace(fmt.Sprintf("%s, %s %s", entity.City, entity.State, entity.PostalCode))
	if cityLine != "," {
		lines = append(lines, cityLine)
	}
	return strings.Join(lines, "\n")
}

// validateAccountsForCheck fetches and validates the paying ledger and the
// expense category accounts.
func (s *checkQueueService) validateAccountsForCheck(ctx context.Context, ledgerAccountID, expenseAccountID string) (*domain.Account, *domain.Account, error) {
	ledger, err := s.accountRepo.FindAccountByID(ctx, ledgerAccountID)
	if err != nil {
		return nil, nil, err
	}
	if ledger.AccountType != domain.Asset {
		return nil, nil, fmt.Errorf("%w: paying account %s must be an ASSET account", apperrors.ErrValidation, ledgerAccountID)
	}
	if !ledger.IsActive {
		return nil, nil, fmt.Errorf("%w: paying account %s is inactive", apperrors.ErrValidation, ledgerAccountID)
	}

	expense, err := s.accountRepo.FindAccountByID(ctx, expenseAccountID)
	if err != nil {
		return nil, nil, err
	}
	if expense.AccountType != domain.Expense {
		return nil, nil, fmt.Errorf("%w: account %s must be an EXPENSE account", apperrors.ErrValidation, expenseAccountID)
	}
	if !expense.IsActive {
		return nil, nil, fmt.Errorf("%w: expense account %s is inactive", apperrors.ErrValidation, expenseAccountID)
	}

	return ledger, expense, nil
}

// CreateCheckItem enqueues a new check for disbursement. Funds are checked
// softly here: an amount exceeding the ledger balance is logged but allowed,
// since deposits may land before the check is confirmed. The hard check
// happens at Confirm under a row lock.
func (s *checkQueueService) CreateCheckItem(ctx context.Context, req dto.CreateCheckItemRequest, creatorUserID string) (*domain.CheckQueueItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCheckAmountInvalid)
	}
	if strings.TrimSpace(req.CheckNumber) == "" {
		return nil, fmt.Errorf("%w: check number is required", apperrors.ErrValidation)
	}

	ledger, _, err := s.validateAccountsForCheck(ctx, req.LedgerAccountID, req.ExpenseAccountID)
	if err != nil {
		return nil, err
	}

	payee, err := s.entityRepo.FindEntityByID(ctx, req.PayeeEntityID)
	if err != nil {
		return nil, err
	}
	if !payee.IsPayable || !payee.IsActive {
		return nil, fmt.Errorf("%w: entity %s", apperrors.ErrEntityNotPayable, req.PayeeEntityID)
	}

	inUse, err := s.checkRepo.IsCheckNumberInUse(ctx, req.LedgerAccountID, req.CheckNumber, "")
	if err != nil {
		logger.Error("Failed to check for duplicate check number", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to validate check number: %w", err)
	}
	if inUse {
		return nil, fmt.Errorf("%w: number %s on account %s", apperrors.ErrDuplicateCheckNumber, req.CheckNumber, req.LedgerAccountID)
	}

	// Soft funds check only. The balance can change before confirmation.
	if req.Amount.GreaterThan(ledger.Balance) {
		logger.Warn("Queued check exceeds current ledger balance",
			slog.String("ledger_account_id", req.LedgerAccountID),
			slog.String("amount", req.Amount.String()),
			slog.String("balance", ledger.Balance.String()))
	}

	now := time.Now().UTC()
	item := domain.CheckQueueItem{
		CheckItemID:      uuid.NewString(),
		LedgerAccountID:  req.LedgerAccountID,
		ExpenseAccountID: req.ExpenseAccountID,
		PayeeEntityID:    req.PayeeEntityID,
		CaseID:           req.CaseID,
		CheckNumber:      req.CheckNumber,
		Amount:           req.Amount,
		Memo:             req.Memo,
		CheckDate:        req.CheckDate,
		AmountWords:      numwords.AmountInWords(req.Amount),
		PayeeAddress:     formatPayeeAddress(payee),
		Status:           domain.CheckQueued,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.checkRepo.SaveCheckItem(ctx, item); err != nil {
		logger.Error("Failed to save check queue item", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save check queue item: %w", err)
	}

	logger.Info("Check queued for disbursement", slog.String("check_item_id", item.CheckItemID), slog.String("check_number", item.CheckNumber))
	return &item, nil
}

// requireTransition fetches the item and verifies the state machine permits
// moving it to target.
func (s *checkQueueService) requireTransition(ctx context.Context, checkItemID string, target domain.CheckItemStatus) (*domain.CheckQueueItem, error) {
	item, err := s.checkRepo.FindCheckItemByID(ctx, checkItemID)
	if err != nil {
		return nil, err
	}
	if !item.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot move check from %s to %s", apperrors.ErrConflict, item.Status, target)
	}
	return item, nil
}

// PreviewCheckItem moves a queued item to PREVIEWING and refreshes the
// printable snapshot (amount words and payee address). Re-previewing an item
// already in PREVIEWING is allowed and simply refreshes the snapshot.
func (s *checkQueueService) PreviewCheckItem(ctx context.Context, checkItemID string, userID string) (*domain.CheckQueueItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.requireTransition(ctx, checkItemID, domain.CheckPreviewing)
	if err != nil {
		return nil, err
	}

	payee, err := s.entityRepo.FindEntityByID(ctx, item.PayeeEntityID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item.Status = domain.CheckPreviewing
	item.AmountWords = numwords.AmountInWords(item.Amount)
	item.PayeeAddress = formatPayeeAddress(payee)
	item.PreviewedAt = &now
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.checkRepo.UpdateCheckItem(ctx, *item); err != nil {
		logger.Error("Failed to update check item for preview", slog.String("error", err.Error()), slog.String("check_item_id", checkItemID))
		return nil, fmt.Errorf("failed to update check item: %w", err)
	}

	logger.Debug("Check item previewed", slog.String("check_item_id", checkItemID))
	return item, nil
}

// MarkCheckItemPrinted records that the physical check was produced. It does
// not move money.
func (s *checkQueueService) MarkCheckItemPrinted(ctx context.Context, checkItemID string, userID string) (*domain.CheckQueueItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.requireTransition(ctx, checkItemID, domain.CheckPrinted)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item.Status = domain.CheckPrinted
	item.PrintedAt = &now
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.checkRepo.UpdateCheckItem(ctx, *item); err != nil {
		logger.Error("Failed to mark check item printed", slog.String("error", err.Error()), slog.String("check_item_id", checkItemID))
		return nil, fmt.Errorf("failed to update check item: %w", err)
	}

	logger.Info("Check marked printed", slog.String("check_item_id", checkItemID), slog.String("check_number", item.CheckNumber))
	return item, nil
}

// ConfirmCheckItem finalizes a printed check. It registers the check, posts
// the disbursement journal (debit expense, credit ledger) and flips the queue
// item to CONFIRMED, all in one database transaction with the paying account
// row locked. Insufficient funds at this point fails the whole operation and
// leaves the item PRINTED.
func (s *checkQueueService) ConfirmCheckItem(ctx context.Context, checkItemID string, req dto.ConfirmCheckItemRequest, userID string) (*domain.CheckQueueItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.checkRepo.FindCheckItemByID(ctx, checkItemID)
	if err != nil {
		return nil, err
	}
	if item.IsRegistered {
		return nil, fmt.Errorf("%w: check item %s", apperrors.ErrAlreadyRegistered, checkItemID)
	}
	if !item.Status.CanTransitionTo(domain.CheckConfirmed) {
		return nil, fmt.Errorf("%w: cannot confirm check in status %s, expected %s", apperrors.ErrConflict, item.Status, domain.CheckPrinted)
	}

	// The operator may correct the check number after seeing the physical
	// stock. The corrected number goes through the same uniqueness check.
	if req.FinalCheckNumber != nil && *req.FinalCheckNumber != item.CheckNumber {
		finalNumber := strings.TrimSpace(*req.FinalCheckNumber)
		if finalNumber == "" {
			return nil, fmt.Errorf("%w: final check number must not be empty", apperrors.ErrValidation)
		}
		inUse, err := s.checkRepo.IsCheckNumberInUse(ctx, item.LedgerAccountID, finalNumber, item.CheckItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to validate final check number: %w", err)
		}
		if inUse {
			return nil, fmt.Errorf("%w: number %s on account %s", apperrors.ErrDuplicateCheckNumber, finalNumber, item.LedgerAccountID)
		}
		item.CheckNumber = finalNumber
	}

	ledger, expense, err := s.validateAccountsForCheck(ctx, item.LedgerAccountID, item.ExpenseAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	checkID := uuid.NewString()
	journalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	check := domain.RegisteredCheck{
		CheckID:         checkID,
		LedgerAccountID: item.LedgerAccountID,
		PayeeEntityID:   item.PayeeEntityID,
		CaseID:          item.CaseID,
		CheckNumber:     item.CheckNumber,
		Amount:          item.Amount,
		Memo:            item.Memo,
		CheckDate:       item.CheckDate,
		JournalID:       journalID,
		Status:          domain.CheckIssued,
		AuditFields:     audit,
	}

	sourceType := "CHECK"
	journal := domain.Journal{
		JournalID:    journalID,
		JournalDate:  item.CheckDate,
		Description:  fmt.Sprintf("Check #%s: %s", item.CheckNumber, item.Memo),
		CurrencyCode: ledger.CurrencyCode,
		Status:       domain.Posted,
		SourceType:   &sourceType,
		SourceID:     &checkID,
		Amount:       item.Amount,
		AuditFields:  audit,
	}

	transactions := []domain.Transaction{
		{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       item.ExpenseAccountID,
			Amount:          item.Amount,
			TransactionType: domain.Debit,
			CurrencyCode:    ledger.CurrencyCode,
			Notes:           item.Memo,
			AuditFields:     audit,
		},
		{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       item.LedgerAccountID,
			Amount:          item.Amount,
			TransactionType: domain.Credit,
			CurrencyCode:    ledger.CurrencyCode,
			Notes:           item.Memo,
			AuditFields:     audit,
		},
	}

	// Debit to EXPENSE raises it, credit to ASSET lowers it.
	balanceChanges := map[string]decimal.Decimal{
		expense.AccountID: item.Amount,
		ledger.AccountID:  item.Amount.Neg(),
	}

	confirmed := *item
	confirmed.Status = domain.CheckConfirmed
	confirmed.IsRegistered = true
	confirmed.RegisteredCheckID = &checkID
	confirmed.LastUpdatedAt = now
	confirmed.LastUpdatedBy = userID

	// The repository locks the paying account, re-checks funds against the
	// locked balance, and applies all writes in one transaction.
	if err := s.checkRepo.RegisterCheckItem(ctx, confirmed, check, journal, transactions, balanceChanges); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Check confirmation rejected for insufficient funds",
				slog.String("check_item_id", checkItemID),
				slog.String("amount", item.Amount.String()))
		} else {
			logger.Error("Failed to register check", slog.String("error", err.Error()), slog.String("check_item_id", checkItemID))
		}
		return nil, err
	}

	logger.Info("Check confirmed and registered",
		slog.String("check_item_id", checkItemID),
		slog.String("check_id", checkID),
		slog.String("journal_id", journalID),
		slog.String("amount", item.Amount.String()))

	s.emitAudit(ctx, domain.AuditEvent{
		UserID:     userID,
		Action:     "check.confirm",
		EntityType: "check",
		EntityID:   checkID,
		Details: map[string]any{
			"check_item_id": checkItemID,
			"check_number":  confirmed.CheckNumber,
			"journal_id":    journalID,
			"amount":        item.Amount.String(),
		},
		Timestamp: now,
	})

	return &confirmed, nil
}

// CancelCheckItem cancels a not-yet-confirmed queue item. Cancellation has no
// financial effect.
func (s *checkQueueService) CancelCheckItem(ctx context.Context, checkItemID string, req dto.CancelCheckItemRequest, userID string) (*domain.CheckQueueItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.checkRepo.FindCheckItemByID(ctx, checkItemID)
	if err != nil {
		return nil, err
	}
	if item.IsRegistered {
		return nil, fmt.Errorf("%w: check item %s has already been confirmed", apperrors.ErrAlreadyRegistered, checkItemID)
	}
	if !item.Status.CanTransitionTo(domain.CheckCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel check in status %s", apperrors.ErrConflict, item.Status)
	}

	now := time.Now().UTC()
	item.Status = domain.CheckCancelled
	item.CancelReason = req.Reason
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.checkRepo.UpdateCheckItem(ctx, *item); err != nil {
		logger.Error("Failed to cancel check item", slog.String("error", err.Error()), slog.String("check_item_id", checkItemID))
		return nil, fmt.Errorf("failed to update check item: %w", err)
	}

	logger.Info("Check item cancelled", slog.String("check_item_id", checkItemID), slog.String("reason", req.Reason))
	return item, nil
}

// DeleteCheckItem removes a queue item that never registered a check.
func (s *checkQueueService) DeleteCheckItem(ctx context.Context, checkItemID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.checkRepo.FindCheckItemByID(ctx, checkItemID)
	if err != nil {
		return err
	}
	if item.IsRegistered {
		return fmt.Errorf("%w: check item %s", apperrors.ErrCannotDeleteRegistered, checkItemID)
	}

	if err := s.checkRepo.DeleteCheckItem(ctx, checkItemID); err != nil {
		logger.Error("Failed to delete check item", slog.String("error", err.Error()), slog.String("check_item_id", checkItemID))
		return fmt.Errorf("failed to delete check item: %w", err)
	}

	logger.Info("Check item deleted", slog.String("check_item_id", checkItemID), slog.String("deleted_by", userID))
	return nil
}

// GetCheckItemByID retrieves a queue item by its ID.
func (s *checkQueueService) GetCheckItemByID(ctx context.Context, checkItemID string) (*domain.CheckQueueItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	item, err := s.checkRepo.FindCheckItemByID(ctx, checkItemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find check item", slog.String("error", err.Error()), slog.String("check_item_id", checkItemID))
		}
		return nil, err
	}
	return item, nil
}

// ListCheckItems retrieves a paginated list of queue items, optionally
// filtered by status.
func (s *checkQueueService) ListCheckItems(ctx context.Context, params dto.ListCheckItemsParams) (*dto.ListCheckItemsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	items, nextToken, err := s.checkRepo.ListCheckItems(ctx, params.Status, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list check items from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve check items: %w", err)
	}

	resp := &dto.ListCheckItemsResponse{
		Items:     dto.ToCheckItemResponses(items),
		NextToken: nextToken,
	}

	logger.Debug("Check items listed", slog.Int("count", len(items)))
	return resp, nil
}

// GetRegisteredCheckByID retrieves a registered check by its ID.
func (s *checkQueueService) GetRegisteredCheckByID(ctx context.Context, checkID string) (*domain.RegisteredCheck, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	check, err := s.checkRepo.FindRegisteredCheckByID(ctx, checkID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find registered check", slog.String("error", err.Error()), slog.String("check_id", checkID))
		}
		return nil, err
	}
	return check, nil
}
