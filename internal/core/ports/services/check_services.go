package services

import (
	"context"

	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
)

// CheckQueueReaderSvc defines read operations for the disbursement queue
type CheckQueueReaderSvc interface {
	// GetCheckItemByID retrieves a queue item by its ID.
	GetCheckItemByID(ctx context.Context, checkItemID string) (*domain.CheckQueueItem, error)

	// ListCheckItems retrieves a paginated list of queue items, optionally
	// filtered by status.
	ListCheckItems(ctx context.Context, params dto.ListCheckItemsParams) (*dto.ListCheckItemsResponse, error)
}

// CheckQueueWriterSvc defines the lifecycle operations for queued checks
type CheckQueueWriterSvc interface {
	// CreateCheckItem enqueues a new check for disbursement.
	CreateCheckItem(ctx context.Context, req dto.CreateCheckItemRequest, creatorUserID string) (*domain.CheckQueueItem, error)

	// PreviewCheckItem moves a queued item to PREVIEWING and returns the
	// print-ready snapshot. Previewing an item already in PREVIEWING refreshes
	// the snapshot without error.
	PreviewCheckItem(ctx context.Context, checkItemID string, userID string) (*domain.CheckQueueItem, error)

	// MarkCheckItemPrinted records that the physical check was produced.
	MarkCheckItemPrinted(ctx context.Context, checkItemID string, userID string) (*domain.CheckQueueItem, error)

	// ConfirmCheckItem finalizes a printed check, posting the disbursement
	// journal and registering the check. This is the only money-moving step.
	ConfirmCheckItem(ctx context.Context, checkItemID string, req dto.ConfirmCheckItemRequest, userID string) (*domain.CheckQueueItem, error)

	// CancelCheckItem cancels a not-yet-confirmed queue item.
	CancelCheckItem(ctx context.Context, checkItemID string, req dto.CancelCheckItemRequest, userID string) (*domain.CheckQueueItem, error)

	// DeleteCheckItem removes a queue item that never registered a check.
	DeleteCheckItem(ctx context.Context, checkItemID string, userID string) error
}

// RegisteredCheckReaderSvc defines read operations for registered checks
type RegisteredCheckReaderSvc interface {
	// GetRegisteredCheckByID retrieves a registered check by its ID.
	GetRegisteredCheckByID(ctx context.Context, checkID string) (*domain.RegisteredCheck, error)
}

// CheckSvcFacade combines all disbursement-related service interfaces
type CheckSvcFacade interface {
	CheckQueueReaderSvc
	CheckQueueWriterSvc
	RegisteredCheckReaderSvc
}
