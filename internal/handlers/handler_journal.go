package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
	"github.com/trustbooks/trust_ledger_app/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers journal specific routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("/:journalID/reverse", h.reverseJournal)
		journals.POST("/expense", h.recordExpense)
		journals.POST("/income", h.recordIncome)
		journals.POST("/transfer", h.recordTransfer)
	}
}

// writeJournalError maps service errors from the posting paths onto HTTP codes.
func writeJournalError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting journal state", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Journal operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createJournal godoc
// @Summary Create a journal entry with its transactions
// @Description Posts a balanced journal; debits must equal credits
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal and transactions"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid request format or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	journal, err := h.journalService.CreateJournal(c.Request.Context(), req, creatorUserID)
	if err != nil {
		writeJournalError(c, logger, err, "create journal")
		return
	}

	logger.Info("Journal created successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal entry and its transactions
// @Description Retrieves a journal and its associated transactions by journal ID
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal not found", slog.String("journal_id", journalID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		logger.Error("Failed to get journal from service", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		return
	}

	logger.Debug("Journal retrieved successfully", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Description Retrieves journals newest first with token-based pagination
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token from a previous page"
// @Param   includeReversals query bool false "Include reversal journals and reversed originals" default(true)
// @Param   includeTransactions query bool false "Embed each journal's transactions" default(false)
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list journals from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journals"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reverseJournal godoc
// @Summary Reverse a posted journal
// @Description Creates a negating journal and marks the original as reversed
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID to reverse"
// @Param   reversal body dto.ReverseJournalRequest true "Reversal reason"
// @Success 201 {object} dto.JournalResponse "The reversing journal"
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal already reversed or is itself a reversal"
// @Failure 500 {object} map[string]string "Failed to reverse journal"
// @Security BearerAuth
// @Router /journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	var req dto.ReverseJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("journal_id", journalID))

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), journalID, req, userID)
	if err != nil {
		writeJournalError(c, logger, err, "reverse journal")
		return
	}

	logger.Info("Journal reversed successfully", slog.String("reversing_journal_id", reversal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}

// recordExpense godoc
// @Summary Record an expense
// @Description Convenience posting that debits an expense account and credits an asset ledger
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   expense body dto.RecordExpenseRequest true "Expense details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record expense"
// @Security BearerAuth
// @Router /journals/expense [post]
func (h *journalHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	journal, err := h.journalService.RecordExpense(c.Request.Context(), req, creatorUserID)
	if err != nil {
		writeJournalError(c, logger, err, "record expense")
		return
	}

	logger.Info("Expense recorded successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// recordIncome godoc
// @Summary Record income
// @Description Convenience posting that debits an asset ledger and credits a revenue account
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   income body dto.RecordIncomeRequest true "Income details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record income"
// @Security BearerAuth
// @Router /journals/income [post]
func (h *journalHandler) recordIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	journal, err := h.journalService.RecordIncome(c.Request.Context(), req, creatorUserID)
	if err != nil {
		writeJournalError(c, logger, err, "record income")
		return
	}

	logger.Info("Income recorded successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// recordTransfer godoc
// @Summary Record a transfer between asset accounts
// @Description Convenience posting that moves funds between two asset ledgers
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   transfer body dto.RecordTransferRequest true "Transfer details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record transfer"
// @Security BearerAuth
// @Router /journals/transfer [post]
func (h *journalHandler) recordTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	journal, err := h.journalService.RecordTransfer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		writeJournalError(c, logger, err, "record transfer")
		return
	}

	logger.Info("Transfer recorded successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}
