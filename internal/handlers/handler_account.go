package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
	"github.com/trustbooks/trust_ledger_app/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	journalService portssvc.JournalSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, js portssvc.JournalSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		journalService: js,
	}
}

// registerAccountRoutes registers routes related to accounts. Balance and
// ledger reads come from the journal service since postings own the numbers.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, journalService portssvc.JournalSvcFacade) {
	h := newAccountHandler(accountService, journalService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
		accounts.GET("/:accountID/ledger", h.getAccountLedger)
		accounts.DELETE("/:accountID", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new ledger account of one of the five types
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
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
	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("account_type", string(req.AccountType)))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate account", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves a single account with its cached balance
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List active accounts
// @Description Retrieves active accounts ordered by name
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccountBalance godoc
// @Summary Get an account's balance
// @Description Returns the cached current balance, or the balance as of a historical date when asOf is given
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   asOf query string false "Compute the balance as of this date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Security BearerAuth
// @Router /accounts/{accountID}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var asOf *time.Time
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		parsed, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			logger.Warn("Invalid asOf date for balance", slog.String("asOf", asOfStr))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		asOf = &parsed
	}

	balance, err := h.journalService.GetAccountBalance(c.Request.Context(), accountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for balance", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		return
	}

	resp := dto.AccountBalanceResponse{AccountID: accountID, Balance: balance}
	if asOf != nil {
		resp.AsOf = asOf.Format("2006-01-02")
	}
	c.JSON(http.StatusOK, resp)
}

// getAccountLedger godoc
// @Summary Get an account's ledger
// @Description Returns the account's lines in chronological order with running balances
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   startDate query string false "Filter lines on or after this date (YYYY-MM-DD)"
// @Param   endDate query string false "Filter lines on or before this date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Security BearerAuth
// @Router /accounts/{accountID}/ledger [get]
func (h *accountHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.AccountLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetAccountLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	ledger, err := h.journalService.GetAccountLedger(c.Request.Context(), accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for ledger", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account ledger", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger"})
		return
	}

	c.JSON(http.StatusOK, ledger)
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Soft-deletes an account; its history remains queryable
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 204 "Account deactivated"
// @Failure 400 {object} map[string]string "Account already inactive"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.accountService.DeactivateAccount(c.Request.Context(), accountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for deactivation", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Account already inactive", slog.String("account_id", accountID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		}
		return
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}
