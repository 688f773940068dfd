package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
	"github.com/trustbooks/trust_ledger_app/internal/middleware"
)

// checkHandler handles HTTP requests for the disbursement queue and
// registered checks.
type checkHandler struct {
	checkService portssvc.CheckSvcFacade
}

func newCheckHandler(cs portssvc.CheckSvcFacade) *checkHandler {
	return &checkHandler{
		checkService: cs,
	}
}

// registerCheckRoutes registers disbursement queue and registered check routes.
func registerCheckRoutes(rg *gin.RouterGroup, checkService portssvc.CheckSvcFacade) {
	h := newCheckHandler(checkService)

	checks := rg.Group("/check-queue")
	{
		checks.POST("", h.createCheckItem)
		checks.GET("", h.listCheckItems)
		checks.GET("/:checkItemID", h.getCheckItem)
		checks.POST("/:checkItemID/preview", h.previewCheckItem)
		checks.POST("/:checkItemID/printed", h.markCheckItemPrinted)
		checks.POST("/:checkItemID/confirm", h.confirmCheckItem)
		checks.POST("/:checkItemID/cancel", h.cancelCheckItem)
		checks.DELETE("/:checkItemID", h.deleteCheckItem)
	}

	registered := rg.Group("/registered-checks")
	{
		registered.GET("/:checkID", h.getRegisteredCheck)
	}
}

// writeCheckError maps disbursement service errors onto HTTP codes.
func writeCheckError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrEntityNotPayable):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Insufficient funds", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrDuplicateCheckNumber),
		errors.Is(err, apperrors.ErrAlreadyRegistered),
		errors.Is(err, apperrors.ErrCannotDeleteRegistered):
		logger.Warn("Conflicting check state", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Check operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createCheckItem godoc
// @Summary Queue a check for disbursement
// @Description Creates a new queue item; funds are checked softly at this stage
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   check body dto.CreateCheckItemRequest true "Check details"
// @Success 201 {object} dto.CheckItemResponse
// @Failure 400 {object} map[string]string "Validation error or payee not payable"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account or payee not found"
// @Failure 409 {object} map[string]string "Check number already in use"
// @Failure 500 {object} map[string]string "Failed to create check item"
// @Security BearerAuth
// @Router /check-queue [post]
func (h *checkHandler) createCheckItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCheckItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCheckItem", slog.String("error", err.Error()))
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

	item, err := h.checkService.CreateCheckItem(c.Request.Context(), req, creatorUserID)
	if err != nil {
		writeCheckError(c, logger, err, "create check item")
		return
	}

	logger.Info("Check item created successfully", slog.String("check_item_id", item.CheckItemID))
	c.JSON(http.StatusCreated, dto.ToCheckItemResponse(item))
}

// listCheckItems godoc
// @Summary List disbursement queue items
// @Description Retrieves queue items newest first, optionally filtered by status
// @Tags checks
// @Produce  json
// @Param   status query string false "Filter by status" Enums(QUEUED, PREVIEWING, PRINTED, CONFIRMED, CANCELLED)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token from a previous page"
// @Success 200 {object} dto.ListCheckItemsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list check items"
// @Security BearerAuth
// @Router /check-queue [get]
func (h *checkHandler) listCheckItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCheckItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListCheckItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.checkService.ListCheckItems(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list check items from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list check items"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getCheckItem godoc
// @Summary Get a disbursement queue item
// @Tags checks
// @Produce  json
// @Param   checkItemID path string true "Check item ID"
// @Success 200 {object} dto.CheckItemResponse
// @Failure 404 {object} map[string]string "Check item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve check item"
// @Security BearerAuth
// @Router /check-queue/{checkItemID} [get]
func (h *checkHandler) getCheckItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkItemID := c.Param("checkItemID")

	item, err := h.checkService.GetCheckItemByID(c.Request.Context(), checkItemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Check item not found", slog.String("check_item_id", checkItemID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Check item not found"})
			return
		}
		logger.Error("Failed to get check item from service", slog.String("error", err.Error()), slog.String("check_item_id", checkItemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve check item"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckItemResponse(item))
}

// previewCheckItem godoc
// @Summary Move a queue item to previewing
// @Description Refreshes the printable snapshot (amount in words, payee address)
// @Tags checks
// @Produce  json
// @Param   checkItemID path string true "Check item ID"
// @Success 200 {object} dto.CheckItemResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check item not found"
// @Failure 409 {object} map[string]string "Item cannot be previewed from its current status"
// @Failure 500 {object} map[string]string "Failed to preview check item"
// @Security BearerAuth
// @Router /check-queue/{checkItemID}/preview [post]
func (h *checkHandler) previewCheckItem(c *gin.Context) {
	h.transitionCheckItem(c, "preview check item", h.checkService.PreviewCheckItem)
}

// markCheckItemPrinted godoc
// @Summary Mark a queue item as printed
// @Tags checks
// @Produce  json
// @Param   checkItemID path string true "Check item ID"
// @Success 200 {object} dto.CheckItemResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check item not found"
// @Failure 409 {object} map[string]string "Item cannot be marked printed from its current status"
// @Failure 500 {object} map[string]string "Failed to mark check item printed"
// @Security BearerAuth
// @Router /check-queue/{checkItemID}/printed [post]
func (h *checkHandler) markCheckItemPrinted(c *gin.Context) {
	h.transitionCheckItem(c, "mark check item printed", h.checkService.MarkCheckItemPrinted)
}

// transitionCheckItem runs the simple status transitions that take no body.
func (h *checkHandler) transitionCheckItem(c *gin.Context, action string, fn func(ctx context.Context, checkItemID string, userID string) (*domain.CheckQueueItem, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkItemID := c.Param("checkItemID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("check_item_id", checkItemID))

	item, err := fn(c.Request.Context(), checkItemID, userID)
	if err != nil {
		writeCheckError(c, logger, err, action)
		return
	}

	logger.Info("Check item transitioned", slog.String("status", string(item.Status)))
	c.JSON(http.StatusOK, dto.ToCheckItemResponse(item))
}

// confirmCheckItem godoc
// @Summary Confirm a printed check
// @Description Registers the check and posts its journal atomically; fails with 422 if funds are insufficient
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   checkItemID path string true "Check item ID"
// @Param   confirmation body dto.ConfirmCheckItemRequest true "Optional corrected check number"
// @Success 200 {object} dto.CheckItemResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check item not found"
// @Failure 409 {object} map[string]string "Item not printed, already registered, or number in use"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to confirm check item"
// @Security BearerAuth
// @Router /check-queue/{checkItemID}/confirm [post]
func (h *checkHandler) confirmCheckItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkItemID := c.Param("checkItemID")

	// The body is optional; confirming without it keeps the queued number.
	var req dto.ConfirmCheckItemRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ConfirmCheckItem", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("check_item_id", checkItemID))

	item, err := h.checkService.ConfirmCheckItem(c.Request.Context(), checkItemID, req, userID)
	if err != nil {
		writeCheckError(c, logger, err, "confirm check item")
		return
	}

	logger.Info("Check item confirmed successfully", slog.String("registered_check_id", derefOrEmpty(item.RegisteredCheckID)))
	c.JSON(http.StatusOK, dto.ToCheckItemResponse(item))
}

// cancelCheckItem godoc
// @Summary Cancel a queue item
// @Description Cancels an unregistered queue item with a reason
// @Tags checks
// @Accept  json
// @Produce  json
// @Param   checkItemID path string true "Check item ID"
// @Param   cancellation body dto.CancelCheckItemRequest true "Cancellation reason"
// @Success 200 {object} dto.CheckItemResponse
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check item not found"
// @Failure 409 {object} map[string]string "Item already registered or cancelled"
// @Failure 500 {object} map[string]string "Failed to cancel check item"
// @Security BearerAuth
// @Router /check-queue/{checkItemID}/cancel [post]
func (h *checkHandler) cancelCheckItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkItemID := c.Param("checkItemID")

	var req dto.CancelCheckItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelCheckItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("check_item_id", checkItemID))

	item, err := h.checkService.CancelCheckItem(c.Request.Context(), checkItemID, req, userID)
	if err != nil {
		writeCheckError(c, logger, err, "cancel check item")
		return
	}

	logger.Info("Check item cancelled")
	c.JSON(http.StatusOK, dto.ToCheckItemResponse(item))
}

// deleteCheckItem godoc
// @Summary Delete an unregistered queue item
// @Description Removes a queue item; registered items must be reversed through their journal
// @Tags checks
// @Produce  json
// @Param   checkItemID path string true "Check item ID"
// @Success 204 "Check item deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check item not found"
// @Failure 409 {object} map[string]string "Item is registered"
// @Failure 500 {object} map[string]string "Failed to delete check item"
// @Security BearerAuth
// @Router /check-queue/{checkItemID} [delete]
func (h *checkHandler) deleteCheckItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkItemID := c.Param("checkItemID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("check_item_id", checkItemID))

	if err := h.checkService.DeleteCheckItem(c.Request.Context(), checkItemID, userID); err != nil {
		writeCheckError(c, logger, err, "delete check item")
		return
	}

	logger.Info("Check item deleted")
	c.Status(http.StatusNoContent)
}

// getRegisteredCheck godoc
// @Summary Get a registered check
// @Tags checks
// @Produce  json
// @Param   checkID path string true "Registered check ID"
// @Success 200 {object} dto.RegisteredCheckResponse
// @Failure 404 {object} map[string]string "Registered check not found"
// @Failure 500 {object} map[string]string "Failed to retrieve registered check"
// @Security BearerAuth
// @Router /registered-checks/{checkID} [get]
func (h *checkHandler) getRegisteredCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("checkID")

	check, err := h.checkService.GetRegisteredCheckByID(c.Request.Context(), checkID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Registered check not found", slog.String("check_id", checkID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Registered check not found"})
			return
		}
		logger.Error("Failed to get registered check from service", slog.String("error", err.Error()), slog.String("check_id", checkID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve registered check"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRegisteredCheckResponse(check))
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
