package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date; debit and credit totals net to zero
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("asOf", asOfStr))
	logger.Info("Received request to generate trial balance report")

	response, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to generate trial balance report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance report"})
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(response.Rows)))
	c.JSON(http.StatusOK, response)
}
