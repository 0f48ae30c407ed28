package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/acctsys/accounting_backend/internal/core/ports/services"
	"github.com/acctsys/accounting_backend/internal/dto"
	"github.com/acctsys/accounting_backend/internal/middleware"
	"github.com/acctsys/accounting_backend/internal/utils/xlsx"
	"github.com/gin-gonic/gin"
)

const queryDateFormat = "2006-01-02"

// reportingHandler handles HTTP requests for derived financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// queryDate parses a required YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter " + name})
		return time.Time{}, false
	}
	d, err := time.Parse(queryDateFormat, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date for " + name + ", expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

func (h *reportingHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}

	accountIDRaw := c.Query("accountID")
	var accountID int64
	if _, err := fmt.Sscanf(accountIDRaw, "%d", &accountID); err != nil || accountIDRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid accountID"})
		return
	}

	fromDate, ok := queryDate(c, "from")
	if !ok {
		return
	}
	toDate, ok := queryDate(c, "to")
	if !ok {
		return
	}
	if toDate.Before(fromDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	report, err := h.reportingService.GetLedger(c.Request.Context(), tenantID, accountID, fromDate, toDate)
	if err != nil {
		respondServiceError(c, logger, err, "build ledger report")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerReportResponse(report))
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}
	asOf, ok := queryDate(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingService.GetTrialBalance(c.Request.Context(), tenantID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "build trial balance")
		return
	}

	if c.Query("format") == "xlsx" {
		f, err := xlsx.TrialBalanceWorkbook(report)
		if err != nil {
			logger.Error("Failed to render trial balance workbook", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export trial balance"})
			return
		}
		filename := fmt.Sprintf("trial-balance-%s.xlsx", asOf.Format(queryDateFormat))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := f.Write(c.Writer); err != nil {
			logger.Error("Failed to write trial balance workbook", slog.String("error", err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}
	fromDate, ok := queryDate(c, "from")
	if !ok {
		return
	}
	toDate, ok := queryDate(c, "to")
	if !ok {
		return
	}
	if toDate.Before(fromDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	report, err := h.reportingService.GetIncomeStatement(c.Request.Context(), tenantID, fromDate, toDate)
	if err != nil {
		respondServiceError(c, logger, err, "build income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(report))
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}
	asOf, ok := queryDate(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), tenantID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "build balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(report))
}

// registerReportingRoutes registers report routes on the tenant group.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/ledger", h.getLedger)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}
