package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balances", h.getBalanceSummary)
		reports.GET("/monthly/clients", h.getMonthlyClientSales)
		reports.GET("/monthly/products", h.getMonthlyProductSales)
		reports.GET("/months", h.listInvoiceMonths)
	}
}

// getBalanceSummary godoc
// @Summary Client balance summary
// @Description Returns every client's current balance and latest invoice date. positiveOnly=true keeps only clients who owe money.
// @Tags reports
// @Produce json
// @Param positiveOnly query bool false "Only clients with balance > 0"
// @Success 200 {object} dto.BalanceSummaryResponse
// @Failure 500 {object} map[string]string "Failed to load balance summary"
// @Security BearerAuth
// @Router /reports/balances [get]
func (h *reportingHandler) getBalanceSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	positiveOnly, _ := strconv.ParseBool(c.DefaultQuery("positiveOnly", "false"))

	rows, err := h.reportingService.GetClientBalanceSummary(c.Request.Context(), positiveOnly)
	if err != nil {
		logger.Error("Failed to load balance summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load balance summary"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceSummaryResponse{Clients: dto.ToClientBalanceResponses(rows)})
}

// getMonthlyClientSales godoc
// @Summary Monthly sales per client
// @Description Aggregates each client's revenue for a month. Carry-over lines are excluded; the month is interpreted in the business timezone.
// @Tags reports
// @Produce json
// @Param month query string true "Month in YYYY-MM format"
// @Success 200 {object} dto.MonthlyClientSalesResponse
// @Failure 400 {object} map[string]string "Invalid month format"
// @Failure 500 {object} map[string]string "Failed to load monthly client sales"
// @Security BearerAuth
// @Router /reports/monthly/clients [get]
func (h *reportingHandler) getMonthlyClientSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	month := q.Month

	rows, err := h.reportingService.GetMonthlyClientSales(c.Request.Context(), month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to load monthly client sales", slog.String("month", month), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load monthly client sales"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyClientSalesResponse{Clients: dto.ToClientSalesResponses(rows)})
}

// getMonthlyProductSales godoc
// @Summary Monthly sales per product
// @Description Aggregates quantity and revenue per product name/spec for a month, highest revenue first. Carry-over lines are excluded.
// @Tags reports
// @Produce json
// @Param month query string true "Month in YYYY-MM format"
// @Success 200 {object} dto.MonthlyProductSalesResponse
// @Failure 400 {object} map[string]string "Invalid month format"
// @Failure 500 {object} map[string]string "Failed to load monthly product sales"
// @Security BearerAuth
// @Router /reports/monthly/products [get]
func (h *reportingHandler) getMonthlyProductSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	month := q.Month

	rows, err := h.reportingService.GetMonthlyProductSales(c.Request.Context(), month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to load monthly product sales", slog.String("month", month), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load monthly product sales"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyProductSalesResponse{Products: dto.ToProductSalesResponses(rows)})
}

// listInvoiceMonths godoc
// @Summary List report months
// @Description Returns every month from the first invoice up to the current month, newest first, for the report pickers.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.InvoiceMonthsResponse
// @Failure 500 {object} map[string]string "Failed to list months"
// @Security BearerAuth
// @Router /reports/months [get]
func (h *reportingHandler) listInvoiceMonths(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	months, err := h.reportingService.ListInvoiceMonths(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list months", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list months"})
		return
	}

	c.JSON(http.StatusOK, dto.InvoiceMonthsResponse{Months: months})
}
