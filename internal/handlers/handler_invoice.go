package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices (계산서).
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// RegisterInvoiceRoutes registers routes related to invoices, including the
// per-client history routes that live under /clients/:id.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.PUT("/:id", h.updateInvoice)
	}

	clients := rg.Group("/clients/:id")
	{
		clients.GET("/invoices", h.listInvoicesByClient)
		clients.GET("/invoices/latest", h.getLatestInvoice)
	}
}

// createInvoice godoc
// @Summary Create a new invoice
// @Description Creates an invoice with its line items. The resulting balance is computed server-side as subtotal + previous balance - payment, and the client's stored balance follows it atomically.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice with line items"
// @Success 201 {object} dto.CreateInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 409 {object} map[string]string "Invoice number already used for this client"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice number already used for this client"})
		} else {
			logger.Error("Failed to create invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreateInvoiceResponse{InvoiceID: created.InvoiceID})
}

// getInvoice godoc
// @Summary Get an invoice with its details
// @Description Returns the invoice, its owning client, its line items with derived totals, and the balance carried in from the previous invoice. Serves the view/print screen.
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.FindInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to get invoice"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, client, details, previousBalance, err := h.invoiceService.GetInvoiceWithDetails(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to get invoice", slog.Int64("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FindInvoiceResponse{
		Invoice:         dto.ToInvoiceResponse(invoice),
		Client:          dto.InvoiceClientResponse{Name: client.Name, Phone: client.Phone},
		Details:         dto.ToInvoiceDetailResponses(details),
		PreviousBalance: previousBalance,
	})
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Replaces the invoice's line items wholesale and recomputes its balance from its own position in the client's chain. Later invoices are not recomputed.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Replacement line items and payment"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to update invoice"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to update invoice", slog.Int64("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updated))
}

// listInvoicesByClient godoc
// @Summary List a client's invoices
// @Description Returns the client's invoices newest first, each row carrying its balance, the previous invoice's balance, and the sum of its line items.
// @Tags invoices
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /clients/{id}/invoices [get]
func (h *invoiceHandler) listInvoicesByClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	rows, err := h.invoiceService.ListInvoicesByClient(c.Request.Context(), clientID)
	if err != nil {
		logger.Error("Failed to list invoices", slog.Int64("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: dto.ToInvoiceListRowResponses(rows)})
}

// getLatestInvoice godoc
// @Summary Get a client's latest invoice
// @Description Returns the client's most recent invoice number and balance, or a null latestInvoice when the client has none. The UI uses this to number the next invoice.
// @Tags invoices
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} dto.LatestInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 500 {object} map[string]string "Failed to get latest invoice"
// @Security BearerAuth
// @Router /clients/{id}/invoices/latest [get]
func (h *invoiceHandler) getLatestInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	latest, err := h.invoiceService.GetLatestInvoice(c.Request.Context(), clientID)
	if err != nil {
		logger.Error("Failed to get latest invoice", slog.Int64("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get latest invoice"})
		return
	}

	resp := dto.LatestInvoiceResponse{}
	if latest != nil {
		resp.LatestInvoice = &dto.LatestInvoiceInfo{No: latest.No, Balance: latest.Balance}
	}
	c.JSON(http.StatusOK, resp)
}
