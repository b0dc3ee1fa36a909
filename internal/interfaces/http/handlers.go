package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aduanafuel/invoice-workflow/internal/application/port"
	"github.com/aduanafuel/invoice-workflow/internal/application/service"
	"github.com/aduanafuel/invoice-workflow/internal/domain/workflow"
	"github.com/aduanafuel/invoice-workflow/internal/report"
)

const actorKey = "actor_id"

// Handlers contains all HTTP request handlers
type Handlers struct {
	invoiceSvc   service.InvoiceService
	taxConfigSvc service.TaxConfigService
	userSvc      service.UserService
	notifier     service.NotificationService
	exporter     *report.Exporter
	logger       Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	invoiceSvc service.InvoiceService,
	taxConfigSvc service.TaxConfigService,
	userSvc service.UserService,
	notifier service.NotificationService,
	exporter *report.Exporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		invoiceSvc:   invoiceSvc,
		taxConfigSvc: taxConfigSvc,
		userSvc:      userSvc,
		notifier:     notifier,
		exporter:     exporter,
		logger:       logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// requireActor extracts the acting user from the X-User-ID header
func requireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing or invalid X-User-ID header",
			})
			return
		}
		c.Set(actorKey, id)
		c.Next()
	}
}

func actorID(c *gin.Context) int64 {
	return c.GetInt64(actorKey)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto HTTP status codes
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInsufficientCredits):
		status = http.StatusPaymentRequired
	case errors.Is(err, service.ErrConfigurationMissing),
		errors.Is(err, workflow.ErrInvalidTransition):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(status, Response{Success: false, Error: "internal error"})
		return
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// SubmitInvoice handles POST /api/invoices
func (h *Handlers) SubmitInvoice(c *gin.Context) {
	var in service.InvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	invoice, err := h.invoiceSvc.Submit(c.Request.Context(), actorID(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: invoice})
}

// ListInvoicesRequest represents query parameters for listing invoices
type ListInvoicesRequest struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	Search        string `form:"search"`
	Limit         int    `form:"limit"`
	Offset        int    `form:"offset"`
}

// ListInvoices handles GET /api/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	invoices, err := h.invoiceSvc.List(c.Request.Context(), actorID(c), port.InvoiceFilter{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Search:        req.Search,
		Limit:         req.Limit,
		Offset:        req.Offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoices})
}

// GetInvoice handles GET /api/invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceSvc.Get(c.Request.Context(), actorID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoice})
}

// EditInvoice handles PUT /api/invoices/:id
func (h *Handlers) EditInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in service.InvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	invoice, err := h.invoiceSvc.Edit(c.Request.Context(), actorID(c), id, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoice})
}

// DeleteInvoice handles DELETE /api/invoices/:id
func (h *Handlers) DeleteInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.invoiceSvc.Delete(c.Request.Context(), actorID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ActionRequest represents a workflow action on an invoice
type ActionRequest struct {
	Action  string `json:"action" binding:"required"`
	Comment string `json:"comment"`
}

// ApplyAction handles POST /api/invoices/:id/actions
func (h *Handlers) ApplyAction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	invoice, err := h.invoiceSvc.ApplyAction(c.Request.Context(), id, workflow.Trigger(req.Action), actorID(c), req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoice})
}

// InvoiceHistory handles GET /api/invoices/:id/history
func (h *Handlers) InvoiceHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	entries, err := h.invoiceSvc.History(c.Request.Context(), actorID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: entries})
}

// PaymentRequest updates payment tracking on an approved invoice
type PaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
	CaptureLine   string `json:"capture_line"`
}

// SetPaymentStatus handles PUT /api/invoices/:id/payment
func (h *Handlers) SetPaymentStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	invoice, err := h.invoiceSvc.SetPaymentStatus(c.Request.Context(), actorID(c), id, req.PaymentStatus, req.CaptureLine)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: invoice})
}

// InvoiceStats handles GET /api/invoices/stats
func (h *Handlers) InvoiceStats(c *gin.Context) {
	stats, err := h.invoiceSvc.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: stats})
}

// ExportInvoices handles GET /api/invoices/export
func (h *Handlers) ExportInvoices(c *gin.Context) {
	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}

	invoices, err := h.invoiceSvc.List(c.Request.Context(), actorID(c), port.InvoiceFilter{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Search:        req.Search,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	file, err := h.exporter.Build(invoices)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("invoices_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if _, err := file.WriteTo(c.Writer); err != nil {
		h.logger.Error("Failed to stream export", "error", err)
	}
}

// CurrentTaxConfig handles GET /api/taxes
func (h *Handlers) CurrentTaxConfig(c *gin.Context) {
	cfg, err := h.taxConfigSvc.Current(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: cfg})
}

// UpdateTaxConfig handles PUT /api/taxes
func (h *Handlers) UpdateTaxConfig(c *gin.Context) {
	var in service.RatesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	cfg, err := h.taxConfigSvc.Update(c.Request.Context(), actorID(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: cfg})
}

// TaxConfigHistory handles GET /api/taxes/history
func (h *Handlers) TaxConfigHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	configs, err := h.taxConfigSvc.History(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: configs})
}

// ListUsers handles GET /api/users
func (h *Handlers) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, err := h.userSvc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: users})
}

// GetUser handles GET /api/users/:id
func (h *Handlers) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// CreditsRequest replaces a user's submission credit balance
type CreditsRequest struct {
	Credits *int `json:"credits" binding:"required"`
}

// SetCredits handles PUT /api/users/:id/credits
func (h *Handlers) SetCredits(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := h.userSvc.SetCredits(c.Request.Context(), actorID(c), id, *req.Credits); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ActiveRequest flips a user's active flag
type ActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive handles PUT /api/users/:id/active
func (h *Handlers) SetActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := h.userSvc.SetActive(c.Request.Context(), actorID(c), id, *req.Active); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ListNotifications handles GET /api/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	notifications, err := h.notifier.List(c.Request.Context(), actorID(c), unreadOnly, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: notifications})
}

// MarkNotificationRead handles PUT /api/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.notifier.MarkRead(c.Request.Context(), actorID(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}
