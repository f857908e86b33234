package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/flatfundpro/dues-portal/internal/application/service"
)

const dateLayout = "2006-01-02"

// statusUnknown is reported when payment data could not be read. It is never
// a computed status.
const statusUnknown = "unknown"

// Handlers contains all HTTP request handlers
type Handlers struct {
	services Services
	health   HealthChecker
	logger   Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, health HealthChecker, logger Logger) *Handlers {
	return &Handlers{
		services: services,
		health:   health,
		logger:   logger,
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
	Database  string `json:"database,omitempty"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// UnknownStatusResponse is returned when the snapshot could not be loaded
type UnknownStatusResponse struct {
	CollectionID string `json:"collection_id"`
	Status       string `json:"status"`
}

// CreateBlockRequest is the body of POST /apartments/:apartmentID/blocks
type CreateBlockRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddFlatsRequest is the body of POST /blocks/:blockID/flats
type AddFlatsRequest struct {
	FlatNumbers []string `json:"flat_numbers" binding:"required,min=1,dive,required"`
}

// DefineCollectionRequest is the body of POST /apartments/:apartmentID/collections
type DefineCollectionRequest struct {
	PaymentType   string          `json:"payment_type" binding:"required"`
	Quarter       string          `json:"quarter" binding:"required"`
	FinancialYear string          `json:"financial_year" binding:"required"`
	DueDate       string          `json:"due_date" binding:"required"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	DailyFine     decimal.Decimal `json:"daily_fine"`
	IsActive      *bool           `json:"is_active"`
}

// SubmitPaymentRequest is the body of POST /payments
type SubmitPaymentRequest struct {
	FlatID               string              `json:"flat_id" binding:"required"`
	ExpectedCollectionID string              `json:"expected_collection_id"`
	PaymentType          string              `json:"payment_type"`
	PaymentQuarter       string              `json:"payment_quarter"`
	PaymentAmount        decimal.NullDecimal `json:"payment_amount"`
	PaymentDate          *string             `json:"payment_date"`
}

// UpdateStatusRequest is the body of PATCH /payments/:id/status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	if h.health != nil {
		if err := h.health.Health(c.Request.Context()); err != nil {
			h.logger.Error("Health check failed", "error", err)
			response.Status = "unhealthy"
			response.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, Response{Success: false, Data: response, Error: "database unreachable"})
			return
		}
		response.Database = "ok"
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ListBlocks handles GET /api/v1/apartments/:apartmentID/blocks
func (h *Handlers) ListBlocks(c *gin.Context) {
	blocks, err := h.services.Registry.ListBlocks(c.Request.Context(), c.Param("apartmentID"))
	if err != nil {
		h.fail(c, err, "failed to retrieve blocks")
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: blocks})
}

// CreateBlock handles POST /api/v1/apartments/:apartmentID/blocks
func (h *Handlers) CreateBlock(c *gin.Context) {
	var req CreateBlockRequest
	if !h.bind(c, &req) {
		return
	}

	block, err := h.services.Registry.CreateBlock(c.Request.Context(), c.Param("apartmentID"), req.Name)
	if err != nil {
		h.fail(c, err, "failed to create block")
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: block})
}

// AddFlats handles POST /api/v1/blocks/:blockID/flats
func (h *Handlers) AddFlats(c *gin.Context) {
	var req AddFlatsRequest
	if !h.bind(c, &req) {
		return
	}

	flats, err := h.services.Registry.AddFlats(c.Request.Context(), c.Param("blockID"), req.FlatNumbers)
	if err != nil {
		h.fail(c, err, "failed to add flats")
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: flats})
}

// ListCollections handles GET /api/v1/apartments/:apartmentID/collections
func (h *Handlers) ListCollections(c *gin.Context) {
	activeOnly, err := strconv.ParseBool(c.DefaultQuery("active", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid active flag"})
		return
	}

	collections, err := h.services.Registry.ListCollections(c.Request.Context(), c.Param("apartmentID"), activeOnly)
	if err != nil {
		h.fail(c, err, "failed to retrieve collections")
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: collections})
}

// DefineCollection handles POST /api/v1/apartments/:apartmentID/collections
func (h *Handlers) DefineCollection(c *gin.Context) {
	var req DefineCollectionRequest
	if !h.bind(c, &req) {
		return
	}

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "due_date must be YYYY-MM-DD"})
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	collection, err := h.services.Registry.DefineCollection(c.Request.Context(), service.DefineCollectionInput{
		ApartmentID:   c.Param("apartmentID"),
		PaymentType:   req.PaymentType,
		Quarter:       req.Quarter,
		FinancialYear: req.FinancialYear,
		DueDate:       dueDate,
		AmountDue:     req.AmountDue,
		DailyFine:     req.DailyFine,
		IsActive:      active,
	})
	if err != nil {
		h.fail(c, err, "failed to define collection")
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: collection})
}

// CollectionStatus handles GET /api/v1/apartments/:apartmentID/collections/:collectionID/status
func (h *Handlers) CollectionStatus(c *gin.Context) {
	collectionID := c.Param("collectionID")
	report, err := h.services.Status.CollectionReport(c.Request.Context(), c.Param("apartmentID"), collectionID)
	if err != nil {
		h.failStatus(c, collectionID, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// FlatStatus handles GET /api/v1/apartments/:apartmentID/collections/:collectionID/flats/:flatID/status
func (h *Handlers) FlatStatus(c *gin.Context) {
	collectionID := c.Param("collectionID")
	status, err := h.services.Status.FlatStatus(c.Request.Context(), c.Param("apartmentID"), collectionID, c.Param("flatID"))
	if err != nil {
		h.failStatus(c, collectionID, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: status})
}

// DownloadReport handles GET /api/v1/apartments/:apartmentID/collections/:collectionID/report
func (h *Handlers) DownloadReport(c *gin.Context) {
	apartmentID := c.Param("apartmentID")
	collectionID := c.Param("collectionID")

	// Render fully before writing headers so failures still get a JSON body
	var buf bytes.Buffer
	if err := h.services.Report.ExportCollection(c.Request.Context(), apartmentID, collectionID, &buf); err != nil {
		h.failStatus(c, collectionID, err)
		return
	}

	fileName := h.services.Report.FileName(apartmentID, collectionID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, h.services.Report.ContentType(), buf.Bytes())
}

// SubmitPayment handles POST /api/v1/payments
func (h *Handlers) SubmitPayment(c *gin.Context) {
	var req SubmitPaymentRequest
	if !h.bind(c, &req) {
		return
	}

	var paymentDate *time.Time
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		d, err := time.Parse(dateLayout, *req.PaymentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: "payment_date must be YYYY-MM-DD"})
			return
		}
		paymentDate = &d
	}

	record, err := h.services.Ledger.SubmitPayment(c.Request.Context(), service.SubmitPaymentInput{
		FlatID:               req.FlatID,
		ExpectedCollectionID: req.ExpectedCollectionID,
		PaymentType:          req.PaymentType,
		PaymentQuarter:       req.PaymentQuarter,
		PaymentAmount:        req.PaymentAmount,
		PaymentDate:          paymentDate,
	})
	if err != nil {
		h.fail(c, err, "failed to submit payment")
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: record})
}

// UpdatePaymentStatus handles PATCH /api/v1/payments/:id/status
func (h *Handlers) UpdatePaymentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !h.bind(c, &req) {
		return
	}

	record, err := h.services.Ledger.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err, "failed to update payment status")
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: record})
}

func (h *Handlers) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Error("Invalid request body", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body: " + err.Error(),
		})
		return false
	}
	return true
}

// failStatus renders classification errors. A failed snapshot fetch is
// reported as status "unknown", never as pending.
func (h *Handlers) failStatus(c *gin.Context, collectionID string, err error) {
	if errors.Is(err, service.ErrSnapshotUnavailable) {
		h.logger.Error("Payment data unavailable", "collection_id", collectionID, "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{
			Success: false,
			Data:    UnknownStatusResponse{CollectionID: collectionID, Status: statusUnknown},
			Error:   "payment data unavailable",
		})
		return
	}
	h.fail(c, err, "failed to classify collection")
}

func (h *Handlers) fail(c *gin.Context, err error, msg string) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		code = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, service.ErrCollectionNotFound),
		errors.Is(err, service.ErrBlockNotFound),
		errors.Is(err, service.ErrFlatNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		code = http.StatusNotFound
		msg = err.Error()
	}

	if code == http.StatusInternalServerError {
		h.logger.Error(msg, "path", c.FullPath(), "error", err)
	}
	c.JSON(code, Response{Success: false, Error: msg})
}
