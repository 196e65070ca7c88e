package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"livestock-supply-api-server/internal/api/middleware"
	"livestock-supply-api-server/internal/inventory"
	"livestock-supply-api-server/internal/models"
	"livestock-supply-api-server/internal/socket"
	"livestock-supply-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

// RequestHandler exposes the coordination engine over HTTP. All stock and
// ledger writes go through the coordinator; the handler only parses,
// authorizes, and notifies.
type RequestHandler struct {
	Coordinator *inventory.Coordinator
	Reporter    *inventory.Reporter
	Stocks      inventory.StockStore
	Requests    *store.RequestStore
	Hub         *socket.Hub
}

type CreateRequestPayload struct {
	Kind        models.Kind `json:"kind" binding:"required"`
	MedicineID  int64       `json:"medicineID"`
	FeedID      int64       `json:"feedID"`
	LivestockID int64       `json:"livestockID"`
	Quantity    int64       `json:"quantity"`
	RequestDate string      `json:"requestDate"` // YYYY-MM-DD, optional
}

// statusForEngineError maps the engine's error kinds to HTTP status codes.
func statusForEngineError(err error) int {
	switch {
	case errors.Is(err, inventory.ErrInvalidRequestShape),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrMissingLivestockReference):
		return http.StatusBadRequest
	case errors.Is(err, inventory.ErrStockItemNotFound),
		errors.Is(err, inventory.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, inventory.ErrAlreadyFinalized),
		errors.Is(err, inventory.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, inventory.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// CreateRequest lets an owner submit a claim against a medicine or feed.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	requesterID := middleware.UserID(c)

	var payload CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var requestDate time.Time
	if payload.RequestDate != "" {
		parsed, err := time.Parse("2006-01-02", payload.RequestDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "requestDate must be in YYYY-MM-DD format"})
			return
		}
		requestDate = parsed
	}

	candidate := inventory.SubmitCandidate{
		Kind:        payload.Kind,
		MedicineID:  payload.MedicineID,
		FeedID:      payload.FeedID,
		RequesterID: requesterID,
		LivestockID: payload.LivestockID,
		Quantity:    payload.Quantity,
		RequestDate: requestDate,
	}

	request, err := h.Coordinator.SubmitRequest(c.Request.Context(), candidate)
	if err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}

	// Tell the supplier a new request is waiting for them.
	if item, err := h.Stocks.Get(c.Request.Context(), request.Kind, request.StockItemID()); err == nil {
		h.Hub.Notify(item.SupplierID, "request_submitted", request)
	}

	c.JSON(http.StatusCreated, request)
}

// ApproveRequest finalizes a pending request and debits the stock item.
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}
	supplierID := middleware.UserID(c)

	request, err := h.Coordinator.ApproveRequest(c.Request.Context(), requestID, supplierID)
	if err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}

	h.Hub.Notify(request.RequesterID, "request_approved", request)
	c.JSON(http.StatusOK, request)
}

// RejectRequest finalizes a pending request without touching stock.
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}
	supplierID := middleware.UserID(c)

	request, err := h.Coordinator.RejectRequest(c.Request.Context(), requestID, supplierID)
	if err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}

	h.Hub.Notify(request.RequesterID, "request_rejected", request)
	c.JSON(http.StatusOK, request)
}

// GetMyRequests lists the signed-in owner's requests.
func (h *RequestHandler) GetMyRequests(c *gin.Context) {
	requests, err := h.Requests.ListByRequester(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetSupplierRequests lists requests targeting the supplier's stock.
func (h *RequestHandler) GetSupplierRequests(c *gin.Context) {
	requests, err := h.Requests.ListForSupplier(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetRequestByID returns one request. Visible to its requester and to the
// supplier owning the referenced stock item.
func (h *RequestHandler) GetRequestByID(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	request, err := h.Requests.Get(c.Request.Context(), requestID)
	if err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	if request.RequesterID != userID {
		item, err := h.Stocks.Get(c.Request.Context(), request.Kind, request.StockItemID())
		if err != nil || item.SupplierID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this request"})
			return
		}
	}

	c.JSON(http.StatusOK, request)
}

// GetSoldSummary reports units sold and revenue for one stock item.
func (h *RequestHandler) GetSoldSummary(c *gin.Context) {
	kind, ok := parseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Kind must be medicine or feed"})
		return
	}
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock item id"})
		return
	}

	summary, err := h.Reporter.Summarize(c.Request.Context(), kind, itemID)
	if err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func parseKind(raw string) (models.Kind, bool) {
	switch strings.ToLower(raw) {
	case "medicine":
		return models.KindMedicine, true
	case "feed":
		return models.KindFeed, true
	default:
		return "", false
	}
}
