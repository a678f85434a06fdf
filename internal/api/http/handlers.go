package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bigkboy4lyf/swiftship-express/internal/application"
	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
	"github.com/bigkboy4lyf/swiftship-express/internal/metrics"
)

// Response is the API envelope carried by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Handlers holds the HTTP handlers for the SwiftShip API
type Handlers struct {
	quotes   *application.QuoteService
	tracking *application.TrackingService
	metrics  *metrics.Metrics
}

// NewHandlers creates a new Handlers instance
func NewHandlers(quotes *application.QuoteService, tracking *application.TrackingService, m *metrics.Metrics) *Handlers {
	return &Handlers{quotes: quotes, tracking: tracking, metrics: m}
}

// QuoteRequestBody is the request body for quote calculation. Sender
// details, dimensions and package type are optional free text.
type QuoteRequestBody struct {
	SenderName         string  `json:"senderName"`
	SenderEmail        string  `json:"senderEmail"`
	OriginCountry      string  `json:"originCountry" binding:"required"`
	DestinationCountry string  `json:"destinationCountry" binding:"required"`
	ServiceType        string  `json:"serviceType" binding:"required"`
	Weight             float64 `json:"weight"`
	Dimensions         string  `json:"dimensions"`
	PackageType        string  `json:"packageType"`
	InsuranceValue     float64 `json:"insuranceValue"`
}

// CalculateQuote handles POST /api/v1/quotes/calculate
func (h *Handlers) CalculateQuote(c *gin.Context) {
	var body QuoteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	result, err := h.quotes.CreateQuote(c.Request.Context(), domain.QuoteRequest{
		SenderName:         body.SenderName,
		SenderEmail:        body.SenderEmail,
		OriginCountry:      body.OriginCountry,
		DestinationCountry: body.DestinationCountry,
		ServiceType:        body.ServiceType,
		Weight:             body.Weight,
		Dimensions:         body.Dimensions,
		PackageType:        body.PackageType,
		InsuranceValue:     body.InsuranceValue,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.QuotesCreated.Inc()
	c.JSON(http.StatusCreated, Response{Success: true, Data: result})
}

// ConvertQuote handles POST /api/v1/quotes/:quoteId/convert
func (h *Handlers) ConvertQuote(c *gin.Context) {
	quoteID := c.Param("quoteId")

	result, err := h.quotes.ConvertQuoteToShipment(c.Request.Context(), quoteID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.QuotesConverted.Inc()
	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// GetQuote handles GET /api/v1/quotes/:quoteId
func (h *Handlers) GetQuote(c *gin.Context) {
	quoteID := c.Param("quoteId")

	quote, err := h.quotes.GetQuote(c.Request.Context(), quoteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: quote})
}

// ListQuotes handles GET /api/v1/quotes?email=
func (h *Handlers) ListQuotes(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "email query parameter is required"})
		return
	}

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	quotes, err := h.quotes.ListQuotesBySender(c.Request.Context(), email, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: quotes})
}

// TrackShipment handles GET /api/v1/shipments/track/:trackingNumber
func (h *Handlers) TrackShipment(c *gin.Context) {
	trackingNumber := c.Param("trackingNumber")

	shipment, err := h.tracking.Track(c.Request.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, application.ErrShipmentNotFound) {
			h.metrics.TrackingLookups.WithLabelValues("not_found").Inc()
		}
		respondError(c, err)
		return
	}

	h.metrics.TrackingLookups.WithLabelValues("found").Inc()
	c.JSON(http.StatusOK, Response{Success: true, Data: shipment})
}

// TrackingEventBody is the request body for recording a tracking event.
type TrackingEventBody struct {
	Status      string `json:"status" binding:"required"`
	City        string `json:"city" binding:"required"`
	Facility    string `json:"facility"`
	Description string `json:"description"`
}

// AddTrackingEvent handles POST /api/v1/shipments/:trackingNumber/events
func (h *Handlers) AddTrackingEvent(c *gin.Context) {
	trackingNumber := c.Param("trackingNumber")

	var body TrackingEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	shipment, err := h.tracking.AddTrackingEvent(c.Request.Context(), application.AddTrackingEventCommand{
		TrackingNumber: trackingNumber,
		Status:         body.Status,
		City:           body.City,
		Facility:       body.Facility,
		Description:    body.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: shipment})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ReadyCheck handles GET /ready
func (h *Handlers) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// respondError maps service errors onto the envelope with an appropriate
// HTTP status.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, application.ErrQuoteNotFound),
		errors.Is(err, application.ErrShipmentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRoute),
		errors.Is(err, domain.ErrUnknownServiceType),
		errors.Is(err, domain.ErrInvalidShipmentStatus):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrQuoteExpired),
		errors.Is(err, domain.ErrQuoteAlreadyConverted),
		errors.Is(err, domain.ErrShipmentDelivered):
		status = http.StatusConflict
	}

	c.JSON(status, Response{Success: false, Message: err.Error()})
}
