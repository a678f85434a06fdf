package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/bigkboy4lyf/swiftship-express/internal/api/http"
	"github.com/bigkboy4lyf/swiftship-express/internal/application"
	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
	"github.com/bigkboy4lyf/swiftship-express/internal/metrics"
)

type memQuoteRepo struct {
	quotes map[string]*domain.Quote
}

func (r *memQuoteRepo) Save(_ context.Context, q *domain.Quote) error {
	r.quotes[q.QuoteID] = q
	return nil
}

func (r *memQuoteRepo) FindByQuoteID(_ context.Context, quoteID string) (*domain.Quote, error) {
	return r.quotes[quoteID], nil
}

func (r *memQuoteRepo) FindBySenderEmail(_ context.Context, email string, limit int) ([]*domain.Quote, error) {
	var matches []*domain.Quote
	for _, q := range r.quotes {
		if q.SenderEmail == email {
			matches = append(matches, q)
		}
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *memQuoteRepo) Update(_ context.Context, q *domain.Quote) error {
	r.quotes[q.QuoteID] = q
	return nil
}

type memShipmentRepo struct {
	shipments map[string]*domain.Shipment
}

func (r *memShipmentRepo) Save(_ context.Context, s *domain.Shipment) error {
	r.shipments[s.ShipmentID] = s
	return nil
}

func (r *memShipmentRepo) FindByTrackingNumber(_ context.Context, trackingNumber string) (*domain.Shipment, error) {
	for _, s := range r.shipments {
		if s.TrackingNumber == trackingNumber {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memShipmentRepo) FindByQuoteID(_ context.Context, quoteID string) (*domain.Shipment, error) {
	for _, s := range r.shipments {
		if s.QuoteID == quoteID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memShipmentRepo) Update(_ context.Context, s *domain.Shipment) error {
	r.shipments[s.ShipmentID] = s
	return nil
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	quoteRepo := &memQuoteRepo{quotes: make(map[string]*domain.Quote)}
	shipmentRepo := &memShipmentRepo{shipments: make(map[string]*domain.Shipment)}

	quoteSvc := application.NewQuoteService(quoteRepo, shipmentRepo,
		domain.DefaultRateTable(), domain.DefaultServiceCatalog(), logger)
	trackingSvc := application.NewTrackingService(shipmentRepo, logger)

	handlers := httpapi.NewHandlers(quoteSvc, trackingSvc, metrics.New("test"))

	router := gin.New()
	httpapi.SetupRoutes(router, handlers)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func validQuoteBody() map[string]any {
	return map[string]any{
		"senderName":         "Ada Lovelace",
		"senderEmail":        "ada@example.com",
		"originCountry":      "US",
		"destinationCountry": "UK",
		"serviceType":        "express",
		"weight":             2.5,
		"insuranceValue":     500,
	}
}

func createQuote(t *testing.T, router *gin.Engine) map[string]any {
	t.Helper()

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/quotes/calculate", validQuoteBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var data struct {
		Quote map[string]any `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &data))
	return data.Quote
}

func TestCalculateQuoteEndpoint(t *testing.T) {
	router := setupTestRouter()

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/quotes/calculate", validQuoteBody())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, "true", string(envelope["success"]))

	var data struct {
		Quote            map[string]any `json:"quote"`
		Summary          string         `json:"summary"`
		DeliveryEstimate string         `json:"deliveryEstimate"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &data))
	assert.Equal(t, 27.0, data.Quote["basePrice"])
	assert.Equal(t, 5.0, data.Quote["insuranceCost"])
	assert.Equal(t, 2.03, data.Quote["surcharge"])
	assert.Equal(t, 34.03, data.Quote["totalPrice"])
	assert.Equal(t, "Express Delivery from United States to United Kingdom", data.Summary)
	assert.Equal(t, "1-3 days", data.DeliveryEstimate)
}

func TestCalculateQuoteEndpoint_MissingFields(t *testing.T) {
	router := setupTestRouter()

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/quotes/calculate", map[string]any{
		"originCountry": "US",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, "false", string(envelope["success"]))
}

func TestCalculateQuoteEndpoint_SameCountry(t *testing.T) {
	router := setupTestRouter()

	body := validQuoteBody()
	body["destinationCountry"] = "US"

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/quotes/calculate", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, "false", string(envelope["success"]))
}

func TestGetQuoteEndpoint(t *testing.T) {
	router := setupTestRouter()
	quote := createQuote(t, router)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/quotes/"+quote["quoteId"].(string), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "true", string(envelope["success"]))
}

func TestGetQuoteEndpoint_NotFound(t *testing.T) {
	router := setupTestRouter()

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/quotes/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, "false", string(envelope["success"]))
}

func TestConvertQuoteEndpoint(t *testing.T) {
	router := setupTestRouter()
	quote := createQuote(t, router)
	quoteID := quote["quoteId"].(string)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/quotes/"+quoteID+"/convert", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var first struct {
		TrackingNumber string `json:"trackingNumber"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &first))
	assert.Regexp(t, `^SS\d{9}$`, first.TrackingNumber)

	// Converting again returns the same shipment
	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/quotes/"+quoteID+"/convert", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var second struct {
		TrackingNumber string `json:"trackingNumber"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &second))
	assert.Equal(t, first.TrackingNumber, second.TrackingNumber)
}

func TestConvertQuoteEndpoint_NotFound(t *testing.T) {
	router := setupTestRouter()

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/quotes/missing/convert", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, "false", string(envelope["success"]))
}

func TestTrackShipmentEndpoint(t *testing.T) {
	router := setupTestRouter()
	quote := createQuote(t, router)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/quotes/"+quote["quoteId"].(string)+"/convert", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var conversion struct {
		TrackingNumber string `json:"trackingNumber"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &conversion))

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/shipments/track/"+conversion.TrackingNumber, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var shipment struct {
		TrackingNumber string `json:"trackingNumber"`
		Status         string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &shipment))
	assert.Equal(t, conversion.TrackingNumber, shipment.TrackingNumber)
	assert.Equal(t, "pending", shipment.Status)
}

func TestTrackShipmentEndpoint_NotFound(t *testing.T) {
	router := setupTestRouter()

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/shipments/track/SS000000000", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, "false", string(envelope["success"]))
}

func TestAddTrackingEventEndpoint(t *testing.T) {
	router := setupTestRouter()
	quote := createQuote(t, router)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/quotes/"+quote["quoteId"].(string)+"/convert", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var conversion struct {
		TrackingNumber string `json:"trackingNumber"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &conversion))

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/shipments/"+conversion.TrackingNumber+"/events", map[string]any{
		"status":      "in_transit",
		"city":        "London",
		"facility":    "Heathrow Gateway",
		"description": "Arrived at destination country",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var shipment struct {
		Status          string           `json:"status"`
		TrackingHistory []map[string]any `json:"trackingHistory"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &shipment))
	assert.Equal(t, "in_transit", shipment.Status)
	assert.Len(t, shipment.TrackingHistory, 1)
}

func TestHealthEndpoints(t *testing.T) {
	router := setupTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
