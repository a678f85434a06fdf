package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// TransportError marks a network-level failure: the server was unreachable,
// the request timed out, or the response carried a non-2xx status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RejectionError marks a well-formed 2xx response whose envelope reported
// success=false. The server handled the request and declined it.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("server rejection: %s", e.Message)
}

// RemoteAPI is the remote quote service as seen from the client side.
// Implementations return *TransportError or *RejectionError so callers can
// apply the fallback policy without inspecting transport details.
type RemoteAPI interface {
	CreateQuote(ctx context.Context, form QuoteForm) (*RemoteQuote, error)
	Track(ctx context.Context, trackingNumber string) (*RemoteShipment, error)
	ConvertQuote(ctx context.Context, quoteID string) (*RemoteConversion, error)
}

// RemoteQuote is the quote payload returned by the remote service.
type RemoteQuote struct {
	QuoteID            string  `json:"quoteId"`
	QuoteNumber        string  `json:"quoteNumber"`
	OriginCountry      string  `json:"originCountry"`
	DestinationCountry string  `json:"destinationCountry"`
	ServiceType        string  `json:"serviceType"`
	Weight             float64 `json:"weight"`
	BasePrice          float64 `json:"basePrice"`
	InsuranceCost      float64 `json:"insuranceCost"`
	Surcharge          float64 `json:"surcharge"`
	TotalPrice         float64 `json:"totalPrice"`
}

// RemoteLocation mirrors the server's location payload.
type RemoteLocation struct {
	City     string `json:"city"`
	Facility string `json:"facility"`
}

// RemoteTrackingEvent mirrors the server's tracking event payload.
type RemoteTrackingEvent struct {
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// RemoteShipment is the shipment payload returned by the remote service.
type RemoteShipment struct {
	TrackingNumber    string                `json:"trackingNumber"`
	Status            string                `json:"status"`
	CurrentLocation   *RemoteLocation       `json:"currentLocation,omitempty"`
	TrackingHistory   []RemoteTrackingEvent `json:"trackingHistory"`
	EstimatedDelivery time.Time             `json:"estimatedDelivery"`
}

// RemoteConversion is the result of converting a quote into a shipment.
type RemoteConversion struct {
	TrackingNumber    string    `json:"trackingNumber"`
	ShipmentID        string    `json:"shipmentId"`
	Status            string    `json:"status"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

// envelope is the standard response wrapper used by the remote service.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// quoteResultData unwraps the create-quote data payload.
type quoteResultData struct {
	Quote RemoteQuote `json:"quote"`
}

// HTTPRemote calls the quote service over HTTP. Transport round trips run
// through a circuit breaker so a down server stops costing a full timeout
// on every action; an open breaker surfaces as a TransportError.
type HTTPRemote struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewHTTPRemote creates a remote API client against baseURL, e.g.
// "http://localhost:5000".
func NewHTTPRemote(baseURL string, logger *slog.Logger) *HTTPRemote {
	settings := gobreaker.Settings{
		Name:        "quote-service",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &HTTPRemote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cb:      gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// CreateQuote submits a quote request to the remote service.
func (r *HTTPRemote) CreateQuote(ctx context.Context, form QuoteForm) (*RemoteQuote, error) {
	var data quoteResultData
	if err := r.doJSON(ctx, http.MethodPost, "/api/v1/quotes/calculate", form, &data); err != nil {
		return nil, err
	}
	return &data.Quote, nil
}

// Track looks up a shipment by tracking number.
func (r *HTTPRemote) Track(ctx context.Context, trackingNumber string) (*RemoteShipment, error) {
	var shipment RemoteShipment
	path := "/api/v1/shipments/track/" + trackingNumber
	if err := r.doJSON(ctx, http.MethodGet, path, nil, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

// ConvertQuote asks the remote service to convert a stored quote into a
// shipment.
func (r *HTTPRemote) ConvertQuote(ctx context.Context, quoteID string) (*RemoteConversion, error) {
	var conversion RemoteConversion
	path := "/api/v1/quotes/" + quoteID + "/convert"
	if err := r.doJSON(ctx, http.MethodPost, path, nil, &conversion); err != nil {
		return nil, err
	}
	return &conversion, nil
}

// doJSON performs one request and decodes the response envelope into out.
// The transport round trip runs inside the circuit breaker; envelope
// interpretation happens outside it, so a server that answers with
// success=false does not count against the breaker.
func (r *HTTPRemote) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := r.cb.Execute(func() (interface{}, error) {
		resp, err := r.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return payload, nil
	})
	if err != nil {
		return &TransportError{Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw.([]byte), &env); err != nil {
		return &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Success {
		return &RejectionError{Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &TransportError{Err: fmt.Errorf("decode payload: %w", err)}
		}
	}
	return nil
}
