package domain

import "time"

// DomainEvent represents a domain event
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// QuoteCreatedEvent is emitted when a quote is calculated and persisted
type QuoteCreatedEvent struct {
	QuoteID     string    `json:"quoteId"`
	QuoteNumber string    `json:"quoteNumber"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	ServiceType string    `json:"serviceType"`
	TotalPrice  float64   `json:"totalPrice"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (e *QuoteCreatedEvent) EventType() string     { return "swiftship.quotes.quote-created" }
func (e *QuoteCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// QuoteConvertedEvent is emitted when a quote is converted into a shipment
type QuoteConvertedEvent struct {
	QuoteID        string    `json:"quoteId"`
	ShipmentID     string    `json:"shipmentId"`
	TrackingNumber string    `json:"trackingNumber"`
	ConvertedAt    time.Time `json:"convertedAt"`
}

func (e *QuoteConvertedEvent) EventType() string     { return "swiftship.quotes.quote-converted" }
func (e *QuoteConvertedEvent) OccurredAt() time.Time { return e.ConvertedAt }

// ShipmentCreatedEvent is emitted when a shipment is created from a quote
type ShipmentCreatedEvent struct {
	ShipmentID     string    `json:"shipmentId"`
	QuoteID        string    `json:"quoteId"`
	TrackingNumber string    `json:"trackingNumber"`
	ServiceType    string    `json:"serviceType"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (e *ShipmentCreatedEvent) EventType() string     { return "swiftship.shipments.shipment-created" }
func (e *ShipmentCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// TrackingEventAddedEvent is emitted when a tracking update is recorded
type TrackingEventAddedEvent struct {
	ShipmentID     string    `json:"shipmentId"`
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status"`
	Location       string    `json:"location"`
	RecordedAt     time.Time `json:"recordedAt"`
}

func (e *TrackingEventAddedEvent) EventType() string {
	return "swiftship.shipments.tracking-event-added"
}
func (e *TrackingEventAddedEvent) OccurredAt() time.Time { return e.RecordedAt }
