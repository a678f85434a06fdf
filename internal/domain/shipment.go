package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors
var (
	ErrShipmentDelivered     = errors.New("shipment is already delivered")
	ErrInvalidShipmentStatus = errors.New("invalid shipment status")
)

// ShipmentStatus represents the status of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending        ShipmentStatus = "pending"
	ShipmentStatusPickedUp       ShipmentStatus = "picked_up"
	ShipmentStatusInTransit      ShipmentStatus = "in_transit"
	ShipmentStatusOutForDelivery ShipmentStatus = "out_for_delivery"
	ShipmentStatusDelivered      ShipmentStatus = "delivered"
	ShipmentStatusDelayed        ShipmentStatus = "delayed"
	ShipmentStatusException      ShipmentStatus = "exception"
)

var knownStatuses = map[ShipmentStatus]bool{
	ShipmentStatusPending:        true,
	ShipmentStatusPickedUp:       true,
	ShipmentStatusInTransit:      true,
	ShipmentStatusOutForDelivery: true,
	ShipmentStatusDelivered:      true,
	ShipmentStatusDelayed:        true,
	ShipmentStatusException:      true,
}

// ValidShipmentStatus reports whether s is a known shipment status.
func ValidShipmentStatus(s ShipmentStatus) bool {
	return knownStatuses[s]
}

// Location identifies where a shipment currently is.
type Location struct {
	City     string `bson:"city" json:"city"`
	Facility string `bson:"facility" json:"facility"`
}

// TrackingEvent is one entry in a shipment's tracking history. History is
// append-only; insertion order is chronological order.
type TrackingEvent struct {
	Status      ShipmentStatus `bson:"status" json:"status"`
	Location    string         `bson:"location" json:"location"`
	Description string         `bson:"description" json:"description"`
	Timestamp   time.Time      `bson:"timestamp" json:"timestamp"`
}

// Shipment is the aggregate root for a trackable delivery. Shipments are
// created only by converting an accepted quote and are never deleted.
type Shipment struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	ShipmentID        string             `bson:"shipmentId"`
	QuoteID           string             `bson:"quoteId"`
	TrackingNumber    string             `bson:"trackingNumber"`
	Status            ShipmentStatus     `bson:"status"`
	CurrentLocation   *Location          `bson:"currentLocation,omitempty"`
	TrackingHistory   []TrackingEvent    `bson:"trackingHistory"`
	EstimatedDelivery time.Time          `bson:"estimatedDelivery"`
	ServiceType       string             `bson:"serviceType"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
	DomainEvents      []DomainEvent      `bson:"-"`
}

// NewShipment creates a Shipment from a converted quote. The shipment
// starts pending with an empty tracking history.
func NewShipment(quote *Quote, estimatedDelivery time.Time) *Shipment {
	now := time.Now().UTC()
	shipmentID := uuid.New().String()
	trackingNumber := NewTrackingNumber()

	s := &Shipment{
		ShipmentID:        shipmentID,
		QuoteID:           quote.QuoteID,
		TrackingNumber:    trackingNumber,
		Status:            ShipmentStatusPending,
		TrackingHistory:   make([]TrackingEvent, 0),
		EstimatedDelivery: estimatedDelivery,
		ServiceType:       quote.ServiceType,
		CreatedAt:         now,
		UpdatedAt:         now,
		DomainEvents:      make([]DomainEvent, 0),
	}

	s.AddDomainEvent(&ShipmentCreatedEvent{
		ShipmentID:     shipmentID,
		QuoteID:        quote.QuoteID,
		TrackingNumber: trackingNumber,
		ServiceType:    quote.ServiceType,
		CreatedAt:      now,
	})

	return s
}

// AddTrackingEvent appends an event to the tracking history and advances
// the shipment status and current location. Delivered shipments accept no
// further events.
func (s *Shipment) AddTrackingEvent(status ShipmentStatus, city, facility, description string) error {
	if !ValidShipmentStatus(status) {
		return ErrInvalidShipmentStatus
	}
	if s.Status == ShipmentStatusDelivered {
		return ErrShipmentDelivered
	}

	now := time.Now().UTC()
	s.TrackingHistory = append(s.TrackingHistory, TrackingEvent{
		Status:      status,
		Location:    city,
		Description: description,
		Timestamp:   now,
	})
	s.Status = status
	s.CurrentLocation = &Location{City: city, Facility: facility}
	s.UpdatedAt = now

	s.AddDomainEvent(&TrackingEventAddedEvent{
		ShipmentID:     s.ShipmentID,
		TrackingNumber: s.TrackingNumber,
		Status:         string(status),
		Location:       city,
		RecordedAt:     now,
	})

	return nil
}

// LatestEvent returns the most recent tracking event, or nil when the
// history is empty.
func (s *Shipment) LatestEvent() *TrackingEvent {
	if len(s.TrackingHistory) == 0 {
		return nil
	}
	return &s.TrackingHistory[len(s.TrackingHistory)-1]
}

// AddDomainEvent adds a domain event
func (s *Shipment) AddDomainEvent(event DomainEvent) {
	s.DomainEvents = append(s.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (s *Shipment) ClearDomainEvents() {
	s.DomainEvents = make([]DomainEvent, 0)
}

// GetDomainEvents returns all domain events
func (s *Shipment) GetDomainEvents() []DomainEvent {
	return s.DomainEvents
}

// NormalizeTrackingNumber canonicalizes a tracking number for storage and
// lookup. Tracking numbers are matched case-insensitively with surrounding
// whitespace ignored.
func NormalizeTrackingNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// NewTrackingNumber generates a tracking number in the customer-facing
// SS plus nine digits format, e.g. SS482915307.
func NewTrackingNumber() string {
	id := uuid.New()
	n := binary.BigEndian.Uint64(id[:8]) % 1_000_000_000
	return fmt.Sprintf("SS%09d", n)
}
