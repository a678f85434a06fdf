package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors
var (
	ErrQuoteAlreadyConverted = errors.New("quote has already been converted to a shipment")
	ErrQuoteExpired          = errors.New("quote has expired")
)

// QuoteValidity is how long a quote can be converted into a shipment.
const QuoteValidity = 30 * 24 * time.Hour

// QuoteRequest carries the user input for a quote calculation.
type QuoteRequest struct {
	SenderName         string  `json:"senderName"`
	SenderEmail        string  `json:"senderEmail"`
	OriginCountry      string  `json:"originCountry"`
	DestinationCountry string  `json:"destinationCountry"`
	ServiceType        string  `json:"serviceType"`
	Weight             float64 `json:"weight"`
	Dimensions         string  `json:"dimensions"`
	PackageType        string  `json:"packageType"`
	InsuranceValue     float64 `json:"insuranceValue"`
}

// Quote is the aggregate root for a priced, time-bounded shipping offer.
// A quote is immutable once created, except for the one-time link to the
// shipment it is converted into.
type Quote struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	QuoteID            string             `bson:"quoteId"`
	QuoteNumber        string             `bson:"quoteNumber"`
	SenderName         string             `bson:"senderName,omitempty"`
	SenderEmail        string             `bson:"senderEmail,omitempty"`
	OriginCountry      string             `bson:"originCountry"`
	DestinationCountry string             `bson:"destinationCountry"`
	ServiceType        string             `bson:"serviceType"`
	Weight             float64            `bson:"weight"`
	Dimensions         string             `bson:"dimensions,omitempty"`
	PackageType        string             `bson:"packageType,omitempty"`
	InsuranceValue     float64            `bson:"insuranceValue"`
	BasePrice          float64            `bson:"basePrice"`
	InsuranceCost      float64            `bson:"insuranceCost"`
	Surcharge          float64            `bson:"surcharge"`
	TotalPrice         float64            `bson:"totalPrice"`
	ShipmentID         string             `bson:"shipmentId,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
	ValidUntil         time.Time          `bson:"validUntil"`
	DomainEvents       []DomainEvent      `bson:"-"`
}

// NewQuote prices a quote request and creates the Quote aggregate.
func NewQuote(req QuoteRequest, rates RateTable, catalog ServiceCatalog) (*Quote, error) {
	breakdown, err := CalculateQuote(rates, catalog, req.OriginCountry, req.DestinationCountry, req.ServiceType, req.Weight, req.InsuranceValue)
	if err != nil {
		return nil, err
	}

	weight := req.Weight
	if weight <= 0 {
		weight = DefaultWeight
	}
	insurance := req.InsuranceValue
	if insurance < 0 {
		insurance = 0
	}

	now := time.Now().UTC()
	quoteID := uuid.New().String()
	quoteNumber := newQuoteNumber(now)

	q := &Quote{
		QuoteID:            quoteID,
		QuoteNumber:        quoteNumber,
		SenderName:         strings.TrimSpace(req.SenderName),
		SenderEmail:        strings.ToLower(strings.TrimSpace(req.SenderEmail)),
		OriginCountry:      NormalizeCountry(req.OriginCountry),
		DestinationCountry: NormalizeCountry(req.DestinationCountry),
		ServiceType:        normalizeServiceType(req.ServiceType),
		Weight:             weight,
		Dimensions:         strings.TrimSpace(req.Dimensions),
		PackageType:        strings.TrimSpace(req.PackageType),
		InsuranceValue:     insurance,
		BasePrice:          breakdown.BasePrice,
		InsuranceCost:      breakdown.InsuranceCost,
		Surcharge:          breakdown.Surcharge,
		TotalPrice:         breakdown.TotalPrice,
		CreatedAt:          now,
		UpdatedAt:          now,
		ValidUntil:         now.Add(QuoteValidity),
		DomainEvents:       make([]DomainEvent, 0),
	}

	q.AddDomainEvent(&QuoteCreatedEvent{
		QuoteID:     quoteID,
		QuoteNumber: quoteNumber,
		Origin:      q.OriginCountry,
		Destination: q.DestinationCountry,
		ServiceType: q.ServiceType,
		TotalPrice:  q.TotalPrice,
		CreatedAt:   now,
	})

	return q, nil
}

// Converted reports whether the quote has been converted into a shipment.
func (q *Quote) Converted() bool {
	return q.ShipmentID != ""
}

// Expired reports whether the quote's validity window has passed.
func (q *Quote) Expired(now time.Time) bool {
	return now.After(q.ValidUntil)
}

// MarkConverted records the one-time conversion of this quote into a
// shipment. A quote can only ever be converted once.
func (q *Quote) MarkConverted(shipmentID, trackingNumber string) error {
	if q.Converted() {
		return ErrQuoteAlreadyConverted
	}

	now := time.Now().UTC()
	q.ShipmentID = shipmentID
	q.UpdatedAt = now

	q.AddDomainEvent(&QuoteConvertedEvent{
		QuoteID:        q.QuoteID,
		ShipmentID:     shipmentID,
		TrackingNumber: trackingNumber,
		ConvertedAt:    now,
	})

	return nil
}

// AddDomainEvent adds a domain event
func (q *Quote) AddDomainEvent(event DomainEvent) {
	q.DomainEvents = append(q.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (q *Quote) ClearDomainEvents() {
	q.DomainEvents = make([]DomainEvent, 0)
}

// GetDomainEvents returns all domain events
func (q *Quote) GetDomainEvents() []DomainEvent {
	return q.DomainEvents
}

// newQuoteNumber generates a human-readable quote number such as
// QT-20260901-4F2A1C.
func newQuoteNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("QT-%s-%s", now.Format("20060102"), suffix)
}
