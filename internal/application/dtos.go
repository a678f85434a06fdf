package application

import (
	"fmt"
	"time"

	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
)

// QuoteDTO represents a quote for API responses. Monetary values are
// rounded to two decimals here, at the presentation boundary.
type QuoteDTO struct {
	QuoteID            string    `json:"quoteId"`
	QuoteNumber        string    `json:"quoteNumber"`
	SenderName         string    `json:"senderName,omitempty"`
	SenderEmail        string    `json:"senderEmail,omitempty"`
	OriginCountry      string    `json:"originCountry"`
	DestinationCountry string    `json:"destinationCountry"`
	ServiceType        string    `json:"serviceType"`
	Weight             float64   `json:"weight"`
	Dimensions         string    `json:"dimensions,omitempty"`
	PackageType        string    `json:"packageType,omitempty"`
	InsuranceValue     float64   `json:"insuranceValue"`
	BasePrice          float64   `json:"basePrice"`
	InsuranceCost      float64   `json:"insuranceCost"`
	Surcharge          float64   `json:"surcharge"`
	TotalPrice         float64   `json:"totalPrice"`
	Converted          bool      `json:"converted"`
	CreatedAt          time.Time `json:"createdAt"`
	ValidUntil         time.Time `json:"validUntil"`
}

// QuoteResultDTO is the payload returned by quote creation.
type QuoteResultDTO struct {
	Quote            QuoteDTO `json:"quote"`
	Summary          string   `json:"summary"`
	DeliveryEstimate string   `json:"deliveryEstimate"`
}

// ConversionResultDTO is the payload returned by quote conversion.
type ConversionResultDTO struct {
	TrackingNumber    string    `json:"trackingNumber"`
	ShipmentID        string    `json:"shipmentId"`
	Status            string    `json:"status"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

// LocationDTO represents a shipment location
type LocationDTO struct {
	City     string `json:"city"`
	Facility string `json:"facility"`
}

// TrackingEventDTO represents one tracking history entry
type TrackingEventDTO struct {
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// ShipmentDTO represents a shipment for API responses
type ShipmentDTO struct {
	ShipmentID        string             `json:"shipmentId"`
	QuoteID           string             `json:"quoteId"`
	TrackingNumber    string             `json:"trackingNumber"`
	Status            string             `json:"status"`
	CurrentLocation   *LocationDTO       `json:"currentLocation,omitempty"`
	TrackingHistory   []TrackingEventDTO `json:"trackingHistory"`
	EstimatedDelivery time.Time          `json:"estimatedDelivery"`
	ServiceType       string             `json:"serviceType"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// mapQuoteToDTO maps a domain Quote to DTO
func mapQuoteToDTO(q *domain.Quote) *QuoteDTO {
	if q == nil {
		return nil
	}

	return &QuoteDTO{
		QuoteID:            q.QuoteID,
		QuoteNumber:        q.QuoteNumber,
		SenderName:         q.SenderName,
		SenderEmail:        q.SenderEmail,
		OriginCountry:      q.OriginCountry,
		DestinationCountry: q.DestinationCountry,
		ServiceType:        q.ServiceType,
		Weight:             q.Weight,
		Dimensions:         q.Dimensions,
		PackageType:        q.PackageType,
		InsuranceValue:     q.InsuranceValue,
		BasePrice:          domain.Round2(q.BasePrice),
		InsuranceCost:      domain.Round2(q.InsuranceCost),
		Surcharge:          domain.Round2(q.Surcharge),
		TotalPrice:         domain.Round2(q.TotalPrice),
		Converted:          q.Converted(),
		CreatedAt:          q.CreatedAt,
		ValidUntil:         q.ValidUntil,
	}
}

// mapShipmentToDTO maps a domain Shipment to DTO
func mapShipmentToDTO(s *domain.Shipment) *ShipmentDTO {
	if s == nil {
		return nil
	}

	history := make([]TrackingEventDTO, len(s.TrackingHistory))
	for i, ev := range s.TrackingHistory {
		history[i] = TrackingEventDTO{
			Status:      string(ev.Status),
			Location:    ev.Location,
			Description: ev.Description,
			Timestamp:   ev.Timestamp,
		}
	}

	dto := &ShipmentDTO{
		ShipmentID:        s.ShipmentID,
		QuoteID:           s.QuoteID,
		TrackingNumber:    s.TrackingNumber,
		Status:            string(s.Status),
		TrackingHistory:   history,
		EstimatedDelivery: s.EstimatedDelivery,
		ServiceType:       s.ServiceType,
		CreatedAt:         s.CreatedAt,
	}

	if s.CurrentLocation != nil {
		dto.CurrentLocation = &LocationDTO{
			City:     s.CurrentLocation.City,
			Facility: s.CurrentLocation.Facility,
		}
	}

	return dto
}

// quoteSummary builds a one-line description of a priced route.
func quoteSummary(q *domain.Quote, catalog domain.ServiceCatalog) string {
	serviceName := q.ServiceType
	if def, ok := catalog.Lookup(q.ServiceType); ok {
		serviceName = def.DisplayName
	}
	return fmt.Sprintf("%s from %s to %s",
		serviceName,
		domain.CountryName(q.OriginCountry),
		domain.CountryName(q.DestinationCountry),
	)
}
