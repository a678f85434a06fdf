package domain

import "context"

// QuoteRepository defines the interface for quote persistence
type QuoteRepository interface {
	// Save persists a new quote
	Save(ctx context.Context, quote *Quote) error

	// FindByQuoteID finds a quote by its quote ID
	FindByQuoteID(ctx context.Context, quoteID string) (*Quote, error)

	// FindBySenderEmail finds recent quotes for a sender, newest first
	FindBySenderEmail(ctx context.Context, email string, limit int) ([]*Quote, error)

	// Update updates a quote (only the conversion link ever changes)
	Update(ctx context.Context, quote *Quote) error
}

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	// Save persists a new shipment
	Save(ctx context.Context, shipment *Shipment) error

	// FindByTrackingNumber finds a shipment by normalized tracking number
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)

	// FindByQuoteID finds the shipment created from a quote
	FindByQuoteID(ctx context.Context, quoteID string) (*Shipment, error)

	// Update updates a shipment
	Update(ctx context.Context, shipment *Shipment) error
}
