package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
)

// Errors
var (
	ErrQuoteNotFound = errors.New("quote not found")
)

// QuoteService is the application service for quote pricing and
// quote-to-shipment conversion.
type QuoteService struct {
	quoteRepo    domain.QuoteRepository
	shipmentRepo domain.ShipmentRepository
	rates        domain.RateTable
	catalog      domain.ServiceCatalog
	logger       *slog.Logger
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quoteRepo domain.QuoteRepository, shipmentRepo domain.ShipmentRepository, rates domain.RateTable, catalog domain.ServiceCatalog, logger *slog.Logger) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		shipmentRepo: shipmentRepo,
		rates:        rates,
		catalog:      catalog,
		logger:       logger,
	}
}

// CreateQuote prices a quote request, persists the quote and returns it
// with its generated id and number.
func (s *QuoteService) CreateQuote(ctx context.Context, req domain.QuoteRequest) (*QuoteResultDTO, error) {
	s.logger.Info("Creating quote",
		"origin", req.OriginCountry,
		"destination", req.DestinationCountry,
		"serviceType", req.ServiceType,
	)

	quote, err := domain.NewQuote(req, s.rates, s.catalog)
	if err != nil {
		return nil, err
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	s.logger.Info("Quote created",
		"quoteId", quote.QuoteID,
		"quoteNumber", quote.QuoteNumber,
		"totalPrice", quote.TotalPrice,
	)

	deliveryEstimate := ""
	if def, ok := s.catalog.Lookup(quote.ServiceType); ok {
		deliveryEstimate = def.DeliveryWindow
	}

	return &QuoteResultDTO{
		Quote:            *mapQuoteToDTO(quote),
		Summary:          quoteSummary(quote, s.catalog),
		DeliveryEstimate: deliveryEstimate,
	}, nil
}

// ConvertQuoteToShipment converts an accepted quote into a shipment.
// Conversion is idempotent: converting an already-converted quote returns
// the existing shipment instead of creating a second one.
func (s *QuoteService) ConvertQuoteToShipment(ctx context.Context, quoteID string) (*ConversionResultDTO, error) {
	s.logger.Info("Converting quote to shipment", "quoteId", quoteID)

	quote, err := s.quoteRepo.FindByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find quote: %w", err)
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}

	if quote.Converted() {
		existing, err := s.shipmentRepo.FindByQuoteID(ctx, quote.QuoteID)
		if err != nil {
			return nil, fmt.Errorf("failed to find existing shipment: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("quote %s marked converted but shipment missing", quote.QuoteID)
		}
		s.logger.Info("Quote already converted, returning existing shipment",
			"quoteId", quoteID,
			"trackingNumber", existing.TrackingNumber,
		)
		return conversionResult(existing), nil
	}

	now := time.Now().UTC()
	if quote.Expired(now) {
		return nil, domain.ErrQuoteExpired
	}

	def, ok := s.catalog.Lookup(quote.ServiceType)
	if !ok {
		return nil, domain.ErrUnknownServiceType
	}
	estimatedDelivery := now.AddDate(0, 0, def.MaxTransitDays)

	shipment := domain.NewShipment(quote, estimatedDelivery)
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		// The unique index on quoteId rejects a second shipment for the
		// same quote. That happens when an earlier conversion saved the
		// shipment but failed before recording it on the quote, or when a
		// concurrent conversion won the race; either way the stored
		// shipment is the conversion result.
		existing, findErr := s.shipmentRepo.FindByQuoteID(ctx, quote.QuoteID)
		if findErr != nil || existing == nil {
			return nil, fmt.Errorf("failed to save shipment: %w", err)
		}

		s.logger.Info("Shipment already exists for quote, returning it",
			"quoteId", quoteID,
			"trackingNumber", existing.TrackingNumber,
		)

		if markErr := quote.MarkConverted(existing.ShipmentID, existing.TrackingNumber); markErr == nil {
			if updateErr := s.quoteRepo.Update(ctx, quote); updateErr != nil {
				s.logger.Warn("Failed to record conversion on quote",
					"quoteId", quoteID,
					"error", updateErr,
				)
			}
		}

		return conversionResult(existing), nil
	}

	if err := quote.MarkConverted(shipment.ShipmentID, shipment.TrackingNumber); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	s.logger.Info("Quote converted",
		"quoteId", quoteID,
		"shipmentId", shipment.ShipmentID,
		"trackingNumber", shipment.TrackingNumber,
	)

	return conversionResult(shipment), nil
}

// GetQuote gets a quote by its quote ID
func (s *QuoteService) GetQuote(ctx context.Context, quoteID string) (*QuoteDTO, error) {
	quote, err := s.quoteRepo.FindByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find quote: %w", err)
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}
	return mapQuoteToDTO(quote), nil
}

// ListQuotesBySender lists recent quotes for a sender email, newest first.
func (s *QuoteService) ListQuotesBySender(ctx context.Context, email string, limit int) ([]*QuoteDTO, error) {
	quotes, err := s.quoteRepo.FindBySenderEmail(ctx, email, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	dtos := make([]*QuoteDTO, len(quotes))
	for i, q := range quotes {
		dtos[i] = mapQuoteToDTO(q)
	}
	return dtos, nil
}

func conversionResult(s *domain.Shipment) *ConversionResultDTO {
	return &ConversionResultDTO{
		TrackingNumber:    s.TrackingNumber,
		ShipmentID:        s.ShipmentID,
		Status:            string(s.Status),
		EstimatedDelivery: s.EstimatedDelivery,
	}
}
