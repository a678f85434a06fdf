package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
)

// Errors
var (
	ErrShipmentNotFound = errors.New("shipment not found")
)

// AddTrackingEventCommand represents a command to record a tracking update.
type AddTrackingEventCommand struct {
	TrackingNumber string `json:"trackingNumber"`
	Status         string `json:"status"`
	City           string `json:"city"`
	Facility       string `json:"facility"`
	Description    string `json:"description"`
}

// TrackingService is the application service for shipment tracking.
type TrackingService struct {
	shipmentRepo domain.ShipmentRepository
	logger       *slog.Logger
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(shipmentRepo domain.ShipmentRepository, logger *slog.Logger) *TrackingService {
	return &TrackingService{
		shipmentRepo: shipmentRepo,
		logger:       logger,
	}
}

// Track resolves a tracking number to the shipment's current state. The
// match is case-insensitive with surrounding whitespace ignored.
func (s *TrackingService) Track(ctx context.Context, trackingNumber string) (*ShipmentDTO, error) {
	number := domain.NormalizeTrackingNumber(trackingNumber)

	shipment, err := s.shipmentRepo.FindByTrackingNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to find shipment: %w", err)
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}

	return mapShipmentToDTO(shipment), nil
}

// AddTrackingEvent appends a tracking event to a shipment and advances its
// status.
func (s *TrackingService) AddTrackingEvent(ctx context.Context, cmd AddTrackingEventCommand) (*ShipmentDTO, error) {
	number := domain.NormalizeTrackingNumber(cmd.TrackingNumber)
	s.logger.Info("Recording tracking event", "trackingNumber", number, "status", cmd.Status)

	shipment, err := s.shipmentRepo.FindByTrackingNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to find shipment: %w", err)
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}

	if err := shipment.AddTrackingEvent(domain.ShipmentStatus(cmd.Status), cmd.City, cmd.Facility, cmd.Description); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, fmt.Errorf("failed to update shipment: %w", err)
	}

	s.logger.Info("Tracking event recorded",
		"trackingNumber", number,
		"status", shipment.Status,
		"events", len(shipment.TrackingHistory),
	)

	return mapShipmentToDTO(shipment), nil
}
