package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
)

// ShipmentRepository implements domain.ShipmentRepository using MongoDB.
// Tracking numbers are stored normalized, so lookups are exact matches.
type ShipmentRepository struct {
	collection *mongo.Collection
}

// NewShipmentRepository creates a new ShipmentRepository
func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	collection := db.Collection("shipments")

	// Create indexes. The unique index on quoteId guarantees at most one
	// shipment per quote even if two conversions race.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trackingNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "quoteId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &ShipmentRepository{collection: collection}
}

// Save persists a new shipment
func (r *ShipmentRepository) Save(ctx context.Context, shipment *domain.Shipment) error {
	result, err := r.collection.InsertOne(ctx, shipment)
	if err != nil {
		return fmt.Errorf("failed to insert shipment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		shipment.ID = oid
	}

	return nil
}

// FindByTrackingNumber finds a shipment by normalized tracking number
func (r *ShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	var shipment domain.Shipment
	filter := bson.M{"trackingNumber": domain.NormalizeTrackingNumber(trackingNumber)}

	err := r.collection.FindOne(ctx, filter).Decode(&shipment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shipment: %w", err)
	}

	return &shipment, nil
}

// FindByQuoteID finds the shipment created from a quote
func (r *ShipmentRepository) FindByQuoteID(ctx context.Context, quoteID string) (*domain.Shipment, error) {
	var shipment domain.Shipment
	err := r.collection.FindOne(ctx, bson.M{"quoteId": quoteID}).Decode(&shipment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shipment: %w", err)
	}

	return &shipment, nil
}

// Update updates a shipment
func (r *ShipmentRepository) Update(ctx context.Context, shipment *domain.Shipment) error {
	shipment.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"shipmentId": shipment.ShipmentID},
		shipment,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipment: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("shipment not found: %s", shipment.ShipmentID)
	}

	return nil
}
