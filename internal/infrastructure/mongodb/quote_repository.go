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

// QuoteRepository implements domain.QuoteRepository using MongoDB
type QuoteRepository struct {
	collection *mongo.Collection
}

// NewQuoteRepository creates a new QuoteRepository
func NewQuoteRepository(db *mongo.Database) *QuoteRepository {
	collection := db.Collection("quotes")

	// Create indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "quoteId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "quoteNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "senderEmail", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &QuoteRepository{collection: collection}
}

// Save persists a new quote
func (r *QuoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	result, err := r.collection.InsertOne(ctx, quote)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		quote.ID = oid
	}

	return nil
}

// FindByQuoteID finds a quote by its quote ID
func (r *QuoteRepository) FindByQuoteID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.collection.FindOne(ctx, bson.M{"quoteId": quoteID}).Decode(&quote)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find quote: %w", err)
	}

	return &quote, nil
}

// FindBySenderEmail finds recent quotes for a sender, newest first
func (r *QuoteRepository) FindBySenderEmail(ctx context.Context, email string, limit int) ([]*domain.Quote, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"senderEmail": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find quotes: %w", err)
	}
	defer cursor.Close(ctx)

	var quotes []*domain.Quote
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}

	return quotes, nil
}

// Update updates a quote
func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	quote.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"quoteId": quote.QuoteID},
		quote,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("quote not found: %s", quote.QuoteID)
	}

	return nil
}
