package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
	"github.com/yokuflik/price-tracker/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoHistoryRepository implements HistoryRepository. Found and expired
// flights go to separate collections so each can be queried on its own.
type MongoHistoryRepository struct {
	found   *mongo.Collection
	expired *mongo.Collection
}

// NewMongoHistoryRepository creates a new flight history repository
func NewMongoHistoryRepository(db *mongo.Database) repository.HistoryRepository {
	found := db.Collection("found_flights")
	expired := db.Collection("expired_flights")

	// Index on flightId for per-flight history queries
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.M{"flightId": 1},
	}
	found.Indexes().CreateOne(ctx, indexModel)
	expired.Indexes().CreateOne(ctx, indexModel)

	return &MongoHistoryRepository{
		found:   found,
		expired: expired,
	}
}

// ArchiveExpired records the final state of a flight whose window passed.
func (r *MongoHistoryRepository) ArchiveExpired(ctx context.Context, flight *entity.TrackedFlight) error {
	record := entity.NewHistoryRecord(flight, entity.ArchiveReasonExpired, time.Now())
	if _, err := r.expired.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("archive expired flight %d: %w", flight.ID, err)
	}
	return nil
}

// ArchiveFoundBetter records a flight at the moment a qualifying price was
// found.
func (r *MongoHistoryRepository) ArchiveFoundBetter(ctx context.Context, flight *entity.TrackedFlight) error {
	record := entity.NewHistoryRecord(flight, entity.ArchiveReasonFoundBetter, time.Now())
	if _, err := r.found.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("archive found flight %d: %w", flight.ID, err)
	}
	return nil
}
