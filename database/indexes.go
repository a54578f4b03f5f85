package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes backing the feed queries on both report
// collections: the three searched fields ascending and the sort key
// descending. CreateMany is a no-op for indexes that already exist, so this
// is safe to run on every startup.
func EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "item_name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "last_seen_location", Value: 1}}},
		{Keys: bson.D{{Key: "date_submitted", Value: -1}}},
	}

	for _, col := range []*mongo.Collection{LostCollection, FoundCollection} {
		if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", col.Name(), err)
		}
	}
	return nil
}
