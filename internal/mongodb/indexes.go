package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCommentsCollection creates the comments collection when it is
// missing, plus the indexes the listing relies on. Safe to run repeatedly.
func (db *DB) EnsureCommentsCollection(ctx context.Context) ([]string, error) {
	database := db.Database()

	names, err := database.ListCollectionNames(ctx, bson.M{"name": CommentsCollection})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	if len(names) == 0 {
		if err := database.CreateCollection(ctx, CommentsCollection); err != nil {
			return nil, fmt.Errorf("failed to create collection '%s': %w", CommentsCollection, err)
		}
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: CreatedAtField, Value: 1}},
			Options: options.Index().SetName("idx_comments_createdAt"),
		},
		{
			Keys:    bson.D{{Key: UpdatedAtField, Value: -1}},
			Options: options.Index().SetName("idx_comments_updatedAt"),
		},
	}

	created, err := database.Collection(CommentsCollection).Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment indexes: %w", err)
	}

	return created, nil
}

// DropCommentIndexes deletes every index of the comments collection except
// the default _id_ index, which cannot be deleted.
func (db *DB) DropCommentIndexes(ctx context.Context) ([]string, error) {
	coll := db.Collection(CommentsCollection)

	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes for collection '%s': %w", CommentsCollection, err)
	}
	defer cursor.Close(ctx)

	var dropped []string
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			return dropped, fmt.Errorf("failed to decode index for collection '%s': %w", CommentsCollection, err)
		}

		indexName, ok := index["name"].(string)
		if !ok || indexName == "_id_" {
			continue
		}

		if _, err := coll.Indexes().DropOne(ctx, indexName); err != nil {
			return dropped, fmt.Errorf("failed to delete index '%s' from collection '%s': %w", indexName, CommentsCollection, err)
		}
		dropped = append(dropped, indexName)
	}

	if err := cursor.Err(); err != nil {
		return dropped, fmt.Errorf("cursor error for collection '%s': %w", CommentsCollection, err)
	}

	return dropped, nil
}
