package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Methods for the database -----

// GetAllComments returns every comment, oldest first. The sort is served
// by idx_comments_createdAt.
func (db *DB) GetAllComments(ctx context.Context) ([]Document, error) {
	sortByCreation := options.Find().SetSort(bson.D{
		{Key: CreatedAtField, Value: 1},
		{Key: IdField, Value: 1},
	})
	return db.findDocuments(ctx, CommentsCollection, sortByCreation)
}

func (db *DB) GetCommentById(ctx context.Context, commentId string) (Document, error) {
	return db.findDocumentById(ctx, CommentsCollection, commentId)
}

// AddComment stores fields as a new comment. The returned document carries
// the assigned _id and timestamps, in the order they were stored.
func (db *DB) AddComment(ctx context.Context, fields Document) (Document, error) {
	coll := db.Collection(CommentsCollection)

	now := primitive.NewDateTimeFromTime(time.Now())
	fields = fields.Without(ProtectedFields...)

	comment := make(Document, 0, len(fields)+3)
	comment = append(comment, bson.E{Key: IdField, Value: primitive.NewObjectID()})
	comment = append(comment, fields...)
	comment = append(comment,
		bson.E{Key: CreatedAtField, Value: now},
		bson.E{Key: UpdatedAtField, Value: now},
	)

	if _, err := coll.InsertOne(ctx, bson.D(comment)); err != nil {
		return nil, errors.Wrap(err, "insert comment")
	}

	return comment, nil
}

// UpdateCommentById sets the given fields, keeping the ones not mentioned,
// and returns the comment as it is after the update.
func (db *DB) UpdateCommentById(ctx context.Context, commentId string, fields Document) (Document, error) {
	oid, err := ParseId(commentId)
	if err != nil {
		return nil, err
	}

	coll := db.Collection(CommentsCollection)

	set := bson.D(fields.Without(ProtectedFields...))
	set = append(set, bson.E{Key: UpdatedAtField, Value: primitive.NewDateTimeFromTime(time.Now())})

	filter := bson.M{IdField: oid}
	update := bson.M{"$set": set}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out bson.D
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, errors.Wrapf(err, "update comment %s", commentId)
	}

	return Document(out), nil
}

// DeleteCommentById removes the comment and returns it as it was stored.
func (db *DB) DeleteCommentById(ctx context.Context, commentId string) (Document, error) {
	oid, err := ParseId(commentId)
	if err != nil {
		return nil, err
	}

	coll := db.Collection(CommentsCollection)

	var out bson.D
	if err := coll.FindOneAndDelete(ctx, bson.M{IdField: oid}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, errors.Wrapf(err, "delete comment %s", commentId)
	}

	return Document(out), nil
}
