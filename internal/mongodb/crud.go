package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResolveFilterAndOptionsSearch picks the bson.M filter and the find options
// out of args. Other values are ignored.
func ResolveFilterAndOptionsSearch(args ...any) (bson.M, []*options.FindOptions) {
	filter := bson.M{}
	var opts []*options.FindOptions

	for _, arg := range args {
		switch v := arg.(type) {
		case bson.M:
			filter = v
		case *options.FindOptions:
			opts = append(opts, v)
		default:
			// Just ignore if no args match
		}
	}

	return filter, opts
}

// findDocuments returns every document of the collection matching the
// optional bson.M filter, never nil. args are resolved by
// ResolveFilterAndOptionsSearch.
func (db *DB) findDocuments(ctx context.Context, collection string, args ...any) ([]Document, error) {
	coll := db.Collection(collection)
	filter, opts := ResolveFilterAndOptionsSearch(args...)

	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "find in %s", collection)
	}
	defer cursor.Close(ctx)

	var raw []bson.D
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, errors.Wrapf(err, "decode %s", collection)
	}

	docs := make([]Document, 0, len(raw))
	for _, d := range raw {
		docs = append(docs, Document(d))
	}
	return docs, nil
}

func (db *DB) findDocumentById(ctx context.Context, collection, id string) (Document, error) {
	oid, err := ParseId(id)
	if err != nil {
		return nil, err
	}

	var out bson.D
	err = db.Collection(collection).FindOne(ctx, bson.M{IdField: oid}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, errors.Wrapf(err, "find %s %s", collection, id)
	}

	return Document(out), nil
}
