package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRecordNotFound = errors.New("record not found in the database")
	ErrInvalidId      = errors.New("invalid record id")
)

// ParseId converts the hex representation of an ObjectID. Anything the
// driver cannot parse is reported as ErrInvalidId.
func ParseId(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidId, id)
	}
	return oid, nil
}
