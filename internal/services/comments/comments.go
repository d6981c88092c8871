package comments

import (
	"context"

	"github.com/lealre/comments-backend/internal/mongodb"
)

func GetAllComments(db Store, ctx context.Context) ([]mongodb.Document, error) {
	allComments, err := db.GetAllComments(ctx)
	if err != nil {
		return nil, err
	}
	if allComments == nil {
		allComments = []mongodb.Document{}
	}
	return allComments, nil
}

func AddComment(db Store, ctx context.Context, fields mongodb.Document) (mongodb.Document, error) {
	fields = fields.Without(mongodb.ProtectedFields...)
	if err := CommentSchema.Validate(fields, false); err != nil {
		return nil, err
	}
	return db.AddComment(ctx, fields)
}

func GetCommentById(db Store, ctx context.Context, commentId string) (mongodb.Document, error) {
	return db.GetCommentById(ctx, commentId)
}

// UpdateComment only checks the rules of the fields being changed.
func UpdateComment(db Store, ctx context.Context, commentId string, fields mongodb.Document) (mongodb.Document, error) {
	fields = fields.Without(mongodb.ProtectedFields...)
	if err := CommentSchema.Validate(fields, true); err != nil {
		return nil, err
	}
	return db.UpdateCommentById(ctx, commentId, fields)
}

func DeleteComment(db Store, ctx context.Context, commentId string) (mongodb.Document, error) {
	return db.DeleteCommentById(ctx, commentId)
}
