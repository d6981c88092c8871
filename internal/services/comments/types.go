package comments

import (
	"context"

	"github.com/lealre/comments-backend/internal/mongodb"
)

// Store is the persistence needed by the comment operations. *mongodb.DB
// implements it.
type Store interface {
	GetAllComments(ctx context.Context) ([]mongodb.Document, error)
	AddComment(ctx context.Context, fields mongodb.Document) (mongodb.Document, error)
	GetCommentById(ctx context.Context, commentId string) (mongodb.Document, error)
	UpdateCommentById(ctx context.Context, commentId string, fields mongodb.Document) (mongodb.Document, error)
	DeleteCommentById(ctx context.Context, commentId string) (mongodb.Document, error)
}

var _ Store = (*mongodb.DB)(nil)
