// Package commentstest provides an in-memory comments.Store for tests.
package commentstest

import (
	"context"
	"sync"
	"time"

	"github.com/lealre/comments-backend/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore mimics *mongodb.DB: ObjectID ids, timestamps, ErrInvalidId
// for malformed ids and ErrRecordNotFound for missing ones. After SetErr
// every call fails with that error, as when the database is unreachable.
type MemoryStore struct {
	mu       sync.Mutex
	comments []mongodb.Document
	err      error
	calls    int
}

func NewMemoryStore(seed ...mongodb.Document) *MemoryStore {
	s := &MemoryStore{}
	for _, fields := range seed {
		s.insert(fields)
	}
	return s
}

func (s *MemoryStore) GetAllComments(ctx context.Context) ([]mongodb.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.begin(); err != nil {
		return nil, err
	}

	out := make([]mongodb.Document, 0, len(s.comments))
	for _, c := range s.comments {
		out = append(out, clone(c))
	}
	return out, nil
}

func (s *MemoryStore) AddComment(ctx context.Context, fields mongodb.Document) (mongodb.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.begin(); err != nil {
		return nil, err
	}
	return clone(s.insert(fields)), nil
}

func (s *MemoryStore) GetCommentById(ctx context.Context, commentId string) (mongodb.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.begin(); err != nil {
		return nil, err
	}
	i, err := s.find(commentId)
	if err != nil {
		return nil, err
	}
	return clone(s.comments[i]), nil
}

func (s *MemoryStore) UpdateCommentById(ctx context.Context, commentId string, fields mongodb.Document) (mongodb.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.begin(); err != nil {
		return nil, err
	}
	i, err := s.find(commentId)
	if err != nil {
		return nil, err
	}

	updated := clone(s.comments[i])
	fields = fields.Without(mongodb.ProtectedFields...)
	fields = append(fields, bson.E{Key: mongodb.UpdatedAtField, Value: primitive.NewDateTimeFromTime(time.Now())})
	for _, e := range fields {
		updated = set(updated, e)
	}
	s.comments[i] = updated

	return clone(updated), nil
}

func (s *MemoryStore) DeleteCommentById(ctx context.Context, commentId string) (mongodb.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.begin(); err != nil {
		return nil, err
	}
	i, err := s.find(commentId)
	if err != nil {
		return nil, err
	}

	deleted := s.comments[i]
	s.comments = append(s.comments[:i], s.comments[i+1:]...)
	return deleted, nil
}

func (s *MemoryStore) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls counts the store methods invoked so far.
func (s *MemoryStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

func (s *MemoryStore) begin() error {
	s.calls++
	return s.err
}

func (s *MemoryStore) insert(fields mongodb.Document) mongodb.Document {
	now := primitive.NewDateTimeFromTime(time.Now())
	fields = fields.Without(mongodb.ProtectedFields...)

	comment := make(mongodb.Document, 0, len(fields)+3)
	comment = append(comment, bson.E{Key: mongodb.IdField, Value: primitive.NewObjectID()})
	comment = append(comment, fields...)
	comment = append(comment,
		bson.E{Key: mongodb.CreatedAtField, Value: now},
		bson.E{Key: mongodb.UpdatedAtField, Value: now},
	)

	s.comments = append(s.comments, comment)
	return comment
}

func (s *MemoryStore) find(commentId string) (int, error) {
	oid, err := mongodb.ParseId(commentId)
	if err != nil {
		return -1, err
	}
	for i, c := range s.comments {
		if id, _ := c.Get(mongodb.IdField); id == oid {
			return i, nil
		}
	}
	return -1, mongodb.ErrRecordNotFound
}

func set(d mongodb.Document, e bson.E) mongodb.Document {
	for i := range d {
		if d[i].Key == e.Key {
			d[i].Value = e.Value
			return d
		}
	}
	return append(d, e)
}

func clone(d mongodb.Document) mongodb.Document {
	return append(mongodb.Document(nil), d...)
}
