package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lealre/comments-backend/internal/logx"
	"github.com/lealre/comments-backend/internal/services/comments"
	"go.uber.org/zap"
)

const (
	msgFetchFailed     = "Failed to fetch comments"
	msgCreateFailed    = "Failed to create comment"
	msgNotFound        = "Comment not found"
	msgInvalidId       = "Invalid comment ID"
	msgInvalidIdOrData = "Invalid comment ID or data"
	msgDeleted         = "Comment deleted successfully"
)

func (api *API) CommentRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Get("/", api.GetAllComments)
	mux.Post("/", api.AddComment)
	mux.Get("/{id}", api.GetCommentById)
	mux.Put("/{id}", api.UpdateComment)
	mux.Delete("/{id}", api.DeleteComment)

	return mux
}

// errorMessages holds the client-facing text for each outcome of a handler.
// Error details are logged, never sent.
type errorMessages struct {
	badRequest string
	notFound   string
	internal   string
}

func respondWithCommentError(w http.ResponseWriter, r *http.Request, err error, msgs errorMessages) {
	logger := logx.FromContext(r.Context())

	statusCode, ok := getErrorStatusCode(comments.ErrorMap, err)
	if !ok {
		logger.Error("comment store call failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, msgs.internal)
		return
	}

	logger.Info("comment request rejected", zap.Int("status", statusCode), zap.Error(err))
	if statusCode == http.StatusNotFound {
		respondWithError(w, statusCode, msgs.notFound)
		return
	}
	respondWithError(w, statusCode, msgs.badRequest)
}

// respondWithComments writes comments back to the client. A comment that
// cannot be encoded is answered with a 500 and logged.
func respondWithComments(w http.ResponseWriter, r *http.Request, code int, payload any) {
	if err := respondWithJSON(w, code, payload); err != nil {
		logx.FromContext(r.Context()).Error("failed to encode comment response", zap.Error(err))
	}
}

func (api *API) GetAllComments(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	ctx, cancel := api.storeContext(r)
	defer cancel()

	allComments, err := comments.GetAllComments(api.Db, ctx)
	if err != nil {
		logger.Error("failed to fetch comments", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	respondWithComments(w, r, http.StatusOK, allComments)
}

func (api *API) AddComment(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	fields, err := readDocument(w, r)
	if err != nil {
		logger.Info("invalid comment body", zap.Error(err))
		respondWithError(w, http.StatusBadRequest, msgCreateFailed)
		return
	}

	ctx, cancel := api.storeContext(r)
	defer cancel()

	createdComment, err := comments.AddComment(api.Db, ctx, fields)
	if err != nil {
		respondWithCommentError(w, r, err, errorMessages{
			badRequest: msgCreateFailed,
			notFound:   msgNotFound,
			internal:   msgCreateFailed,
		})
		return
	}

	respondWithComments(w, r, http.StatusCreated, createdComment)
}

func (api *API) GetCommentById(w http.ResponseWriter, r *http.Request) {
	commentId := chi.URLParam(r, "id")

	ctx, cancel := api.storeContext(r)
	defer cancel()

	comment, err := comments.GetCommentById(api.Db, ctx, commentId)
	if err != nil {
		respondWithCommentError(w, r, err, errorMessages{
			badRequest: msgInvalidId,
			notFound:   msgNotFound,
			internal:   "Failed to fetch comment",
		})
		return
	}

	respondWithComments(w, r, http.StatusOK, comment)
}

func (api *API) UpdateComment(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	commentId := chi.URLParam(r, "id")

	fields, err := readDocument(w, r)
	if err != nil {
		logger.Info("invalid comment body", zap.Error(err))
		respondWithError(w, http.StatusBadRequest, msgInvalidIdOrData)
		return
	}

	ctx, cancel := api.storeContext(r)
	defer cancel()

	updatedComment, err := comments.UpdateComment(api.Db, ctx, commentId, fields)
	if err != nil {
		respondWithCommentError(w, r, err, errorMessages{
			badRequest: msgInvalidIdOrData,
			notFound:   msgNotFound,
			internal:   "Failed to update comment",
		})
		return
	}

	respondWithComments(w, r, http.StatusOK, updatedComment)
}

func (api *API) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentId := chi.URLParam(r, "id")

	ctx, cancel := api.storeContext(r)
	defer cancel()

	if _, err := comments.DeleteComment(api.Db, ctx, commentId); err != nil {
		respondWithCommentError(w, r, err, errorMessages{
			badRequest: msgInvalidId,
			notFound:   msgNotFound,
			internal:   "Failed to delete comment",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, DefaultResponse{Message: msgDeleted})
}
