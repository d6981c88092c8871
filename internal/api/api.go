package api

import (
	"context"
	"net/http"
	"time"

	"github.com/lealre/comments-backend/internal/services/comments"
)

type API struct {
	Db             comments.Store
	RequestTimeout time.Duration
}

func NewAPI(db comments.Store, requestTimeout time.Duration) *API {
	return &API{Db: db, RequestTimeout: requestTimeout}
}

// storeContext bounds a single store call. It is still canceled when the
// client goes away.
func (api *API) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	if api.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), api.RequestTimeout)
}
