package comments

import (
	"errors"
	"net/http"

	"github.com/lealre/comments-backend/internal/mongodb"
)

var (
	ErrValidation      = errors.New("comment validation failed")
	ErrInvalidFieldKey = errors.New("invalid field name")
)

var ErrorMap = map[error]int{
	mongodb.ErrRecordNotFound: http.StatusNotFound,
	mongodb.ErrInvalidId:      http.StatusBadRequest,
	ErrValidation:             http.StatusBadRequest,
}
