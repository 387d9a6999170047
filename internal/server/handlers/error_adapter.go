package handlers

import (
	"net/http"

	apperrors "github.com/dingolabs/dingo/internal/errors"
)

// ErrorResponder writes an error response.
type ErrorResponder func(http.ResponseWriter, *http.Request, error)

var httpErrorResponder ErrorResponder = apperrors.RespondWithError

// SetHTTPErrorResponder lets the server route handler errors through its own
// responder. A nil responder restores the default envelope writer.
func SetHTTPErrorResponder(responder ErrorResponder) {
	if responder == nil {
		responder = apperrors.RespondWithError
	}
	httpErrorResponder = responder
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	httpErrorResponder(w, r, err)
}
