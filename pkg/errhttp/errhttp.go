// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/itemtracker/pkg/httpx"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
)

// Response is the JSON body written for every mapped error. Field and Rule
// are set for validation failures only.
type Response struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Rule  string `json:"rule,omitempty"`
}

// hideInternal replaces 5xx messages with the status text. Set once at startup.
var hideInternal bool

// HideInternalErrors controls whether 5xx responses expose err.Error().
// Enable it in production.
func HideInternalErrors(hide bool) {
	hideInternal = hide
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	resp := Response{Error: httpx.SafeError(err, status, hideInternal)}

	var ve *itemdomain.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
		resp.Rule = ve.Rule
	}
	httpx.JSON(w, status, resp)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrItemAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, itemdomain.ErrValidation):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, itemdomain.ErrMissingID):
		return http.StatusPreconditionFailed // 412
	default:
		return http.StatusInternalServerError // 500
	}
}
