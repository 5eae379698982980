package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/simple-site/pkg/simplesite"
)

// ErrorBody is the error payload shape shared by all endpoints
type ErrorBody struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse wraps ErrorBody under an "error" key
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// writeError resolves a service error into an HTTP status and a structured
// body. Every error kind the core surfaces has a stable mapping here; nothing
// is swallowed below this boundary.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *simplesite.ValidationError
	if errors.As(err, &validationErr) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: ErrorBody{
			Kind:    "validation",
			Message: "request validation failed",
			Fields:  validationErr.Fields,
		}})
		return
	}

	switch {
	case errors.Is(err, simplesite.ErrPostNotFound),
		errors.Is(err, simplesite.ErrSubscriberNotFound),
		errors.Is(err, simplesite.ErrMessageNotFound),
		errors.Is(err, simplesite.ErrImageNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: ErrorBody{
			Kind:    "not_found",
			Message: err.Error(),
		}})
	case errors.Is(err, simplesite.ErrDuplicateSlug):
		// A concurrent write won the slug; the client can simply retry.
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ErrorResponse{Error: ErrorBody{
			Kind:    "conflict",
			Message: "slug already in use, retry the request",
		}})
	case errors.Is(err, simplesite.ErrDuplicateEmail):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ErrorResponse{Error: ErrorBody{
			Kind:    "conflict",
			Message: "email already subscribed",
		}})
	case errors.Is(err, simplesite.ErrMailDelivery):
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, ErrorResponse{Error: ErrorBody{
			Kind:    "mail_delivery",
			Message: "message stored but notification delivery failed",
		}})
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: ErrorBody{
			Kind:    "internal",
			Message: "internal server error",
		}})
	}
}
