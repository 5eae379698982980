package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-site/pkg/simplesite"
)

// SubscribeRequest is the request body for subscribing to the newsletter
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscriberResponse is the response body for a subscriber
type SubscriberResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

// SubscriberHandler handles HTTP requests for newsletter subscribers
type SubscriberHandler struct {
	service simplesite.Service
}

// NewSubscriberHandler creates a new subscriber handler
func NewSubscriberHandler(service simplesite.Service) *SubscriberHandler {
	return &SubscriberHandler{service: service}
}

// Routes returns the public subscriber routes
func (h *SubscriberHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Subscribe)
	r.Delete("/{email}", h.Unsubscribe)

	return r
}

// Subscribe adds an email to the newsletter list. A previously unsubscribed
// address is reactivated.
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}

	sub, err := h.service.Subscribe(r.Context(), simplesite.SubscribeRequest{Email: req.Email})
	if err != nil {
		slog.Error("Failed to subscribe", "error", err)
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, subscriberToResponse(sub))
}

// Unsubscribe removes an email from the newsletter list
func (h *SubscriberHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.service.Unsubscribe(r.Context(), email); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSubscribers lists all subscribers for the admin dashboard
func (h *SubscriberHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListSubscribers(r.Context())
	if err != nil {
		slog.Error("Failed to list subscribers", "error", err)
		writeError(w, r, err)
		return
	}

	out := make([]SubscriberResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, subscriberToResponse(s))
	}
	render.JSON(w, r, out)
}

func subscriberToResponse(sub *simplesite.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:             sub.ID.String(),
		Email:          sub.Email,
		SubscribedAt:   sub.SubscribedAt,
		UnsubscribedAt: sub.UnsubscribedAt,
	}
}
