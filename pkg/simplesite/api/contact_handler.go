package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-site/pkg/simplesite"
)

// ContactRequest is the request body for the contact form
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ContactMessageResponse is the response body for a contact message
type ContactMessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactHandler handles HTTP requests for contact messages
type ContactHandler struct {
	service simplesite.Service
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service simplesite.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Routes returns the public contact routes
func (h *ContactHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.SubmitMessage)

	return r
}

// SubmitMessage stores a contact form submission and notifies the site owner.
// The message is persisted even when the notification email fails; in that
// case the client gets a 502 so the failure is visible.
func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}

	msg, err := h.service.SubmitContactMessage(r.Context(), simplesite.ContactRequest{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, simplesite.ErrMailDelivery) {
			slog.Error("Contact notification delivery failed", "message_id", msg.ID, "error", err)
		} else {
			slog.Error("Failed to submit contact message", "error", err)
		}
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, contactToResponse(msg))
}

// ListMessages lists contact messages for the admin dashboard
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.ListContactMessages(r.Context())
	if err != nil {
		slog.Error("Failed to list contact messages", "error", err)
		writeError(w, r, err)
		return
	}

	out := make([]ContactMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, contactToResponse(m))
	}
	render.JSON(w, r, out)
}

func contactToResponse(msg *simplesite.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        msg.ID.String(),
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}
}
