package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-site/pkg/simplesite"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PostResponse is the response body for a post. ContentHTML is populated only
// on the public detail endpoint.
type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html,omitempty"`
	Author      string     `json:"author,omitempty"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags,omitempty"`
	Status      string     `json:"status"`
	Featured    bool       `json:"featured"`
	Views       int64      `json:"views"`
	ReadTime    int        `json:"read_time"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreatePostRequest is the request body for creating a post
type CreatePostRequest struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Content  string   `json:"content"`
	Author   string   `json:"author,omitempty"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Status   string   `json:"status,omitempty"`
	Featured bool     `json:"featured,omitempty"`
}

// UpdatePostRequest is the request body for updating a post. Omitted fields
// are left unchanged.
type UpdatePostRequest struct {
	Title    *string  `json:"title,omitempty"`
	Excerpt  *string  `json:"excerpt,omitempty"`
	Content  *string  `json:"content,omitempty"`
	Author   *string  `json:"author,omitempty"`
	Category *string  `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Status   *string  `json:"status,omitempty"`
	Featured *bool    `json:"featured,omitempty"`
}

// PostHandler handles HTTP requests for blog posts
type PostHandler struct {
	service simplesite.Service
}

// NewPostHandler creates a new post handler
func NewPostHandler(service simplesite.Service) *PostHandler {
	return &PostHandler{service: service}
}

// Routes returns the public post routes
func (h *PostHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListPublishedPosts)
	r.Get("/{slug}", h.GetPostBySlug)

	return r
}

// AdminRoutes returns the admin post routes
func (h *PostHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListPosts)
	r.Post("/", h.CreatePost)
	r.Get("/{id}", h.GetPost)
	r.Put("/{id}", h.UpdatePost)
	r.Delete("/{id}", h.DeletePost)

	return r
}

// ListPublishedPosts lists published posts with optional category/featured
// filters and limit/offset paging
func (h *PostHandler) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	req := listRequestFromQuery(r)
	req.Status = string(simplesite.PostStatusPublished)

	posts, err := h.service.ListPosts(r.Context(), req)
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, postListResponse(posts))
}

// GetPostBySlug returns a published post by slug with rendered HTML content.
// Each successful lookup counts as one view.
func (h *PostHandler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.service.GetPublishedPost(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := postToResponse(post)
	html, err := simplesite.RenderHTML(post.Content)
	if err != nil {
		slog.Error("Failed to render post content", "slug", slug, "error", err)
		writeError(w, r, err)
		return
	}
	resp.ContentHTML = html

	render.JSON(w, r, resp)
}

// ListPosts lists posts of any status for the admin dashboard
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	req := listRequestFromQuery(r)
	req.Status = r.URL.Query().Get("status")

	posts, err := h.service.ListPosts(r.Context(), req)
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, postListResponse(posts))
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}

	post, err := h.service.CreatePost(r.Context(), simplesite.CreatePostRequest{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Tags:     req.Tags,
		Status:   req.Status,
		Featured: req.Featured,
	})
	if err != nil {
		slog.Error("Failed to create post", "title", req.Title, "error", err)
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, postToResponse(post))
}

// GetPost returns a post by ID regardless of status
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, r, "invalid post ID")
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, postToResponse(post))
}

// UpdatePost updates a post
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, r, "invalid post ID")
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}

	post, err := h.service.UpdatePost(r.Context(), simplesite.UpdatePostRequest{
		ID:       id,
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Tags:     req.Tags,
		Status:   req.Status,
		Featured: req.Featured,
	})
	if err != nil {
		slog.Error("Failed to update post", "post_id", id, "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, postToResponse(post))
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, r, "invalid post ID")
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		slog.Error("Failed to delete post", "post_id", id, "error", err)
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func listRequestFromQuery(r *http.Request) simplesite.ListPostsRequest {
	q := r.URL.Query()

	req := simplesite.ListPostsRequest{
		Category: q.Get("category"),
		Limit:    defaultPageSize,
	}
	if v := q.Get("featured"); v != "" {
		featured := v == "true"
		req.Featured = &featured
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		req.Limit = min(v, maxPageSize)
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		req.Offset = v
	}
	return req
}

func postToResponse(post *simplesite.Post) PostResponse {
	return PostResponse{
		ID:          post.ID.String(),
		Title:       post.Title,
		Slug:        post.Slug,
		Excerpt:     post.Excerpt,
		Content:     post.Content,
		Author:      post.Author,
		Category:    post.Category,
		Tags:        post.Tags,
		Status:      post.Status,
		Featured:    post.Featured,
		Views:       post.Views,
		ReadTime:    post.ReadTime,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func postListResponse(posts []*simplesite.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, postToResponse(p))
	}
	return out
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: ErrorBody{Kind: "bad_request", Message: msg}})
}
