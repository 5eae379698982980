package simplesite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository       Repository
	images           BlobStore
	mailer           Mailer
	eventSink        EventSink
	now              func() time.Time
	contactRecipient string
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithImageStore sets the blob store used for uploaded images
func WithImageStore(store BlobStore) Option {
	return func(s *service) {
		s.images = store
	}
}

// WithMailer sets the outbound email provider
func WithMailer(mailer Mailer) Option {
	return func(s *service) {
		s.mailer = mailer
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithClock overrides the wall clock. Slug fallbacks and publication stamps
// read time through it, which keeps those behaviors deterministic in tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithContactRecipient sets the address notified about contact submissions
func WithContactRecipient(email string) Option {
	return func(s *service) {
		s.contactRecipient = email
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		now: time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

// slugTaken is the collision probe fed into the save pipeline.
func (s *service) slugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	_, err := s.repository.FindPostBySlug(ctx, slug, excludeID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Post operations

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = string(PostStatusDraft)
	}

	now := s.now().UTC()
	post := &Post{
		ID:        uuid.New(),
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Author:    req.Author,
		Category:  req.Category,
		Tags:      req.Tags,
		Status:    status,
		Featured:  req.Featured,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := PrepareForSave(ctx, nil, post, s.slugTaken, s.now); err != nil {
		return nil, &PostError{PostID: post.ID, Op: "create", Err: err}
	}

	if err := s.repository.CreatePost(ctx, post); err != nil {
		return nil, &PostError{PostID: post.ID, Op: "create", Err: err}
	}

	// Fire events
	if s.eventSink != nil {
		if err := s.eventSink.PostCreated(ctx, post); err != nil {
			// Log error but don't fail the operation
		}
		if post.PublishedAt != nil {
			if err := s.eventSink.PostPublished(ctx, post); err != nil {
				// Log error but don't fail the operation
			}
		}
	}

	return post, nil
}

func (s *service) UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prev, err := s.repository.GetPost(ctx, req.ID)
	if err != nil {
		return nil, &PostError{PostID: req.ID, Op: "update", Err: err}
	}

	next := *prev
	if req.Title != nil {
		next.Title = *req.Title
	}
	if req.Excerpt != nil {
		next.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		next.Content = *req.Content
	}
	if req.Author != nil {
		next.Author = *req.Author
	}
	if req.Category != nil {
		next.Category = *req.Category
	}
	if req.Tags != nil {
		next.Tags = req.Tags
	}
	if req.Status != nil {
		next.Status = *req.Status
	}
	if req.Featured != nil {
		next.Featured = *req.Featured
	}

	if err := PrepareForSave(ctx, prev, &next, s.slugTaken, s.now); err != nil {
		return nil, &PostError{PostID: req.ID, Op: "update", Err: err}
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.repository.UpdatePost(ctx, &next); err != nil {
		return nil, &PostError{PostID: req.ID, Op: "update", Err: err}
	}

	// Fire events
	if s.eventSink != nil {
		if err := s.eventSink.PostUpdated(ctx, &next); err != nil {
			// Log error but don't fail the operation
		}
		if prev.PublishedAt == nil && next.PublishedAt != nil {
			if err := s.eventSink.PostPublished(ctx, &next); err != nil {
				// Log error but don't fail the operation
			}
		}
	}

	return &next, nil
}

func (s *service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeletePost(ctx, id); err != nil {
		return &PostError{PostID: id, Op: "delete", Err: err}
	}

	// Fire event
	if s.eventSink != nil {
		if err := s.eventSink.PostDeleted(ctx, id); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

func (s *service) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.repository.GetPost(ctx, id)
}

func (s *service) GetPublishedPost(ctx context.Context, slug string) (*Post, error) {
	post, err := s.repository.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if PostStatus(post.Status) != PostStatusPublished {
		// Drafts and archived posts are invisible on the public surface.
		return nil, ErrPostNotFound
	}

	if err := s.repository.IncrementPostViews(ctx, post.ID); err != nil {
		return nil, &PostError{PostID: post.ID, Op: "increment_views", Err: err}
	}
	post.Views++

	return post, nil
}

func (s *service) ListPosts(ctx context.Context, req ListPostsRequest) ([]*Post, error) {
	filters := PostFilters{Featured: req.Featured}
	if req.Status != "" {
		filters.Status = &req.Status
	}
	if req.Category != "" {
		filters.Category = &req.Category
	}
	if req.Limit > 0 {
		filters.Limit = &req.Limit
	}
	if req.Offset > 0 {
		filters.Offset = &req.Offset
	}
	return s.repository.ListPosts(ctx, filters)
}

// Subscriber operations

func (s *service) Subscribe(ctx context.Context, req SubscribeRequest) (*Subscriber, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repository.GetSubscriberByEmail(ctx, email)
	switch {
	case err == nil && existing.Active():
		return nil, ErrDuplicateEmail
	case err == nil:
		// Previously unsubscribed; reactivate the existing row.
		existing.UnsubscribedAt = nil
		existing.SubscribedAt = s.now().UTC()
		if err := s.repository.UpdateSubscriber(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case !errors.Is(err, ErrSubscriberNotFound):
		return nil, err
	}

	sub := &Subscriber{
		ID:           uuid.New(),
		Email:        email,
		SubscribedAt: s.now().UTC(),
	}
	if err := s.repository.CreateSubscriber(ctx, sub); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		welcome := &Email{
			To:      []string{sub.Email},
			Subject: "Welcome to the newsletter",
			Text:    "Thanks for subscribing. You can unsubscribe at any time.",
		}
		if err := s.mailer.Send(ctx, welcome); err != nil {
			// The subscription itself succeeded; welcome mail is best-effort
		}
	}

	return sub, nil
}

func (s *service) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	sub, err := s.repository.GetSubscriberByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !sub.Active() {
		return nil
	}

	now := s.now().UTC()
	sub.UnsubscribedAt = &now
	return s.repository.UpdateSubscriber(ctx, sub)
}

func (s *service) ListSubscribers(ctx context.Context) ([]*Subscriber, error) {
	return s.repository.ListSubscribers(ctx)
}

// Contact operations

// SubmitContactMessage persists the message and then dispatches a
// notification email. When dispatch fails the message stays persisted and the
// returned error wraps ErrMailDelivery alongside the stored message.
func (s *service) SubmitContactMessage(ctx context.Context, req ContactRequest) (*ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg := &ContactMessage{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repository.CreateContactMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.mailer != nil && s.contactRecipient != "" {
		subject := msg.Subject
		if subject == "" {
			subject = "New contact form submission"
		}
		notification := &Email{
			To:      []string{s.contactRecipient},
			ReplyTo: msg.Email,
			Subject: subject,
			Text:    fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message),
		}
		if err := s.mailer.Send(ctx, notification); err != nil {
			return msg, fmt.Errorf("%w: %v", ErrMailDelivery, err)
		}
	}

	return msg, nil
}

func (s *service) ListContactMessages(ctx context.Context) ([]*ContactMessage, error) {
	return s.repository.ListContactMessages(ctx)
}

// Image operations

func (s *service) UploadImage(ctx context.Context, reader io.Reader, req UploadImageRequest) (*Image, error) {
	if s.images == nil {
		return nil, fmt.Errorf("no image store configured")
	}

	key := s.generateImageKey(req.FileName)
	if err := s.images.Upload(ctx, reader, UploadParams{ObjectKey: key, MimeType: req.MimeType}); err != nil {
		return nil, &StorageError{Key: key, Op: "upload", Err: err}
	}

	url, err := s.images.GetURL(ctx, key)
	if err != nil {
		return nil, &StorageError{Key: key, Op: "get_url", Err: err}
	}

	return &Image{
		Key:      key,
		URL:      url,
		FileName: req.FileName,
		MimeType: req.MimeType,
		Size:     req.Size,
	}, nil
}

func (s *service) DeleteImage(ctx context.Context, key string) error {
	if s.images == nil {
		return fmt.Errorf("no image store configured")
	}
	if err := s.images.Delete(ctx, key); err != nil {
		return &StorageError{Key: key, Op: "delete", Err: err}
	}
	return nil
}

// Statistics

func (s *service) GetSiteStats(ctx context.Context) (*SiteStats, error) {
	return s.repository.GetSiteStats(ctx)
}

// Helper methods

func (s *service) generateImageKey(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("images/%s%s", uuid.New(), ext)
}
