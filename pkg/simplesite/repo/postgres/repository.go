package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-site/pkg/simplesite"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simplesite.Repository using PostgreSQL. The unique
// indexes on post.slug and subscriber.email (see schema.sql) are the durable
// backstop for the uniqueness invariants; constraint violations surface as
// ErrDuplicateSlug / ErrDuplicateEmail.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) simplesite.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) simplesite.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return simplesite.ErrDuplicateSlug
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return simplesite.ErrDuplicateEmail
			}
			return fmt.Errorf("duplicate entry")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Post operations

const postColumns = `id, title, slug, excerpt, content, author, category, tags,
	       status, featured, views, read_time, published_at, created_at, updated_at`

func scanPost(row pgx.Row) (*simplesite.Post, error) {
	var post simplesite.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content,
		&post.Author, &post.Category, &post.Tags, &post.Status, &post.Featured,
		&post.Views, &post.ReadTime, &post.PublishedAt, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Repository) CreatePost(ctx context.Context, post *simplesite.Post) error {
	query := `
		INSERT INTO post (
			id, title, slug, excerpt, content, author, category, tags,
			status, featured, views, read_time, published_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content,
		post.Author, post.Category, post.Tags, post.Status, post.Featured,
		post.Views, post.ReadTime, post.PublishedAt, post.CreatedAt, post.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create post", err)
	}

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*simplesite.Post, error) {
	query := `SELECT ` + postColumns + ` FROM post WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplesite.ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (*simplesite.Post, error) {
	query := `SELECT ` + postColumns + ` FROM post WHERE slug = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplesite.ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (r *Repository) FindPostBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (*simplesite.Post, error) {
	query := `SELECT ` + postColumns + ` FROM post WHERE slug = $1 AND id <> $2`

	post, err := scanPost(r.db.QueryRow(ctx, query, slug, excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplesite.ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *simplesite.Post) error {
	query := `
		UPDATE post SET
			title = $2, slug = $3, excerpt = $4, content = $5, author = $6,
			category = $7, tags = $8, status = $9, featured = $10,
			read_time = $11, published_at = $12, updated_at = $13
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content,
		post.Author, post.Category, post.Tags, post.Status, post.Featured,
		post.ReadTime, post.PublishedAt, post.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("update post", err)
	}
	if tag.RowsAffected() == 0 {
		return simplesite.ErrPostNotFound
	}

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM post WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return simplesite.ErrPostNotFound
	}
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, filters simplesite.PostFilters) ([]*simplesite.Post, error) {
	query := `SELECT ` + postColumns + ` FROM post`

	conditions, args := buildPostConditions(filters)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filters.Limit != nil {
		args = append(args, *filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset != nil {
		args = append(args, *filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*simplesite.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func (r *Repository) CountPosts(ctx context.Context, filters simplesite.PostFilters) (int64, error) {
	query := `SELECT COUNT(*) FROM post`

	conditions, args := buildPostConditions(filters)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) IncrementPostViews(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE post SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("increment post views", err)
	}
	if tag.RowsAffected() == 0 {
		return simplesite.ErrPostNotFound
	}
	return nil
}

func buildPostConditions(filters simplesite.PostFilters) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Category != nil {
		args = append(args, *filters.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filters.Featured != nil {
		args = append(args, *filters.Featured)
		conditions = append(conditions, fmt.Sprintf("featured = $%d", len(args)))
	}

	return conditions, args
}

// Subscriber operations

func (r *Repository) CreateSubscriber(ctx context.Context, sub *simplesite.Subscriber) error {
	query := `
		INSERT INTO subscriber (id, email, subscribed_at, unsubscribed_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, sub.ID, sub.Email, sub.SubscribedAt, sub.UnsubscribedAt)
	if err != nil {
		return r.handlePostgresError("create subscriber", err)
	}
	return nil
}

func (r *Repository) GetSubscriberByEmail(ctx context.Context, email string) (*simplesite.Subscriber, error) {
	query := `
		SELECT id, email, subscribed_at, unsubscribed_at
		FROM subscriber WHERE email = $1`

	var sub simplesite.Subscriber
	err := r.db.QueryRow(ctx, query, email).Scan(
		&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.UnsubscribedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplesite.ErrSubscriberNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *Repository) UpdateSubscriber(ctx context.Context, sub *simplesite.Subscriber) error {
	query := `
		UPDATE subscriber SET email = $2, subscribed_at = $3, unsubscribed_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, sub.ID, sub.Email, sub.SubscribedAt, sub.UnsubscribedAt)
	if err != nil {
		return r.handlePostgresError("update subscriber", err)
	}
	if tag.RowsAffected() == 0 {
		return simplesite.ErrSubscriberNotFound
	}
	return nil
}

func (r *Repository) ListSubscribers(ctx context.Context) ([]*simplesite.Subscriber, error) {
	query := `
		SELECT id, email, subscribed_at, unsubscribed_at
		FROM subscriber ORDER BY subscribed_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*simplesite.Subscriber
	for rows.Next() {
		var sub simplesite.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.UnsubscribedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}

	return subs, rows.Err()
}

// Contact message operations

func (r *Repository) CreateContactMessage(ctx context.Context, msg *simplesite.ContactMessage) error {
	query := `
		INSERT INTO contact_message (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create contact message", err)
	}
	return nil
}

func (r *Repository) ListContactMessages(ctx context.Context) ([]*simplesite.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, created_at
		FROM contact_message ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*simplesite.ContactMessage
	for rows.Next() {
		var msg simplesite.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &msg)
	}

	return msgs, rows.Err()
}

// Statistics

func (r *Repository) GetSiteStats(ctx context.Context) (*simplesite.SiteStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'published'),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'archived'),
			COALESCE(SUM(views), 0)
		FROM post`

	var stats simplesite.SiteStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalPosts, &stats.PublishedPosts, &stats.DraftPosts,
		&stats.ArchivedPosts, &stats.TotalViews)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriber WHERE unsubscribed_at IS NULL`).Scan(&stats.Subscribers)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
