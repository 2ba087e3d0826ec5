package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/periferia/periferia-social/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// feedColumns selects a post joined with its author plus the two derived
// fields: total like count and whether the viewer (first bind parameter)
// has liked the post. Both are recomputed from the likes relation on every
// read; nothing is cached or incrementally tracked.
const feedColumns = `
	p.id, p.message, p.published_at,
	u.id, u.alias, u.first_name, u.last_name,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
	EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = ?)`

// PostRepository handles post and like persistence operations.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post and reads back the stored row so the returned
// publish timestamp is the database's, not the process clock's.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}

	query := `INSERT INTO posts (id, author_id, message) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, post.ID, post.AuthorID, post.Message); err != nil {
		return err
	}

	return r.db.QueryRowContext(ctx,
		`SELECT published_at FROM posts WHERE id = ?`, post.ID,
	).Scan(&post.PublishedAt)
}

// Exists reports whether a post with the given id exists.
func (r *PostRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE id = ?)`, id,
	).Scan(&exists)
	return exists, err
}

// Feed retrieves all posts as feed entries under the viewer's perspective,
// newest first.
func (r *PostRepository) Feed(ctx context.Context, viewerID string) ([]model.PostResponse, error) {
	query := `SELECT ` + feedColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.published_at DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.PostResponse{}
	for rows.Next() {
		entry, err := scanFeedEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Summary retrieves a single post as a feed entry under the viewer's
// perspective. Returns ErrPostNotFound when the post does not exist.
func (r *PostRepository) Summary(ctx context.Context, postID, viewerID string) (model.PostResponse, error) {
	query := `SELECT ` + feedColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`

	rows, err := r.db.QueryContext(ctx, query, viewerID, postID)
	if err != nil {
		return model.PostResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.PostResponse{}, err
		}
		return model.PostResponse{}, ErrPostNotFound
	}

	return scanFeedEntry(rows)
}

// AddLike inserts a like row for (postID, userID). A duplicate-key rejection
// from the unique (user_id, post_id) constraint is swallowed: liking an
// already-liked post is a no-op, and the constraint is the sole
// serialization point for racing likes.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) error {
	query := `INSERT INTO likes (id, user_id, post_id) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, postID)
	if err != nil && !isDuplicateEntryError(err) {
		return err
	}
	return nil
}

// RemoveLike deletes the like row for (postID, userID) if one exists.
// Zero rows affected is not an error.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM likes WHERE user_id = ? AND post_id = ?`

	_, err := r.db.ExecContext(ctx, query, userID, postID)
	return err
}

func scanFeedEntry(rows *sql.Rows) (model.PostResponse, error) {
	var (
		entry               model.PostResponse
		firstName, lastName string
	)
	err := rows.Scan(
		&entry.ID, &entry.Message, &entry.PublishedAt,
		&entry.Author.ID, &entry.Author.Alias, &firstName, &lastName,
		&entry.Likes, &entry.LikedByMe,
	)
	if err != nil {
		return model.PostResponse{}, err
	}

	entry.Author.Name = model.AuthorName(firstName, lastName)
	return entry, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
