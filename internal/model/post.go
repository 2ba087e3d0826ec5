package model

import (
	"strings"
	"time"
)

// MaxPostLength is the maximum number of characters in a post message.
const MaxPostLength = 280

// Post represents a post row in the database. The author relationship is
// immutable after creation; posts have no update or delete flow.
type Post struct {
	ID          string
	AuthorID    string
	Message     string
	PublishedAt time.Time
}

// Like represents a like row: existence-only relation between a user and a
// post, unique per (user, post) pair.
type Like struct {
	ID     string
	UserID string
	PostID string
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Message string `json:"message"`
}

// PostAuthor is the public identity of a post's author inside a feed entry.
type PostAuthor struct {
	ID    string `json:"id"`
	Alias string `json:"alias"`
	Name  string `json:"name"`
}

// PostResponse is a feed entry: a post joined with its author's public
// identity, the total like count and whether the current viewer liked it.
type PostResponse struct {
	ID          string     `json:"id"`
	Message     string     `json:"message"`
	PublishedAt time.Time  `json:"publishedAt"`
	Author      PostAuthor `json:"author"`
	Likes       int        `json:"likes"`
	LikedByMe   bool       `json:"likedByMe"`
}

// AuthorName builds the display name from first and last name.
func AuthorName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}
