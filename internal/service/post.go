package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/periferia/periferia-social/internal/model"
	"github.com/periferia/periferia-social/internal/repository"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrMessageRequired = errors.New("message is required")
	ErrMessageTooLong  = errors.New("message exceeds 280 characters")
)

// PostStore is the persistence surface the post service needs.
type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	Exists(ctx context.Context, id string) (bool, error)
	Feed(ctx context.Context, viewerID string) ([]model.PostResponse, error)
	Summary(ctx context.Context, postID, viewerID string) (model.PostResponse, error)
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
}

// PostService builds feed views and handles post creation and likes.
type PostService struct {
	posts PostStore
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

// GetFeed returns all posts as feed entries under the viewer's perspective,
// newest first.
func (s *PostService) GetFeed(ctx context.Context, viewerID string) ([]model.PostResponse, error) {
	return s.posts.Feed(ctx, viewerID)
}

// CreatePost validates and persists a new post owned by the author, then
// returns its feed entry. A fresh post always has zero likes.
func (s *PostService) CreatePost(ctx context.Context, author model.AuthenticatedUser, req model.CreatePostRequest) (model.PostResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return model.PostResponse{}, ErrMessageRequired
	}
	if utf8.RuneCountInString(message) > model.MaxPostLength {
		return model.PostResponse{}, ErrMessageTooLong
	}

	post := &model.Post{
		AuthorID: author.ID,
		Message:  message,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return model.PostResponse{}, err
	}

	return s.summarize(ctx, post.ID, author.ID)
}

// LikePost records a like from the viewer on the post and returns the
// refreshed feed entry. Liking an already-liked post is a no-op: the store
// swallows the uniqueness conflict, so repeated calls converge to the same
// state. Only a nonexistent post is an error.
func (s *PostService) LikePost(ctx context.Context, postID, viewerID string) (model.PostResponse, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return model.PostResponse{}, err
	}

	if err := s.posts.AddLike(ctx, postID, viewerID); err != nil {
		return model.PostResponse{}, err
	}

	return s.summarize(ctx, postID, viewerID)
}

// UnlikePost removes the viewer's like from the post, if any, and returns
// the refreshed feed entry. Unliking a post that was never liked is a no-op.
func (s *PostService) UnlikePost(ctx context.Context, postID, viewerID string) (model.PostResponse, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return model.PostResponse{}, err
	}

	if err := s.posts.RemoveLike(ctx, postID, viewerID); err != nil {
		return model.PostResponse{}, err
	}

	return s.summarize(ctx, postID, viewerID)
}

func (s *PostService) requirePost(ctx context.Context, postID string) error {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}
	return nil
}

// summarize re-reads the post's current state so like counts are always
// derived from the relation, never tracked incrementally.
func (s *PostService) summarize(ctx context.Context, postID, viewerID string) (model.PostResponse, error) {
	entry, err := s.posts.Summary(ctx, postID, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}
	return entry, nil
}
