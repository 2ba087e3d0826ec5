package client

import (
	"context"
	"errors"
	"sync"

	"github.com/periferia/periferia-social/internal/model"
)

// ErrLikeInFlight is returned when a like/unlike is requested while a
// previous one has not finished. The guard is local to the store; nothing
// is cancelled at the network level.
var ErrLikeInFlight = errors.New("like request already in flight")

const (
	feedErrorMessage   = "No pudimos obtener las publicaciones."
	createErrorMessage = "No pudimos crear la publicación."
	likeErrorMessage   = "No pudimos registrar el like."
	unlikeErrorMessage = "No pudimos quitar el like."
)

// FeedStore holds the in-memory feed entry list. All mutations go through
// the server first; the store only ever reflects confirmed server state,
// and a failed mutation leaves the entries untouched except for the error
// message.
type FeedStore struct {
	mu  sync.Mutex
	api *Client

	entries []model.PostResponse
	loading bool
	busy    bool
	err     string
}

// NewFeedStore creates a FeedStore over the given API client.
func NewFeedStore(api *Client) *FeedStore {
	return &FeedStore{api: api}
}

// Fetch replaces the whole entry list with the server's feed.
func (f *FeedStore) Fetch(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.err = ""
	f.mu.Unlock()

	entries, err := f.api.Feed(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.err = errorMessage(err, feedErrorMessage)
		return err
	}

	f.entries = entries
	return nil
}

// Create publishes a post and prepends the confirmed entry to the list.
// The feed is not re-fetched.
func (f *FeedStore) Create(ctx context.Context, message string) (*model.PostResponse, error) {
	entry, err := f.api.CreatePost(ctx, message)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.err = errorMessage(err, createErrorMessage)
		return nil, err
	}

	f.entries = append([]model.PostResponse{entry}, f.entries...)
	return &entry, nil
}

// ToggleLike likes or unlikes the post (unlike when liked is true) and
// replaces the matching entry in place. A second call while one is in
// flight is rejected with ErrLikeInFlight.
func (f *FeedStore) ToggleLike(ctx context.Context, postID string, liked bool) (*model.PostResponse, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return nil, ErrLikeInFlight
	}
	f.busy = true
	f.mu.Unlock()

	var entry model.PostResponse
	var err error
	if liked {
		entry, err = f.api.UnlikePost(ctx, postID)
	} else {
		entry, err = f.api.LikePost(ctx, postID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		fallback := likeErrorMessage
		if liked {
			fallback = unlikeErrorMessage
		}
		f.err = errorMessage(err, fallback)
		return nil, err
	}

	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries[i] = entry
			break
		}
	}
	return &entry, nil
}

// Reset clears the entries and any error, e.g. on logout.
func (f *FeedStore) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = nil
	f.err = ""
	f.loading = false
}

// Entries returns a copy of the current entry list.
func (f *FeedStore) Entries() []model.PostResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.PostResponse, len(f.entries))
	copy(out, f.entries)
	return out
}

// Loading reports whether a fetch is in progress.
func (f *FeedStore) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Error returns the recorded error message, empty when none.
func (f *FeedStore) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
