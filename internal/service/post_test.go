package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/periferia/periferia-social/internal/model"
)

// fakePostStore is an in-memory PostStore with the same derived-field
// semantics as the SQL queries: like counts and likedByMe are recomputed
// from the likes relation on every read.
type fakePostStore struct {
	posts   []model.Post
	authors map[string]model.PostAuthor
	likes   map[string]map[string]bool // postID -> set of userIDs
	clock   time.Time
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		authors: map[string]model.PostAuthor{},
		likes:   map[string]map[string]bool{},
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakePostStore) addAuthor(id, alias, name string) {
	f.authors[id] = model.PostAuthor{ID: id, Alias: alias, Name: name}
}

func (f *fakePostStore) Create(_ context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = fmt.Sprintf("post-%d", len(f.posts)+1)
	}
	f.clock = f.clock.Add(time.Minute)
	post.PublishedAt = f.clock
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostStore) Exists(_ context.Context, id string) (bool, error) {
	for _, p := range f.posts {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostStore) Feed(_ context.Context, viewerID string) ([]model.PostResponse, error) {
	entries := []model.PostResponse{}
	for _, p := range f.posts {
		entries = append(entries, f.entry(p, viewerID))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PublishedAt.After(entries[j].PublishedAt)
	})
	return entries, nil
}

func (f *fakePostStore) Summary(_ context.Context, postID, viewerID string) (model.PostResponse, error) {
	for _, p := range f.posts {
		if p.ID == postID {
			return f.entry(p, viewerID), nil
		}
	}
	return model.PostResponse{}, ErrPostNotFound
}

func (f *fakePostStore) AddLike(_ context.Context, postID, userID string) error {
	if f.likes[postID] == nil {
		f.likes[postID] = map[string]bool{}
	}
	// Duplicate likes are swallowed, like the unique-key path in MySQL.
	f.likes[postID][userID] = true
	return nil
}

func (f *fakePostStore) RemoveLike(_ context.Context, postID, userID string) error {
	delete(f.likes[postID], userID)
	return nil
}

func (f *fakePostStore) entry(p model.Post, viewerID string) model.PostResponse {
	return model.PostResponse{
		ID:          p.ID,
		Message:     p.Message,
		PublishedAt: p.PublishedAt,
		Author:      f.authors[p.AuthorID],
		Likes:       len(f.likes[p.ID]),
		LikedByMe:   f.likes[p.ID][viewerID],
	}
}

func newTestPostService() (*PostService, *fakePostStore) {
	store := newFakePostStore()
	store.addAuthor("user-1", "anar", "Ana Romero")
	store.addAuthor("user-2", "carlitos", "Carlos Méndez")
	return NewPostService(store), store
}

func seedPost(t *testing.T, svc *PostService, authorID, message string) model.PostResponse {
	t.Helper()
	entry, err := svc.CreatePost(context.Background(), model.AuthenticatedUser{ID: authorID}, model.CreatePostRequest{Message: message})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	return entry
}

func TestCreatePost_ReturnsFreshEntry(t *testing.T) {
	svc, _ := newTestPostService()

	entry := seedPost(t, svc, "user-1", "hola equipo")

	if entry.Likes != 0 {
		t.Errorf("expected 0 likes on a fresh post, got %d", entry.Likes)
	}
	if entry.LikedByMe {
		t.Error("expected likedByMe false on a fresh post")
	}
	if entry.Author.Alias != "anar" {
		t.Errorf("expected author alias anar, got %q", entry.Author.Alias)
	}
}

func TestCreatePost_EmptyMessage(t *testing.T) {
	svc, _ := newTestPostService()

	for _, message := range []string{"", "   ", "\n\t "} {
		_, err := svc.CreatePost(context.Background(), model.AuthenticatedUser{ID: "user-1"}, model.CreatePostRequest{Message: message})
		if err != ErrMessageRequired {
			t.Errorf("message %q: expected ErrMessageRequired, got %v", message, err)
		}
	}
}

func TestCreatePost_LengthBoundary(t *testing.T) {
	svc, _ := newTestPostService()

	exactly280 := strings.Repeat("a", 280)
	if _, err := svc.CreatePost(context.Background(), model.AuthenticatedUser{ID: "user-1"}, model.CreatePostRequest{Message: exactly280}); err != nil {
		t.Errorf("280-character message should be accepted, got %v", err)
	}

	tooLong := strings.Repeat("a", 281)
	if _, err := svc.CreatePost(context.Background(), model.AuthenticatedUser{ID: "user-1"}, model.CreatePostRequest{Message: tooLong}); err != ErrMessageTooLong {
		t.Errorf("281-character message: expected ErrMessageTooLong, got %v", err)
	}
}

func TestCreatePost_LengthCountsRunes(t *testing.T) {
	svc, _ := newTestPostService()

	// 280 multibyte characters are 280 characters, not 840 bytes.
	message := strings.Repeat("ñ", 280)
	if _, err := svc.CreatePost(context.Background(), model.AuthenticatedUser{ID: "user-1"}, model.CreatePostRequest{Message: message}); err != nil {
		t.Errorf("280 multibyte characters should be accepted, got %v", err)
	}
}

func TestLikePost_Idempotent(t *testing.T) {
	svc, _ := newTestPostService()
	post := seedPost(t, svc, "user-1", "hola")

	first, err := svc.LikePost(context.Background(), post.ID, "user-2")
	if err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	if first.Likes != 1 || !first.LikedByMe {
		t.Errorf("after first like: likes=%d likedByMe=%v, want 1/true", first.Likes, first.LikedByMe)
	}

	second, err := svc.LikePost(context.Background(), post.ID, "user-2")
	if err != nil {
		t.Fatalf("repeated like should not error: %v", err)
	}
	if second.Likes != 1 || !second.LikedByMe {
		t.Errorf("after repeated like: likes=%d likedByMe=%v, want 1/true", second.Likes, second.LikedByMe)
	}
}

func TestUnlikePost_NoExistingLike(t *testing.T) {
	svc, _ := newTestPostService()
	post := seedPost(t, svc, "user-1", "hola")

	entry, err := svc.UnlikePost(context.Background(), post.ID, "user-2")
	if err != nil {
		t.Fatalf("unlike without a like should be a no-op, got %v", err)
	}
	if entry.Likes != 0 || entry.LikedByMe {
		t.Errorf("after no-op unlike: likes=%d likedByMe=%v, want 0/false", entry.Likes, entry.LikedByMe)
	}
}

func TestLikeUnlike_ViewerFlagTracksRelation(t *testing.T) {
	svc, _ := newTestPostService()
	post := seedPost(t, svc, "user-1", "hola")

	liked, err := svc.LikePost(context.Background(), post.ID, "user-2")
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !liked.LikedByMe {
		t.Error("likedByMe should be true immediately after like")
	}

	unliked, err := svc.UnlikePost(context.Background(), post.ID, "user-2")
	if err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if unliked.LikedByMe {
		t.Error("likedByMe should be false immediately after unlike")
	}
	if unliked.Likes != 0 {
		t.Errorf("likes should be back to 0, got %d", unliked.Likes)
	}
}

func TestLikePost_MissingPost(t *testing.T) {
	svc, store := newTestPostService()

	_, err := svc.LikePost(context.Background(), "no-such-post", "user-2")
	if err != ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if len(store.likes["no-such-post"]) != 0 {
		t.Error("no like row should be created for a missing post")
	}
}

func TestUnlikePost_MissingPost(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.UnlikePost(context.Background(), "no-such-post", "user-2")
	if err != ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestGetFeed_NewestFirst(t *testing.T) {
	svc, _ := newTestPostService()
	first := seedPost(t, svc, "user-1", "primero")
	second := seedPost(t, svc, "user-2", "segundo")
	third := seedPost(t, svc, "user-1", "tercero")

	feed, err := svc.GetFeed(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}

	if len(feed) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(feed))
	}
	wantOrder := []string{third.ID, second.ID, first.ID}
	for i, want := range wantOrder {
		if feed[i].ID != want {
			t.Errorf("feed[%d] = %s, want %s", i, feed[i].ID, want)
		}
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].PublishedAt.After(feed[i-1].PublishedAt) {
			t.Errorf("feed not in descending publish order at index %d", i)
		}
	}
}

func TestGetFeed_ViewerSpecificFlags(t *testing.T) {
	svc, _ := newTestPostService()
	post := seedPost(t, svc, "user-1", "hola")

	if _, err := svc.LikePost(context.Background(), post.ID, "user-2"); err != nil {
		t.Fatalf("like failed: %v", err)
	}

	asLiker, err := svc.GetFeed(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if !asLiker[0].LikedByMe {
		t.Error("liker should see likedByMe true")
	}

	asAuthor, err := svc.GetFeed(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if asAuthor[0].LikedByMe {
		t.Error("non-liker should see likedByMe false")
	}
	if asAuthor[0].Likes != 1 {
		t.Errorf("like count should be 1 for every viewer, got %d", asAuthor[0].Likes)
	}
}
