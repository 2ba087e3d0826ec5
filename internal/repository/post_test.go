package repository

import (
	"errors"
	"testing"
)

func TestNewPostRepository(t *testing.T) {
	repo := NewPostRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil PostRepository")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrPostNotFound == nil || ErrPostNotFound.Error() != "post not found" {
		t.Fatalf("unexpected ErrPostNotFound: %v", ErrPostNotFound)
	}
	if ErrUserNotFound == nil || ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected ErrUserNotFound: %v", ErrUserNotFound)
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Error("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrPostNotFound) {
		t.Error("ErrPostNotFound should not be a duplicate entry error")
	}
	mysqlDup := errors.New(`Error 1062 (23000): Duplicate entry 'user-1-post-1' for key 'uq_likes_user_post'`)
	if !isDuplicateEntryError(mysqlDup) {
		t.Error("MySQL 1062 error should be detected as duplicate entry")
	}
}
