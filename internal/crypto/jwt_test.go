package crypto

import (
	"testing"
	"time"

	"github.com/periferia/periferia-social/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:        "c35c21f4-6790-4f66-a282-5ce3561c6920",
		Username:  "aromero",
		Alias:     "anar",
		FirstName: "Ana",
		LastName:  "Romero",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testUser(), "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.ID != "c35c21f4-6790-4f66-a282-5ce3561c6920" {
		t.Errorf("unexpected id claim: %s", claims.ID)
	}
	if claims.Subject != claims.ID {
		t.Errorf("subject should equal id, got %s", claims.Subject)
	}
	if claims.Username != "aromero" || claims.Alias != "anar" {
		t.Errorf("unexpected identity claims: %+v", claims)
	}
	if claims.FirstName != "Ana" || claims.LastName != "Romero" {
		t.Errorf("unexpected name claims: %+v", claims)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testUser(), "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token, "other-secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(testUser(), "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token, "secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	if _, err := ValidateToken("not.a.token", "secret"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestClaimsAuthenticatedUser(t *testing.T) {
	token, err := GenerateToken(testUser(), "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	user := claims.AuthenticatedUser()
	want := model.AuthenticatedUser{
		ID:        "c35c21f4-6790-4f66-a282-5ce3561c6920",
		Username:  "aromero",
		Alias:     "anar",
		FirstName: "Ana",
		LastName:  "Romero",
	}
	if user != want {
		t.Errorf("AuthenticatedUser = %+v, want %+v", user, want)
	}
}
