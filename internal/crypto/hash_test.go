package crypto

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Periferia123!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "Periferia123!" {
		t.Fatal("hash should not equal the plaintext password")
	}

	match, err := VerifyPassword("Periferia123!", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !match {
		t.Error("correct password should match")
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("Periferia123!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	match, err := VerifyPassword("periferia123!", hash)
	if err != nil {
		t.Fatalf("mismatch should not be an error: %v", err)
	}
	if match {
		t.Error("wrong password should not match")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if _, err := VerifyPassword("whatever", "not-a-bcrypt-hash"); err == nil {
		t.Error("malformed hash should return an error")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("Periferia123!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("Periferia123!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}
