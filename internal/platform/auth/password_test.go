package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("Failed to hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("Hash must not equal plaintext")
	}

	if !VerifyPassword("s3cret-pass", hash) {
		t.Error("Expected correct password to verify")
	}
	if VerifyPassword("wrong-pass", hash) {
		t.Error("Expected wrong password to fail")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("Failed to hash: %v", err)
	}
	h2, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("Failed to hash: %v", err)
	}
	if h1 == h2 {
		t.Error("Expected distinct hashes for the same input")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Error("Expected malformed hash to fail verification")
	}
	if VerifyPassword("anything", "") {
		t.Error("Expected empty hash to fail verification")
	}
}
