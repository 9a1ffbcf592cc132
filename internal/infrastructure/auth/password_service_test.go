package auth

import (
	"strings"
	"testing"
)

func TestBcryptPasswordService(t *testing.T) {
	svc := NewPasswordService()

	t.Run("hash verifies against its password", func(t *testing.T) {
		hash, err := svc.Hash("password123")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		if hash == "password123" {
			t.Fatal("expected the hash to differ from the plaintext")
		}
		if !svc.Verify(hash, "password123") {
			t.Error("expected the original password to verify")
		}
		if svc.Verify(hash, "password124") {
			t.Error("expected a different password to fail")
		}
	})

	t.Run("rejects passwords past the bcrypt limit", func(t *testing.T) {
		if _, err := svc.Hash(strings.Repeat("a", 73)); err == nil {
			t.Fatal("expected an error for a 73-byte password")
		}
		if _, err := svc.Hash(strings.Repeat("a", 72)); err != nil {
			t.Fatalf("expected a 72-byte password to hash, got %v", err)
		}
	})

	t.Run("empty or malformed stored hash never verifies", func(t *testing.T) {
		if svc.Verify("", "password123") {
			t.Error("expected empty hash to fail")
		}
		if svc.Verify("not-a-bcrypt-hash", "password123") {
			t.Error("expected malformed hash to fail")
		}
	})
}
