package security

import (
	"testing"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/config"
)

func TestHashAndVerify(t *testing.T) {
	cfg := config.PasswordConfig{BcryptCost: 4}
	hash, err := HashPassword("agua-pura-99", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "agua-pura-99") {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected mismatch to fail")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	if _, err := HashPassword("", config.PasswordConfig{BcryptCost: 4}); err == nil {
		t.Fatal("expected error for empty password")
	}
}
