package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/config"
)

// HashPassword hashes the plaintext with the configured bcrypt cost.
func HashPassword(plaintext string, cfg config.PasswordConfig) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func VerifyPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
