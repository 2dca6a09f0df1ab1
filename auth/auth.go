// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingAdminKey = errors.New("missing admin key")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// GenerateAdminKey creates a random admin key suitable for ADMIN_KEY
func GenerateAdminKey() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate admin key: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateAdminKey checks the provided key against the configured one.
// Both keys are hashed first so the comparison time does not depend on length.
func ValidateAdminKey(provided, expected string) error {
	if expected == "" {
		return ErrInvalidAdminKey
	}
	if provided == "" {
		return ErrMissingAdminKey
	}
	if !hmac.Equal(digest(provided), digest(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

func digest(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}
