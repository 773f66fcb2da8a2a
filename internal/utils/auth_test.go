package utils

import (
	"testing"
	"time"
)

func TestOperatorToken(t *testing.T) {
	secret := "test-secret-key-12345"

	token, err := GenerateToken(secret, "qa-inspector", time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	sub, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if sub != "qa-inspector" {
		t.Errorf("Expected subject qa-inspector, got %s", sub)
	}

	if _, err := ValidateToken(token, "wrong-secret"); err == nil {
		t.Error("Validation should fail with wrong secret")
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateToken("s", "qa", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(token, "s"); err == nil {
		t.Error("Expired token should be rejected")
	}
}

func TestTokenNeedsSubject(t *testing.T) {
	if _, err := GenerateToken("s", "  ", time.Hour); err != ErrNoSubject {
		t.Errorf("Expected ErrNoSubject, got %v", err)
	}
}
