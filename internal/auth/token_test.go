package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue(42, "alice")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %s", claims.Username)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user ID 42 from Verify, got %d", userID)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(42, "alice")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := m.Parse(token); err == nil {
		t.Error("expected an expired token to be rejected")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Error("expected a token signed with a different secret to be rejected")
	}
}

func TestTokenGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	if _, err := m.Parse("not-a-token"); err == nil {
		t.Error("expected a malformed token to be rejected")
	}
}
