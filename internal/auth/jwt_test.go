package auth

import (
	"testing"
	"time"
)

func TestGenerateToken(t *testing.T) {
	manager := NewJWTManager("session-secret", time.Hour)

	token, expiresAt, err := manager.GenerateToken("user-42", "ann@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token == "" {
		t.Error("expected non-empty token")
	}

	expectedExpiry := time.Now().Add(time.Hour)
	if expiresAt.Before(expectedExpiry.Add(-time.Minute)) || expiresAt.After(expectedExpiry.Add(time.Minute)) {
		t.Errorf("expiry time not within expected range")
	}
}

func TestValidateToken_Valid(t *testing.T) {
	manager := NewJWTManager("session-secret", time.Hour)

	token, _, err := manager.GenerateToken("user-42", "ann@x.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}

	if claims.UserID != "user-42" {
		t.Errorf("expected UserID 'user-42', got '%s'", claims.UserID)
	}
	if claims.Email != "ann@x.com" {
		t.Errorf("expected Email 'ann@x.com', got '%s'", claims.Email)
	}
	if claims.ExpiresAt == nil {
		t.Error("expected expiry to be set on issued tokens")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager("session-secret", -time.Hour)

	token, _, err := manager.GenerateToken("user-42", "ann@x.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-one", time.Hour)
	verifier := NewJWTManager("secret-two", time.Hour)

	token, _, err := issuer.GenerateToken("user-42", "ann@x.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	manager := NewJWTManager("session-secret", time.Hour)

	for _, tok := range []string{"", "not-a-valid-token", "a.b.c"} {
		if _, err := manager.ValidateToken(tok); err == nil {
			t.Errorf("expected error for token %q", tok)
		}
	}
}
