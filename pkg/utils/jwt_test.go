package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("super-secret", time.Hour)

	tok, err := svc.IssueToken("user-123", "john@example.com")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if claims.Email != "john@example.com" {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, "john@example.com")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("secret", -1*time.Second)

	tok, err := svc.IssueToken("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = svc.ValidateToken(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTService("right-secret", time.Hour).IssueToken("u2", "u2@example.com")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = NewJWTService("wrong-secret", time.Hour).ValidateToken(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("secret", time.Hour)
	tok, err := svc.IssueToken("u3", "u3@example.com")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.ValidateToken(tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("k", time.Hour)
	_, err := svc.ValidateToken("not.a.jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
