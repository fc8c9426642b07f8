package auth

import (
	"testing"
	"time"

	"github.com/rabiijabrour/workers-production-system/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-123",
		Username: "alice",
		Role:     domain.RoleWorker,
		FullName: "Alice A",
		Status:   domain.UserStatusActive,
	}
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)

	tok, expiresAt, err := tm.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiry must be in the future, got %v", expiresAt)
	}

	claims, err := tm.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID != "user-123" || claims.Username != "alice" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.Role != domain.RoleWorker || claims.FullName != "Alice A" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{secret: []byte("secret"), ttl: -1 * time.Second}

	tok, _, err := tm.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if _, err := tm.Parse(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenManager("right-secret", time.Hour).Generate(testUser())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if _, err := NewTokenManager("wrong-secret", time.Hour).Parse(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParse_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenManager("k", time.Hour).Parse("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("k", 0)

	_, expiresAt, err := tm.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	remaining := time.Until(expiresAt)
	if remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Fatalf("expected ~24h default ttl, got %v", remaining)
	}
}
