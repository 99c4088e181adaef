package services

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	service := NewAuthService("test-secret", time.Hour)

	hash, err := service.HashPassword("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash should not equal plain password")
	}

	if err := service.CheckPasswordHash("secret123", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := service.CheckPasswordHash("wrong", hash); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	service := NewAuthService("test-secret", time.Hour)

	token, err := service.GenerateToken("agent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.AgentID != "agent-1" {
		t.Errorf("expected agent-1, got %s", claims.AgentID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	service := NewAuthService("test-secret", -time.Hour)

	token, err := service.GenerateToken("agent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestTokenSignedWithDifferentSecretRejected(t *testing.T) {
	issuer := NewAuthService("secret-a", time.Hour)
	verifier := NewAuthService("secret-b", time.Hour)

	token, err := issuer.GenerateToken("agent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token with wrong signature accepted")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	service := NewAuthService("test-secret", time.Hour)

	if _, err := service.ValidateToken("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}
