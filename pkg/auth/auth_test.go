package auth

import (
	"errors"
	"testing"

	"github.com/arnavshah/planning-view-go/internal/config"
)

func newTestAuth() *Authenticator {
	return New(config.AuthConfig{JWTSecret: "jwt-secret", MasterSecret: "master-secret"})
}

func TestHMACKeyRoundTrip(t *testing.T) {
	a := newTestAuth()
	key := a.GenerateHMACKey("planner-1")

	userID, err := a.VerifyHMACKey(key)
	if err != nil {
		t.Fatalf("VerifyHMACKey: %v", err)
	}
	if userID != "planner-1" {
		t.Errorf("Expected planner-1, got %s", userID)
	}
}

func TestVerifyHMACKey_Rejects(t *testing.T) {
	a := newTestAuth()

	if _, err := a.VerifyHMACKey("no-dot"); !errors.Is(err, ErrInvalidKeyFormat) {
		t.Errorf("Expected ErrInvalidKeyFormat, got %v", err)
	}

	forged := GenerateHMACKey([]byte("other-secret"), "planner-1")
	if _, err := a.VerifyHMACKey(forged); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Expected ErrInvalidSignature, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	a := newTestAuth()
	token, err := a.CreateToken("admin")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Expected admin, got %s", claims.Username)
	}

	other := New(config.AuthConfig{JWTSecret: "different"})
	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for a foreign secret, got %v", err)
	}
}

func TestKeyPreview(t *testing.T) {
	if got := KeyPreview("planner.abcdef1234"); got != "pla...1234" {
		t.Errorf("Expected pla...1234, got %s", got)
	}
	if got := KeyPreview("short"); got != "****" {
		t.Errorf("Expected mask for short keys, got %s", got)
	}
}
