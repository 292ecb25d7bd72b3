package auth

import (
	"errors"
	"testing"

	"mdtboard/internal/platform/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "test-secret-key",
		Algorithm:       "HS256",
		ExpirationHours: 24,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	token, err := svc.Generate("user-123", "doctor@hospital.test")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Expected subject user-123, got %s", claims.Subject)
	}
	if claims.Email != "doctor@hospital.test" {
		t.Errorf("Expected email doctor@hospital.test, got %s", claims.Email)
	}
}

func TestTokenService_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpirationHours = -1
	svc := NewTokenService(cfg)

	token, err := svc.Generate("user-123", "doctor@hospital.test")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService(testJWTConfig())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Validate(token); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Token %q: expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService(testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "different-secret"
	verifier := NewTokenService(otherCfg)

	token, err := issuer.Generate("user-123", "doctor@hospital.test")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("Expected ErrTokenMalformed for wrong secret, got %v", err)
	}
}
