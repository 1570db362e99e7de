package utils

import (
	"strings"
	"testing"
	"time"
)

func TestJwtRoundTrip(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	tok, err := JwtGenerate("user-1", "a@example.com", "client")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}
	claims, err := JwtValidate(tok)
	if err != nil {
		t.Fatalf("JwtValidate: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "client" {
		t.Fatalf("claims=%+v", claims)
	}

	t.Setenv("API_SECRET", "other-secret")
	if _, err := JwtValidate(tok); err == nil {
		t.Fatalf("expected signature failure")
	}
}

func TestTokenLifespan(t *testing.T) {
	t.Setenv("TOKEN_HOUR_LIFESPAN", "")
	if got := TokenLifespan(); got != 24*time.Hour {
		t.Fatalf("default lifespan=%s", got)
	}
	t.Setenv("TOKEN_HOUR_LIFESPAN", "2")
	if got := TokenLifespan(); got != 2*time.Hour {
		t.Fatalf("lifespan=%s", got)
	}
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID("lead_", 16)
	if err != nil {
		t.Fatalf("GenerateID: %v", err)
	}
	if !strings.HasPrefix(id, "lead_") || len(id) != len("lead_")+16 {
		t.Fatalf("id=%q", id)
	}
}

func TestAnonymousToken(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	tok := AnonymousToken(now)
	if !strings.HasPrefix(tok, "anon_1700000000123_") {
		t.Fatalf("token=%q", tok)
	}
	if AnonymousToken(now) == tok {
		t.Fatalf("expected a random suffix")
	}
}
