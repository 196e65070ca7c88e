package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("changeme123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "changeme123" {
		t.Fatal("hash equals the plaintext password")
	}
	if !CheckPasswordHash("changeme123", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateJWT(42, "supplier@example.com", "Supplier", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "supplier@example.com" {
		t.Errorf("Email = %q, want supplier@example.com", claims.Email)
	}
	if claims.Role != "Supplier" {
		t.Errorf("Role = %q, want Supplier", claims.Role)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateJWT(7, "owner@example.com", "Owner", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	original := Secret
	Secret = []byte("other-secret")
	token, err := GenerateJWT(7, "owner@example.com", "Owner", time.Hour)
	Secret = original
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-jwt"); err == nil {
		t.Error("malformed token accepted")
	}
}
