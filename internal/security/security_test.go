package security

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "secret-password" {
		t.Fatalf("expected hashed value, got plaintext")
	}
	if !CheckPassword(hash, "secret-password") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestUserTokenRoundTrip(t *testing.T) {
	token, err := SignUserToken("test-secret", 42, "author", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, errParse := ParseUserToken("test-secret", token)
	if errParse != nil {
		t.Fatalf("parse token: %v", errParse)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "author" {
		t.Fatalf("expected username %q, got %q", "author", claims.Username)
	}
}

func TestParseUserToken_RejectsWrongSecret(t *testing.T) {
	token, err := SignUserToken("test-secret", 42, "author", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, errParse := ParseUserToken("other-secret", token); errParse == nil {
		t.Fatalf("expected wrong secret to fail")
	}
}

func TestSignUserToken_RequiresSecret(t *testing.T) {
	if _, err := SignUserToken("", 1, "author", time.Hour); err == nil {
		t.Fatalf("expected empty secret to fail")
	}
}
