package auth

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !CheckPasswordHash("secret1", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	Configure("test-secret", "1h")
	token, err := GenerateJWT("admin@bus.example", "c1")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Email != "admin@bus.example" || claims.CompanyID != "c1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseTokenRejectsBadSignature(t *testing.T) {
	Configure("secret-a", "1h")
	token, err := GenerateJWT("admin@bus.example", "c1")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	Configure("secret-b", "1h")
	if _, err := ParseToken(token); err == nil {
		t.Fatal("token signed with old secret accepted")
	}
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
