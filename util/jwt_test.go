package util

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateJWT(42, "a@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ValidateJWT(token, secret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@example.com" || claims.Issuer != issuer {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateJWTRejects(t *testing.T) {
	secret := []byte("secret")
	expired, err := GenerateJWT(1, "a@example.com", secret, -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	valid, err := GenerateJWT(1, "a@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for name, tc := range map[string]struct {
		token  string
		secret []byte
	}{
		"expired":      {expired, secret},
		"wrong secret": {valid, []byte("other")},
		"garbage":      {"not.a.token", secret},
	} {
		if _, err := ValidateJWT(tc.token, tc.secret); err == nil {
			t.Errorf("%s: token accepted", name)
		}
	}
}

func TestJWTRequiresSecret(t *testing.T) {
	if _, err := GenerateJWT(1, "a@example.com", nil, time.Hour); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("generate with empty key: %v", err)
	}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte{})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ValidateJWT(forged, []byte{}); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("validate with empty key: %v", err)
	}
}
