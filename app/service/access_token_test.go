package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewAccessTokenIssuer("secret", 5*time.Minute)

	token, err := issuer.Issue(JWTUser{Sub: 42, Username: "alice"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	user, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if user.Sub != 42 || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAccessTokenIssuer_ClaimsShape(t *testing.T) {
	now := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	issuer := NewAccessTokenIssuer("secret", 5*time.Minute)
	issuer.now = func() time.Time { return now }

	token, err := issuer.Issue(JWTUser{Sub: 7, Username: "bob"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		t.Fatalf("expected HS256, got %s", parsed.Method.Alg())
	}
	if claims.Subject != "7" || claims.Username != "bob" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti to be set")
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(5 * time.Minute)) {
		t.Fatalf("unexpected expiry: %v", claims.ExpiresAt)
	}
}

func TestAccessTokenIssuer_Expired(t *testing.T) {
	issuer := NewAccessTokenIssuer("secret", -time.Minute)

	token, err := issuer.Issue(JWTUser{Sub: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAccessTokenIssuer_WrongSecret(t *testing.T) {
	token, err := NewAccessTokenIssuer("one", time.Minute).Issue(JWTUser{Sub: 1})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := NewAccessTokenIssuer("two", time.Minute).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAccessTokenIssuer_RejectsNonHMAC(t *testing.T) {
	claims := &Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := NewAccessTokenIssuer("secret", time.Minute).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAccessTokenIssuer_RejectsBadSubject(t *testing.T) {
	for _, subject := range []string{"", "abc", "0"} {
		claims := &Claims{
			Username: "alice",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   subject,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign failed: %v", err)
		}
		if _, err := NewAccessTokenIssuer("secret", time.Minute).Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("subject %q: expected ErrInvalidToken, got %v", subject, err)
		}
	}
}
