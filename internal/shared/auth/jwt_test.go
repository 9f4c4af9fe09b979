package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signHS256(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestJWTValidatorHS256(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	validator, err := NewJWTValidator("s3cret", "", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	validator.now = func() time.Time { return now }

	cases := map[string]struct {
		claims   Claims
		secret   string
		expected error
	}{
		"valid admin": {
			claims: Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}},
			secret: "s3cret",
		},
		"expired": {
			claims:   Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1", ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour))}},
			secret:   "s3cret",
			expected: ErrInvalidToken,
		},
		"wrong secret": {
			claims:   Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"}},
			secret:   "other",
			expected: ErrInvalidToken,
		},
		"partner role": {
			claims:   Claims{Role: "partner", RegisteredClaims: jwt.RegisteredClaims{Subject: "u-2"}},
			secret:   "s3cret",
			expected: ErrForbiddenRole,
		},
		"missing subject": {
			claims:   Claims{Role: "admin"},
			secret:   "s3cret",
			expected: ErrInvalidToken,
		},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			claims, err := validator.Validate(signHS256(t, tc.secret, tc.claims))
			if tc.expected != nil {
				if !errors.Is(err, tc.expected) {
					t.Fatalf("expected %v, got %v", tc.expected, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.OperatorID() != "u-1" {
				t.Fatalf("expected subject u-1, got %q", claims.OperatorID())
			}
		})
	}
}

func TestJWTValidatorWithoutKeysDecodesClaims(t *testing.T) {
	t.Parallel()

	validator, err := NewJWTValidator("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if validator.Verifies() {
		t.Fatalf("expected decode-only validator")
	}
	token := signHS256(t, "backend-only", Claims{Email: "ops@impact.club", RegisteredClaims: jwt.RegisteredClaims{Subject: "u-9"}})

	claims, err := validator.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "ops@impact.club" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
	if _, err := validator.Validate("  "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if _, err := validator.Validate("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewJWTValidatorRejectsBadPublicKey(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTValidator("", "-----BEGIN PUBLIC KEY-----\nnope\n-----END PUBLIC KEY-----"); err == nil {
		t.Fatalf("expected error for malformed public key")
	}
}

func TestExtractTokenPrecedence(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/ws/console?token=from-query", nil)
	if got := ExtractToken(req, TokenKey); got != "from-query" {
		t.Fatalf("expected query token, got %q", got)
	}

	req.AddCookie(&http.Cookie{Name: TokenKey, Value: "from-cookie"})
	if got := ExtractToken(req, TokenKey); got != "from-cookie" {
		t.Fatalf("expected cookie token, got %q", got)
	}

	req.Header.Set("Authorization", "bearer from-header")
	if got := ExtractToken(req, TokenKey); got != "from-header" {
		t.Fatalf("expected header token, got %q", got)
	}

	if got := ExtractBearerTokenFromHeader("Basic abc"); got != "" {
		t.Fatalf("expected empty token for basic auth, got %q", got)
	}
}

func TestMemoryTokenStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryTokenStore("abc")
	if store.Token() != "abc" {
		t.Fatalf("expected abc, got %q", store.Token())
	}
	store.ClearToken()
	if store.Token() != "" {
		t.Fatalf("expected cleared token, got %q", store.Token())
	}
}
