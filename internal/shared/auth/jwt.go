package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrForbiddenRole = errors.New("operator role not allowed")
)

// Claims mirrors the access token issued by the Impact Club admin login.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// OperatorID returns the token subject.
func (c *Claims) OperatorID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// JWTValidator verifies operator tokens. With neither a secret nor a public key
// configured it only decodes the claims, leaving verification to the REST API.
type JWTValidator struct {
	secret       []byte
	publicKey    *rsa.PublicKey
	allowedRoles map[string]struct{}
	now          func() time.Time
}

// NewJWTValidator builds a validator. publicKeyPEM selects RS256 and wins over secret (HS256).
func NewJWTValidator(secret, publicKeyPEM string, allowedRoles ...string) (*JWTValidator, error) {
	v := &JWTValidator{
		secret: []byte(strings.TrimSpace(secret)),
		now:    time.Now,
	}
	if pem := strings.TrimSpace(publicKeyPEM); pem != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("parse jwt public key: %w", err)
		}
		v.publicKey = key
	}
	if len(allowedRoles) > 0 {
		v.allowedRoles = make(map[string]struct{}, len(allowedRoles))
		for _, role := range allowedRoles {
			v.allowedRoles[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
		}
	}
	return v, nil
}

// Verifies reports whether signatures are checked locally.
func (v *JWTValidator) Verifies() bool {
	return v.publicKey != nil || len(v.secret) > 0
}

func (v *JWTValidator) Validate(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	if !v.Verifies() {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	} else {
		parsed, err := jwt.ParseWithClaims(token, claims, v.keyFunc,
			jwt.WithLeeway(5*time.Second),
			jwt.WithTimeFunc(v.now),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		if !parsed.Valid {
			return nil, ErrInvalidToken
		}
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if exp := claims.ExpiresAt; exp != nil && !exp.Time.After(v.now()) {
		return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	if v.allowedRoles != nil {
		if _, ok := v.allowedRoles[strings.ToLower(claims.Role)]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrForbiddenRole, claims.Role)
		}
	}
	return claims, nil
}

func (v *JWTValidator) keyFunc(t *jwt.Token) (any, error) {
	if v.publicKey != nil {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v, expected RS256", t.Header["alg"])
		}
		return v.publicKey, nil
	}
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return v.secret, nil
}
