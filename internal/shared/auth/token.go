package auth

import (
	"net/http"
	"strings"
)

// TokenKey is the name under which the operator token is persisted on the client.
const TokenKey = "admin_token"

// ExtractBearerToken extracts the token from the Authorization header.
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ExtractBearerTokenFromHeader(r.Header.Get("Authorization"))
}

// ExtractBearerTokenFromHeader handles the "Bearer " prefix in any casing and
// returns an empty string if no token is present.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	const bearerPrefix = "bearer "
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// ExtractTokenFromCookie reads the persisted operator token.
func ExtractTokenFromCookie(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	if name == "" {
		name = TokenKey
	}
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// ExtractTokenFromQuery extracts a token from a URL query parameter.
func ExtractTokenFromQuery(r *http.Request, paramName string) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(paramName))
}

// ExtractToken looks at the Authorization header, then the token cookie, then
// the "token" query parameter, returning the first non-empty value.
func ExtractToken(r *http.Request, cookieName string) string {
	if token := ExtractBearerToken(r); token != "" {
		return token
	}
	if token := ExtractTokenFromCookie(r, cookieName); token != "" {
		return token
	}
	return ExtractTokenFromQuery(r, "token")
}
