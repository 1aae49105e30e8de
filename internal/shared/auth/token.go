package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ExtractBearerToken extracts the bearer token from the Authorization header.
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ExtractBearerTokenFromHeader(r.Header.Get("Authorization"))
}

// ExtractBearerTokenFromHeader extracts the token from an Authorization header value.
// The prefix is matched case-insensitively.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	const bearerPrefix = "bearer "
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

type actorClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Actor returns a label for the staff member behind a forwarded token, used only
// to attribute mutations in the logs. The signature is NOT verified here: the
// reservations backend owns authentication and rejects bad tokens itself.
func Actor(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return "anonymous"
	}
	claims := &actorClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "unknown"
	}
	if email := strings.TrimSpace(claims.Email); email != "" {
		return email
	}
	if subject := strings.TrimSpace(claims.Subject); subject != "" {
		return subject
	}
	return "unknown"
}
