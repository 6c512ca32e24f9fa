package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RequiredScopes are the management API scopes a bulk import run needs.
var RequiredScopes = []string{"read:connections", "create:users"}

// TokenInfo is what could be learned about a management API token
// without verifying its signature. Opaque (non-JWT) tokens yield a
// TokenInfo with Opaque set and nothing else.
type TokenInfo struct {
	Opaque    bool
	Issuer    string
	Audience  []string
	Scopes    []string
	ExpiresAt time.Time
}

// Expired reports whether the token expiry lies in the past. Tokens
// without an expiry claim are never reported expired.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}

// MissingScopes returns the required scopes absent from the token. An
// opaque token or one without a scope claim yields nil: scopes cannot
// be checked, only the platform can decide.
func (t *TokenInfo) MissingScopes() []string {
	if t.Opaque || len(t.Scopes) == 0 {
		return nil
	}

	held := make(map[string]bool, len(t.Scopes))
	for _, s := range t.Scopes {
		held[s] = true
	}

	var missing []string
	for _, s := range RequiredScopes {
		if !held[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

// InspectToken parses a bearer credential WITHOUT verifying its
// signature; only the platform holds the signing key. The point is to
// surface an expired or under-scoped token before a submission is
// burned on it. A credential that does not parse as a JWT is treated
// as opaque, not as an error.
func InspectToken(token string) (*TokenInfo, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token must not be empty")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return &TokenInfo{Opaque: true}, nil
	}

	info := &TokenInfo{}

	if issuer, err := claims.GetIssuer(); err == nil {
		info.Issuer = issuer
	}
	if audience, err := claims.GetAudience(); err == nil {
		info.Audience = audience
	}
	if expiry, err := claims.GetExpirationTime(); err == nil && expiry != nil {
		info.ExpiresAt = expiry.Time
	}
	if scope, ok := claims["scope"].(string); ok && scope != "" {
		info.Scopes = strings.Fields(scope)
	}

	return info, nil
}
