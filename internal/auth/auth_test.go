package auth

import (
	"reflect"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signedToken builds an HS256 token with the given claims. Signature
// validity is irrelevant here since inspection never verifies.
func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestInspectToken(t *testing.T) {
	future := time.Now().Add(time.Hour).Truncate(time.Second)

	tests := []struct {
		name    string
		token   string
		want    *TokenInfo
		wantErr bool
	}{
		{
			name: "full management token",
			token: signedToken(t, jwt.MapClaims{
				"iss":   "https://dev-tenant.us.auth0.com/",
				"aud":   "https://dev-tenant.us.auth0.com/api/v2/",
				"exp":   future.Unix(),
				"scope": "read:connections create:users",
			}),
			want: &TokenInfo{
				Issuer:    "https://dev-tenant.us.auth0.com/",
				Audience:  []string{"https://dev-tenant.us.auth0.com/api/v2/"},
				Scopes:    []string{"read:connections", "create:users"},
				ExpiresAt: future,
			},
		},
		{
			name:  "opaque token is tolerated",
			token: "not-a-jwt-at-all",
			want:  &TokenInfo{Opaque: true},
		},
		{
			name:    "empty token fails",
			token:   "   ",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InspectToken(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("InspectToken() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InspectToken() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTokenInfo_Expired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		info TokenInfo
		want bool
	}{
		{name: "future expiry", info: TokenInfo{ExpiresAt: now.Add(time.Hour)}, want: false},
		{name: "past expiry", info: TokenInfo{ExpiresAt: now.Add(-time.Hour)}, want: true},
		{name: "no expiry claim", info: TokenInfo{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenInfo_MissingScopes(t *testing.T) {
	tests := []struct {
		name string
		info TokenInfo
		want []string
	}{
		{
			name: "all scopes held",
			info: TokenInfo{Scopes: []string{"read:connections", "create:users", "read:users"}},
			want: nil,
		},
		{
			name: "one scope missing",
			info: TokenInfo{Scopes: []string{"read:connections"}},
			want: []string{"create:users"},
		},
		{
			name: "opaque token cannot be checked",
			info: TokenInfo{Opaque: true},
			want: nil,
		},
		{
			name: "no scope claim cannot be checked",
			info: TokenInfo{},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.MissingScopes(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingScopes() = %v, want %v", got, tt.want)
			}
		})
	}
}
