// Package authtest mints session tokens shaped like the HR backend's, for
// tests in any package.
package authtest

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const secret = "authtest-signing-key"

// MintToken signs claims with HS256. exp is set from ttl unless claims
// already carry one; a zero ttl omits it.
func MintToken(t testing.TB, ttl time.Duration, claims map[string]any) string {
	t.Helper()
	mc := jwt.MapClaims{"iat": time.Now().Unix()}
	if ttl != 0 {
		mc["exp"] = time.Now().Add(ttl).Unix()
	}
	for k, v := range claims {
		mc[k] = v
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return signed
}

// UserToken mints a token carrying the short claim names the backend uses.
func UserToken(t testing.TB, ttl time.Duration, id, name, role string) string {
	t.Helper()
	return MintToken(t, ttl, map[string]any{"nameid": id, "name": name, "role": role})
}
