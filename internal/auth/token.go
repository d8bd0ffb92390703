package auth

import (
	"errors"
	"fmt"
	"strconv"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/peopleops/hr-console/internal/domain"
)

// Claim names as issued by the ASP.NET identity stack behind the HR API.
const (
	claimNameIdentifierURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	claimNameURI           = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	claimRoleURI           = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

// Ordered claim lookups, first non-empty value wins.
var (
	subjectClaims = []string{"nameid", "sub", claimNameIdentifierURI}
	nameClaims    = []string{"name", "unique_name", claimNameURI}
	roleClaims    = []string{"role", claimRoleURI}
)

// ErrTokenUndecodable is returned for tokens that are not structurally JWTs.
var ErrTokenUndecodable = errors.New("auth: token cannot be decoded")

// Claims is the decoded payload of a session token.
type Claims map[string]any

// Lookup returns the first non-empty string value among names.
func (c Claims) Lookup(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := stringValue(c[name]); ok {
			return v, true
		}
	}
	return "", false
}

// DecodeToken reads the token payload without checking the signature; only
// the backend holds the key. The expiry is required.
func DecodeToken(raw string) (domain.Token, Claims, error) {
	if raw == "" {
		return domain.Token{}, nil, ErrTokenUndecodable
	}
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, mapClaims); err != nil {
		return domain.Token{}, nil, fmt.Errorf("%w: %v", ErrTokenUndecodable, err)
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return domain.Token{}, nil, fmt.Errorf("%w: exp: %v", ErrTokenUndecodable, err)
	}
	if exp == nil {
		return domain.Token{}, nil, fmt.Errorf("%w: missing exp", ErrTokenUndecodable)
	}

	claims := Claims(mapClaims)
	tok := domain.Token{Raw: raw, ExpiresAt: exp.Time}
	tok.SubjectID, _ = claims.Lookup(subjectClaims...)
	tok.Name, _ = claims.Lookup(nameClaims...)
	if role, ok := claims.Lookup(roleClaims...); ok {
		tok.Role = domain.Role(role)
	}
	return tok, claims, nil
}

// stringValue accepts strings, numbers and the first element of a string
// array (multi-role tokens carry "role" as an array).
func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case []any:
		if len(t) > 0 {
			return stringValue(t[0])
		}
	case []string:
		if len(t) > 0 {
			return t[0], t[0] != ""
		}
	}
	return "", false
}
