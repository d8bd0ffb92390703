package auth

import (
	"github.com/peopleops/hr-console/internal/domain"
)

// TokenExtractor pulls the session token out of a login response body.
type TokenExtractor struct {
	Name    string
	Extract func(body map[string]any) (string, bool)
}

// FieldExtractor reads a top-level string field.
func FieldExtractor(field string) TokenExtractor {
	return TokenExtractor{
		Name: field,
		Extract: func(body map[string]any) (string, bool) {
			s, ok := body[field].(string)
			return s, ok && s != ""
		},
	}
}

// NestedExtractor reads a string field inside an object field.
func NestedExtractor(parent, field string) TokenExtractor {
	return TokenExtractor{
		Name: parent + "." + field,
		Extract: func(body map[string]any) (string, bool) {
			inner, ok := body[parent].(map[string]any)
			if !ok {
				return "", false
			}
			s, ok := inner[field].(string)
			return s, ok && s != ""
		},
	}
}

// DefaultTokenExtractors lists the field names the backend has used for the
// token, in priority order.
func DefaultTokenExtractors() []TokenExtractor {
	return []TokenExtractor{
		FieldExtractor("token"),
		FieldExtractor("accessToken"),
		FieldExtractor("jwtToken"),
		FieldExtractor("access_token"),
		NestedExtractor("data", "token"),
	}
}

// ExtractToken runs extractors in order; the first match wins. The name of
// the matching strategy is returned alongside the token.
func ExtractToken(body map[string]any, extractors []TokenExtractor) (token, strategy string, ok bool) {
	for _, e := range extractors {
		if t, found := e.Extract(body); found {
			return t, e.Name, true
		}
	}
	return "", "", false
}

// DeriveIdentity merges token claims with identity fields of the login
// response. Body fields take precedence over claims.
func DeriveIdentity(username string, tok domain.Token, body map[string]any) domain.Identity {
	id := domain.Identity{Username: username}

	id.ID = firstNonEmpty(bodyString(body, "id"), tok.SubjectID, "unknown")
	id.Name = firstNonEmpty(bodyString(body, "name"), tok.Name, username)
	id.Role = domain.Role(firstNonEmpty(bodyString(body, "role"), string(tok.Role), string(domain.RoleEmployee)))
	return id
}

func bodyString(body map[string]any, field string) string {
	s, _ := stringValue(body[field])
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
