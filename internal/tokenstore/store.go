// Package tokenstore persists the session token and the identity derived from
// it. Both entries are written and cleared together; a store never holds a
// token without an identity or the other way round.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/peopleops/hr-console/internal/domain"
)

// Entry names as they appear in every backend.
const (
	EntryToken = "token"
	EntryUser  = "user"
)

var (
	// ErrNoSession means neither entry is stored.
	ErrNoSession = errors.New("tokenstore: no session")
	// ErrCorrupt means the entries are inconsistent or unparseable.
	ErrCorrupt = errors.New("tokenstore: corrupt session")
)

// Record is the persisted pair.
type Record struct {
	Token    string
	Identity domain.Identity
}

// Store defines persistence access for the session record.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context) (Record, error)
	Clear(ctx context.Context) error
}

func encodeIdentity(id domain.Identity) (string, error) {
	data, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("tokenstore: encode identity: %w", err)
	}
	return string(data), nil
}

// decodeEntries turns the two raw entries into a Record. Presence flags let
// backends distinguish "missing" from "empty".
func decodeEntries(token string, hasToken bool, user string, hasUser bool) (Record, error) {
	switch {
	case !hasToken && !hasUser:
		return Record{}, ErrNoSession
	case !hasToken || !hasUser || token == "":
		return Record{}, ErrCorrupt
	}
	var id domain.Identity
	if err := json.Unmarshal([]byte(user), &id); err != nil {
		return Record{}, fmt.Errorf("%w: identity: %v", ErrCorrupt, err)
	}
	// Login always derives both; a stored identity missing either was not
	// written by us.
	if id.ID == "" || id.Role == "" {
		return Record{}, fmt.Errorf("%w: identity without id or role", ErrCorrupt)
	}
	return Record{Token: token, Identity: id}, nil
}

func validate(rec Record) error {
	if rec.Token == "" {
		return errors.New("tokenstore: empty token")
	}
	return nil
}
