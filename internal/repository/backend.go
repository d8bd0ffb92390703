// Package repository reads and writes HR records through the backend API.
package repository

import (
	"context"
	"net/url"

	"github.com/peopleops/hr-console/internal/gateway"
)

// Backend is the part of the gateway the repositories use.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Decision is an approve or reject action on a pending record.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

// ParseDecision accepts the action names used by routes and the CLI.
func ParseDecision(s string) (Decision, bool) {
	switch Decision(s) {
	case Approve, Reject:
		return Decision(s), true
	}
	return "", false
}

func decide(ctx context.Context, api Backend, resource, id string, d Decision) error {
	return api.Put(ctx, gateway.Path(resource, id, string(d)), nil, nil)
}
