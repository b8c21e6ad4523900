// Package services holds the marketplace rules: the idea catalogue and its like
// counters, the interest ledger, the mutual-interest check that gates chat, the chat
// channels themselves, and user accounts. All state lives in a *store.Store.
package services

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error carries a user-facing message and one of the sentinel kinds above.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func fail(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Notifier delivers a message to a user out of band (e-mail).
type Notifier interface {
	Notify(ctx context.Context, to, name, subject, body string) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, string, string) error { return nil }
