package core

import "context"

type SessionAuthority interface {
	IssueToken(identity Identity) (string, error)
	VerifyToken(token string) (Identity, error)
}

// Notifier delivers a best-effort message to an account holder.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

// Answerer runs one query through match, render and log. A nil identity
// marks an unauthenticated or batch request.
type Answerer interface {
	Ask(ctx context.Context, identity *Identity, query string) (string, error)
}
