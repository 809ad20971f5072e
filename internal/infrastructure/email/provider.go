package email

import "context"

// Provider is the external sending backend. Any non-nil error is a
// per-recipient failure for the caller, never a fatal one.
type Provider interface {
	Send(ctx context.Context, msg *Message) error
	Name() string
}
