package email

import (
	"context"
	"sync"
)

// FakeProvider records messages instead of delivering them. Wired in dev
// environments and tests.
type FakeProvider struct {
	mu   sync.Mutex
	sent []Message

	// FailWith, when set, is returned by every Send.
	FailWith error
}

func NewFakeProvider() *FakeProvider { return &FakeProvider{} }

func (p *FakeProvider) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.FailWith != nil {
		return p.FailWith
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, *msg)
	return nil
}

func (p *FakeProvider) Name() string { return "fake" }

// Sent returns a copy of everything delivered so far.
func (p *FakeProvider) Sent() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.sent))
	copy(out, p.sent)
	return out
}
