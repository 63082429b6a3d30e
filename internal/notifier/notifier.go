package notifier

import "context"

// Notifier sends a best-effort chat message. Callers log failures and carry on.
type Notifier interface {
	Notify(ctx context.Context, content string) error
}

// Nop is used when no chat channel is configured.
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }
