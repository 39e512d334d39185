package domain

import "context"

// ProviderCatalog provides the static provider catalog. Implementations
// must return providers in a stable catalog order.
type ProviderCatalog interface {
	List(ctx context.Context) ([]*Provider, error)
	Get(ctx context.Context, id string) (*Provider, error)
	Search(ctx context.Context, query string) ([]*Provider, error)
}

// Submitter accepts a finished booking. The shipped implementation is a
// stub; a real one would call a payment or order service.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (*Confirmation, error)
}

// CommandParser converts raw user input into structured commands.
type CommandParser interface {
	Parse(ctx context.Context, input string, step Step) (*Command, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
