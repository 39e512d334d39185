package display

import (
	"context"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*Notifier)(nil)

// Notifier delivers journey notifications through the UI scrollback.
type Notifier struct {
	ui  *UI
	log *logger.Logger
}

// NewNotifier creates a notifier that prints through ui.
func NewNotifier(ui *UI, log *logger.Logger) *Notifier {
	return &Notifier{ui: ui, log: log}
}

// Notify prints a normal notification.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.ui.PrintChat(message)
	return nil
}

// NotifyUrgent prints an error-styled notification.
func (n *Notifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.ui.PrintUrgent(message)
	return nil
}
