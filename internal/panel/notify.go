package panel

import (
	"log/slog"

	"github.com/itsmostafa/chartpanel/internal/metrics"
)

// Alert event types published on the host event stream.
const (
	EventAlertSuccess = "alert-success"
	EventAlertError   = "alert-error"
)

// Event is a message published to the host's global event stream.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Publisher is the host notification channel.
type Publisher interface {
	Publish(event Event)
}

// Notifier lets scripts publish success and error alerts. Payloads are passed
// through untouched.
type Notifier struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewNotifier creates a notifier publishing to publisher. A nil publisher
// drops every alert.
func NewNotifier(publisher Publisher, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{publisher: publisher, logger: logger}
}

// Success publishes a success alert.
func (n *Notifier) Success(payload any) {
	n.publish(EventAlertSuccess, payload)
}

// Error publishes an error alert.
func (n *Notifier) Error(payload any) {
	n.publish(EventAlertError, payload)
}

func (n *Notifier) publish(eventType string, payload any) {
	if n.publisher == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			n.logger.Warn("alert publisher panicked", "type", eventType, "panic", r)
		}
	}()

	n.publisher.Publish(Event{Type: eventType, Payload: payload})
	metrics.Notifications.WithLabelValues(eventType).Inc()
}
