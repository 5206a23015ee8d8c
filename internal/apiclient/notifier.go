package apiclient

import (
	"context"

	"go.uber.org/zap"
)

// Notification is a user-facing, transient message raised for network and server failures
type Notification struct {
	Kind    Kind
	Message string
	Status  int
}

// Notifier receives global notifications from the client
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, n Notification)

// Notify calls f
func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// LogNotifier writes notifications to a logger
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by logger
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification at error level
func (n *LogNotifier) Notify(_ context.Context, notification Notification) {
	n.logger.Error(notification.Message,
		zap.Stringer("kind", notification.Kind),
		zap.Int("status", notification.Status),
	)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}
