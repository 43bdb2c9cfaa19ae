package repository

import (
	"context"
)

// Notifier delivers price alerts to users. Delivery is fire-and-forget:
// failures are logged by the caller, never retried.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, subject, body string) error
}
