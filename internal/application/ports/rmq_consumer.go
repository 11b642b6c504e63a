package ports

import "context"

// RMQConsumer drains the user-change queue for the audit trail.
type RMQConsumer interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
