package notify

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"
)

// Notifier delivers user-facing notices. Implementations must not block the
// caller on slow sinks for longer than ctx allows and must not panic.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notice)
}

// Multi forwards every notice to each notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n domain.Notice) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

type Log struct {
	logger *log.Logger
}

func NewLog(logger *log.Logger) *Log {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Log{logger: logger}
}

func (l *Log) Notify(_ context.Context, n domain.Notice) {
	l.logger.Printf("notice: kind=%s product_id=%d message=%q", n.Kind, n.ProductID, n.Message)
}
