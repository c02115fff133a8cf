package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"storefront/internal/domain"
)

// AMQP publishes notices as JSON to a durable fanout exchange. The routing
// key is the notice kind.
type AMQP struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *log.Logger
}

func DialAMQP(url, exchange string, logger *log.Logger) (*AMQP, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQP{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

func (a *AMQP) Notify(ctx context.Context, n domain.Notice) {
	msg, err := publishing(n)
	if err != nil {
		a.logger.Printf("notice amqp: encode id=%s error=%v", n.ID, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ch.PublishWithContext(ctx, a.exchange, string(n.Kind), false, false, msg); err != nil {
		a.logger.Printf("notice amqp: publish id=%s error=%v", n.ID, err)
	}
}

func (a *AMQP) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ch.Close(); err != nil {
		a.conn.Close()
		return err
	}
	return a.conn.Close()
}

func publishing(n domain.Notice) (amqp.Publishing, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.ID,
		Timestamp:    n.At,
		Type:         string(n.Kind),
		Body:         body,
	}, nil
}
