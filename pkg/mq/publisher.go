package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher keeps one connection and channel open and re-dials once when
// the broker has dropped them.
type Publisher struct {
	url  string
	log  *zap.Logger
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	p := &Publisher{
		url: url,
		log: log.With(zap.String("component", "mq_publisher")),
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	p.conn = conn
	p.ch = ch
	return nil
}

// DeclareQueue declares a durable queue so messages survive broker restarts.
func (p *Publisher) DeclareQueue(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

// PublishJSON sends v as a persistent message on the default exchange,
// routed to queue.
func (p *Publisher) PublishJSON(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		p.log.Warn("Channel closed, reconnecting")
		if p.conn != nil {
			p.conn.Close()
		}
		if err := p.connect(); err != nil {
			return err
		}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", queue, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// TicketPublisher routes ticket events to one queue.
type TicketPublisher struct {
	publisher *Publisher
	queue     string
}

func NewTicketPublisher(publisher *Publisher, queue string) (*TicketPublisher, error) {
	if err := publisher.DeclareQueue(queue); err != nil {
		return nil, err
	}
	return &TicketPublisher{publisher: publisher, queue: queue}, nil
}

func (t *TicketPublisher) Topic() string {
	return t.queue
}

func (t *TicketPublisher) PublishTicketIssued(ctx context.Context, event TicketIssuedEvent) error {
	return t.publisher.PublishJSON(ctx, t.queue, event)
}
