package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultExchange    = "hotel.events"
	defaultDialTimeout = 2 * time.Second
	minReconnectDelay  = time.Second
	maxReconnectDelay  = 30 * time.Second
)

// ErrBrokerUnavailable is returned without touching the network while the
// publisher waits out its reconnect delay or another call is dialing.
var ErrBrokerUnavailable = errors.New("rabbitmq unavailable")

// AMQPPublisher sends events to a durable topic exchange, routed by event type.
// The connection is opened lazily and reopened after a failure, no sooner
// than the current reconnect delay.
type AMQPPublisher struct {
	url         string
	exchange    string
	dialTimeout time.Duration
	now         func() time.Time

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	dialing bool
	retryAt time.Time
	delay   time.Duration
}

func NewAMQPPublisher(url, exchange string) *AMQPPublisher {
	if exchange == "" {
		exchange = defaultExchange
	}
	return &AMQPPublisher{
		url:         url,
		exchange:    exchange,
		dialTimeout: defaultDialTimeout,
		now:         time.Now,
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		p.exchange,
		e.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.mu.Lock()
		if p.ch == ch {
			p.reset()
		}
		p.mu.Unlock()
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// channel returns the open channel or dials a new one. Only one caller dials
// at a time and mu is never held across the dial.
func (p *AMQPPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	p.mu.Lock()
	if p.ch != nil && !p.ch.IsClosed() {
		ch := p.ch
		p.mu.Unlock()
		return ch, nil
	}
	if p.dialing {
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: connection in progress", ErrBrokerUnavailable)
	}
	if now := p.now(); now.Before(p.retryAt) {
		wait := p.retryAt.Sub(now)
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: retrying in %s", ErrBrokerUnavailable, wait.Round(time.Millisecond))
	}
	p.reset()
	p.dialing = true
	p.mu.Unlock()

	conn, ch, err := p.dial(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialing = false
	if err != nil {
		p.delay = nextDelay(p.delay)
		p.retryAt = p.now().Add(p.delay)
		return nil, err
	}
	p.delay = 0
	p.retryAt = time.Time{}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) dial(ctx context.Context) (*amqp.Connection, *amqp.Channel, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	return conn, ch, nil
}

func nextDelay(d time.Duration) time.Duration {
	if d < minReconnectDelay {
		return minReconnectDelay
	}
	if d *= 2; d > maxReconnectDelay {
		return maxReconnectDelay
	}
	return d
}

// reset must be called with mu held.
func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
