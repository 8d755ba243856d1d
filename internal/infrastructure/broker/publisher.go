package broker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/event"
)

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// session is one connection plus its publishing channel. closed fires when the
// broker or the network shuts the channel down.
type session struct {
	conn   io.Closer
	ch     channel
	closed <-chan *amqp.Error
}

func (s *session) alive() bool {
	select {
	case <-s.closed:
		return false
	default:
		return true
	}
}

func (s *session) close() {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

// Publisher sends domain events to a durable topic exchange. The event type is
// used as the routing key, so consumers bind with patterns like "account.*".
// A closed channel or connection is re-dialled on the next Publish.
type Publisher struct {
	mu       sync.Mutex
	sess     *session
	dial     func() (*session, error)
	shut     bool
	Exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	p := &Publisher{
		Exchange: exchange,
		dial:     func() (*session, error) { return dialSession(url, exchange) },
	}
	s, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.sess = s
	return p, nil
}

func dialSession(url, exchange string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &session{
		conn:   conn,
		ch:     ch,
		closed: ch.NotifyClose(make(chan *amqp.Error, 1)),
	}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shut = true
	p.drop()
}

func (p *Publisher) Publish(ctx context.Context, e event.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	ts := e.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ts,
		Type:         e.Type,
		Body:         b,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensure(); err != nil {
		return err
	}
	err = p.sess.ch.PublishWithContext(ctx, p.Exchange, e.Type, false, false, msg)
	if !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	// the channel died between the liveness check and the publish; one retry
	p.drop()
	if err := p.ensure(); err != nil {
		return err
	}
	return p.sess.ch.PublishWithContext(ctx, p.Exchange, e.Type, false, false, msg)
}

// ensure leaves p.sess usable, dialling a new session when the current one is
// gone. Callers hold p.mu.
func (p *Publisher) ensure() error {
	if p.shut {
		return amqp.ErrClosed
	}
	if p.sess != nil && p.sess.alive() {
		return nil
	}
	p.drop()
	if p.dial == nil {
		return amqp.ErrClosed
	}
	s, err := p.dial()
	if err != nil {
		return err
	}
	p.sess = s
	return nil
}

func (p *Publisher) drop() {
	if p.sess != nil {
		p.sess.close()
		p.sess = nil
	}
}

var _ event.Publisher = (*Publisher)(nil)
