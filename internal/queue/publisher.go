package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/seating-areas/internal/logging"
)

// DefaultDialTimeout bounds connecting and the AMQP handshake.  Publishing
// is best effort and must not hold a write response for long.
const DefaultDialTimeout = 2 * time.Second

// Publisher sends change events to RabbitMQ.  A connection is opened per
// publish; the write volume of this service is a handful per minute.
type Publisher struct {
	url         string
	dialTimeout time.Duration
}

// NewPublisher returns a Publisher dialing url on every publish.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, dialTimeout: DefaultDialTimeout}
}

// timeout is the dial timeout, shortened to the context deadline when that
// comes first.
func (p *Publisher) timeout(ctx context.Context) time.Duration {
	d := p.dialTimeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < d {
			d = left
		}
	}
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}

// PublishSeatingAreaChanged publishes ev to the seating_area.changed
// queue as a persistent JSON message.  Errors are logged and returned so
// the caller can decide to ignore them.
func (p *Publisher) PublishSeatingAreaChanged(ctx context.Context, ev SeatingAreaChangedEvent) error {
	log := logging.FromContext(ctx)

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.timeout(ctx)),
	})
	if err != nil {
		log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if err := declareQueue(ch); err != nil {
		log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Timestamp:     time.Now().UTC(),
		CorrelationId: ev.CorrelationID,
		Body:          body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                      // default exchange
		SeatingAreaChangedQueue, // routing key = queue name
		false,                   // mandatory
		false,                   // immediate
		pub,
	); err != nil {
		log.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}

// declareQueue makes sure the durable queue exists.  Idempotent.
func declareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		SeatingAreaChangedQueue, // name
		true,                    // durable
		false,                   // autoDelete
		false,                   // exclusive
		false,                   // noWait
		nil,                     // args
	)
	return err
}
