package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/olympics-logistics/internal/service"
)

// Publisher sends booking.confirmed messages. Each publish opens its own
// connection; bookings are rare enough that a long-lived channel is not
// worth the reconnect handling.
type Publisher struct {
	url     string
	timeout time.Duration
}

// NewPublisher returns a Publisher for the broker at url. An empty url
// yields a Publisher whose calls fail with ErrNoBroker.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, timeout: 5 * time.Second}
}

// ErrNoBroker is returned when no broker URL is configured.
var ErrNoBroker = errors.New("rabbitmq: no broker configured")

// BookingConfirmed implements service.Notifier.
func (p *Publisher) BookingConfirmed(ctx context.Context, c service.Confirmation) error {
	return p.Publish(ctx, NewBookingConfirmedEvent(c))
}

// Publish sends ev to the durable booking.confirmed queue as a persistent
// JSON message.
func (p *Publisher) Publish(ctx context.Context, ev BookingConfirmedEvent) error {
	if p.url == "" {
		return ErrNoBroker
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.timeout)})
	if err != nil {
		log.Debug().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(bookingQueueName, true, false, false, false, nil); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return ch.PublishWithContext(ctx, "", bookingQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
