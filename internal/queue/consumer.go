package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// AuditLogPath is where the consumer appends one line per change event.
var AuditLogPath = filepath.Join("logs", "seating_area.log")

// StartAuditConsumer connects to RabbitMQ, declares the
// seating_area.changed queue and appends every event to AuditLogPath.
// It reconnects with exponential backoff until ctx is cancelled, then
// returns nil.
func StartAuditConsumer(ctx context.Context, url string) error {
	log := logrus.WithField("component", "seating-area-consumer")
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return nil
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.WithError(err).Warnf("failed to dial broker; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return nil
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn)
		_ = conn.Close()
		if err == nil {
			return nil
		}
		log.WithError(err).Warn("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// consumeLoop returns nil when ctx is cancelled and an error when the
// delivery channel closes underneath it.
func consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logrus.WithError(err).Warn("seating-area-consumer: set QoS failed")
	}
	if err := declareQueue(ch); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(SeatingAreaChangedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := appendAudit(d.Body); err != nil {
				logrus.WithError(err).Error("seating-area-consumer: handle message failed")
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func appendAudit(body []byte) error {
	if err := os.MkdirAll(filepath.Dir(AuditLogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(AuditLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	return writeAuditLine(f, body)
}

// writeAuditLine decodes a SeatingAreaChangedEvent and writes it as a
// single human readable line.
func writeAuditLine(w io.Writer, body []byte) error {
	var ev SeatingAreaChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.SeatingAreaID == "" {
		return errors.New("event without seating_area_id")
	}
	line := fmt.Sprintf("[%s] Seating area %s | seating_area_id=%s | restaurant_id=%s | name=%q | bookable=%t | bookable_online=%t | priority=%d | actor=%s | booking_tables_updated=%d\n",
		ev.OccurredAt, ev.Action, ev.SeatingAreaID, ev.RestaurantID, ev.Name, ev.Bookable, ev.BookableOnline,
		ev.BookingPriority, ev.ActorID, ev.BookingTablesUpdated)
	if _, err := io.WriteString(w, line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
