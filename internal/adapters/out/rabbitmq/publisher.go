// Package rabbitmq publishes order notifications to RabbitMQ queues as JSON.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"marketplace/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 3 * time.Second

// Publisher implements ports.EventPublisher over a single AMQP channel.
// Publishes are serialised on the channel.
type Publisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher opens a channel on conn and declares the durable queues it publishes to.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	for _, queue := range []string{PartCancelledQueue, CommissionReversedQueue, StatusChangedQueue} {
		if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("declare %s: %w", queue, err)
		}
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}

// PublishPartCancelled publishes the cancellation and, when the platform gave back
// its commission, a separate reversal message for the vendor ledger consumers.
func (p *Publisher) PublishPartCancelled(ctx context.Context, event ports.PartCancelledEvent) error {
	if err := p.publishJSON(ctx, PartCancelledQueue, partCancelledMessage(event)); err != nil {
		return err
	}

	if !event.CommissionReversed {
		return nil
	}
	return p.publishJSON(ctx, CommissionReversedQueue, commissionReversedMessage(event))
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	return p.publishJSON(ctx, StatusChangedQueue, statusChangedMessage(event))
}

func (p *Publisher) publishJSON(ctx context.Context, queue string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", queue, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(
		pubCtx,
		"",    // default exchange
		queue, // queue name as routing key
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
		return fmt.Errorf("publish %s: %w", queue, err)
	}
	return nil
}
