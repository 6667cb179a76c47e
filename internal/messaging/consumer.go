package messaging

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"pizzeria-system/internal/logger"
)

// Consumer handles message consumption from RabbitMQ
type Consumer struct {
	conn     *Connection
	logger   *logger.Logger
	prefetch int
}

// NewConsumer creates a new message consumer
func NewConsumer(conn *Connection, log *logger.Logger, prefetch int) *Consumer {
	return &Consumer{
		conn:     conn,
		logger:   log,
		prefetch: prefetch,
	}
}

// MessageHandler is a function that processes a message body. Returning
// an error causes the message to be requeued.
type MessageHandler func(ctx context.Context, body []byte) error

// Consume starts consuming messages from the given queue and dispatches
// them to the handler. It blocks until the context is cancelled or the
// delivery channel closes.
func (c *Consumer) Consume(ctx context.Context, queueName, consumerTag string, handler MessageHandler) error {
	if c.conn.IsClosed() {
		if err := c.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	err := c.conn.Channel().Qos(c.prefetch, 0, false)
	if err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := c.conn.Channel().Consume(
		queueName,   // queue
		consumerTag, // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming from %s: %w", queueName, err)
	}

	c.logger.Info("consumer_started",
		fmt.Sprintf("Consuming from queue %s", queueName),
		"", map[string]interface{}{
			"queue":    queueName,
			"prefetch": c.prefetch,
		})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed for queue %s", queueName)
			}
			c.handleDelivery(ctx, queueName, delivery, handler)
		}
	}
}

// handleDelivery processes a single delivery with manual ack/nack
func (c *Consumer) handleDelivery(ctx context.Context, queueName string, delivery amqp091.Delivery, handler MessageHandler) {
	err := handler(ctx, delivery.Body)
	if err != nil {
		c.logger.Error("message_processing_failed",
			fmt.Sprintf("Failed to process message from %s, requeueing", queueName),
			"", err, map[string]interface{}{
				"queue":       queueName,
				"routing_key": delivery.RoutingKey,
			})
		if nackErr := delivery.Nack(false, true); nackErr != nil {
			c.logger.Error("message_nack_failed", "Failed to nack message", "", nackErr, nil)
		}
		return
	}

	if ackErr := delivery.Ack(false); ackErr != nil {
		c.logger.Error("message_ack_failed", "Failed to ack message", "", ackErr, nil)
	}
}

// Close closes the consumer
func (c *Consumer) Close() error {
	return c.conn.Close()
}
