// Package rabbitmq fans order events out to interested consumers. The
// order service publishes a status-changed event after every successful
// transition; other app instances (e.g. the shop dashboard) consume the
// queue as their signal to refetch the order list instead of polling.
package rabbitmq

import (
	"encoding/json"
	"fmt"

	amqp "github.com/streadway/amqp"

	"quanan/internal/models"

	"github.com/rs/zerolog/log"
)

const orderQueue = "order_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the
// order event queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		orderQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", orderQueue, err)
	}

	log.Info().Str("queue", orderQueue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// Publish sends a raw message. The default exchange routes by queue
// name, so the routing key doubles as the destination queue for an
// empty exchange.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// PublishOrderEvent marshals and publishes one order event to the
// order event queue. It satisfies the order service's EventPublisher
// interface.
func (c *Client) PublishOrderEvent(event models.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	return c.Publish("", orderQueue, body)
}

// ConsumeOrderEvents delivers incoming order events to the handler in a
// background goroutine. Handler errors nack the message for redelivery;
// success acks it.
func (c *Client) ConsumeOrderEvents(handler func(event models.OrderEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		orderQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var event models.OrderEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Error().Err(err).Msg("discarding malformed order event")
				_ = msg.Nack(false, false)
				continue
			}
			if err := handler(event); err != nil {
				log.Warn().Err(err).Str("order_id", event.OrderID).Msg("order event handler failed, requeueing")
				if nackErr := msg.Nack(false, true); nackErr != nil {
					log.Error().Err(nackErr).Msg("nack failed")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Error().Err(ackErr).Msg("ack failed")
			}
		}
	}()

	return nil
}
