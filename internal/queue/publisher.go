package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/campusops/admissions-backend/internal/event"
)

// Publisher hands a status-change event to the broker. One attempt, no retry;
// callers decide what a publish failure means.
type Publisher interface {
	PublishStatusChanged(evt event.StatusChangedEvent) error
}

// AMQPPublisher publishes events to a durable RabbitMQ queue.
type AMQPPublisher struct {
	ch    *amqp.Channel
	queue string
}

// NewAMQPPublisher opens a channel on conn and declares the durable
// status-change queue.
func NewAMQPPublisher(conn *amqp.Connection) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		event.QueueName, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AMQPPublisher{ch: ch, queue: q.Name}, nil
}

func (p *AMQPPublisher) PublishStatusChanged(evt event.StatusChangedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return p.ch.Publish(
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	return p.ch.Close()
}
