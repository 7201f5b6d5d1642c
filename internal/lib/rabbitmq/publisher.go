// Package rabbitmq реализует публикацию событий приложения в RabbitMQ.
// События об оформленных подписках забирают воркеры уведомлений.
package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-subscription/internal/models"
)

const (
	// Exchange — точка обмена для событий приложения.
	Exchange = "course.events"
	// RoutingKeySubscriptionCreated — ключ маршрутизации события об оформленной подписке.
	RoutingKeySubscriptionCreated = "subscription.created"
)

// Publisher инкапсулирует соединение и канал RabbitMQ.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher подключается к RabbitMQ, объявляет точку обмена и очереди.
func NewPublisher(url string) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.ExchangeDeclare(Exchange, "direct", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, q := range GetNotificationQueues() {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, Exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

// PublishSubscriptionCreated публикует событие об оформленной подписке.
func (p *Publisher) PublishSubscriptionCreated(event models.SubscriptionEvent) error {
	return p.publish(RoutingKeySubscriptionCreated, event)
}

// publish сериализует сообщение в JSON и публикует его в точку обмена.
func (p *Publisher) publish(routingKey string, message any) error {
	const op = "rabbitmq.publish"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
