package event

import (
	"encoding/json"
	"time"

	"github.com/streadway/amqp"
)

// Tipos de evento publicados por el motor.
const (
	TypeSessionCompleted = "assessment.session.completed"
	TypeTierUpgraded     = "entitlement.tier.upgraded"
)

// Publisher emite eventos de dominio hacia el resto del producto (checkout,
// analytics, paneles). El motor nunca depende de que alguien los consuma.
type Publisher interface {
	Publish(eventType string, payload interface{}) error
	Close()
}

// AMQPPublisher publica sobre un topic exchange usando el tipo de evento
// como routing key.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(amqpURL, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(eventType string, payload interface{}) error {
	envelope := map[string]interface{}{
		"type":       eventType,
		"payload":    payload,
		"emitted_at": time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// NopPublisher descarta eventos. Se usa cuando AMQP no esta configurado.
type NopPublisher struct{}

func (NopPublisher) Publish(string, interface{}) error { return nil }
func (NopPublisher) Close()                            {}
