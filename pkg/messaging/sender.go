package messaging

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefineTopic declares the durable topic exchange and its queue.
func DefineTopic(ch *amqp.Channel, prefix string, topic ChangeTopic) error {
	name := TopicName(prefix, topic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return fmt.Errorf("declare exchange %s: %w", name, err)
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

func TopicName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

// Encode is the wire format of every published message.
func Encode[V any](data V) (amqp.Publishing, error) {
	bytes, err := json.Marshal(data)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType: "application/json",
		Body:        bytes,
	}, nil
}

func SendChange[V any](c *amqp.Connection, prefix string, topic ChangeTopic, data V) error {
	msg, err := Encode(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := TopicName(prefix, topic)
	return ch.Publish(
		name,
		name,
		true,
		false,
		msg,
	)
}
