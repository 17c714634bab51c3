package messaging

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := TopicName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	err = ch.QueueBind(q.Name, name, name, false, nil)
	if err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// ListenToTopic consumes the topic in the background until the channel closes
// or the handler fails. The returned channel is closed when consuming stops.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, logger *zap.Logger, handler func(amqp.Delivery) error) (<-chan struct{}, error) {
	msgs, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer ch.Close()
		consume(msgs, logger, handler)
	}()
	return done, nil
}

func consume(msgs <-chan amqp.Delivery, logger *zap.Logger, handler func(amqp.Delivery) error) {
	for d := range msgs {
		if err := handler(d); err != nil {
			logger.Error("error processing message", zap.Error(err), zap.String("routing_key", d.RoutingKey))
			return
		}
		if err := d.Ack(false); err != nil {
			logger.Warn("ack failed", zap.Error(err))
		}
	}
}
