package main

import (
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"github.com/matst80/slask-storefront/pkg/messaging"
	"github.com/matst80/slask-storefront/pkg/tracking"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoRabbit = errors.New("RABBIT_URL is not configured")

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail storefront tracking events",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.RabbitUrl == "" {
			return errNoRabbit
		}
		conn, err := amqp.Dial(cfg.RabbitUrl)
		if err != nil {
			return err
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			return err
		}
		if err := messaging.DefineTopic(ch, messaging.DefaultPrefix, messaging.StorefrontEvents); err != nil {
			return err
		}
		done, err := messaging.ListenToTopic(ch, messaging.DefaultPrefix, messaging.StorefrontEvents, logger, logEvent)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		select {
		case <-ctx.Done():
		case <-done:
		}
		return nil
	},
}

func logEvent(d amqp.Delivery) error {
	event := tracking.BaseEvent{}
	if err := json.Unmarshal(d.Body, &event); err != nil {
		logger.Warn("skipping malformed event", zap.Error(err))
		return nil
	}
	logger.Info("storefront event",
		zap.Uint16("event", event.Event),
		zap.String("session", event.SessionId),
		zap.String("country", event.Country),
		zap.ByteString("body", d.Body))
	return nil
}
