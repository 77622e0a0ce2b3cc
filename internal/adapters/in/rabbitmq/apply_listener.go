package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/joseluisinigo/logonhours/internal/config"
	"github.com/joseluisinigo/logonhours/internal/core/ports/in"
	"github.com/joseluisinigo/logonhours/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ApplyListener consumes apply requests from a queue so schedules can be
// pushed to accounts unattended, e.g. from provisioning pipelines.
type ApplyListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.ScheduleUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

// ApplyRequestMessage is the queue payload: target account DNs plus the raw
// ranges to encode.
type ApplyRequestMessage struct {
	Accounts []string       `json:"accounts"`
	Ranges   []in.RangeSpec `json:"ranges"`
}

func NewApplyListener(useCase in.ScheduleUseCase, cfg *config.Config, logger out.LoggerPort) (*ApplyListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &ApplyListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *ApplyListener) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	queueName := l.cfg.RabbitMQ.Queue

	var queue amqp.Queue
	var err error
	for attempts := 0; attempts < 3; attempts++ {
		queue, err = l.channel.QueueDeclare(
			queueName,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)

		if err == nil {
			l.logger.Info("rabbitmq.queue_declare.success", out.LogFields{
				"queue": queueName,
			})
			break
		}

		l.logger.Warn("rabbitmq.queue_declare.retry", out.LogFields{
			"queue":   queueName,
			"attempt": attempts + 1,
			"error":   err.Error(),
		})

		if attempts == 2 {
			return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
		}

		time.Sleep(500 * time.Millisecond)
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Error("rabbitmq.message.rejected", out.LogFields{
						"error": err.Error(),
					})
					// Bad payloads will not get better on redelivery
					msg.Nack(false, false)
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("rabbitmq.listener.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *ApplyListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	var request ApplyRequestMessage
	if err := json.Unmarshal(msg.Body, &request); err != nil {
		return fmt.Errorf("decode apply request: %w", err)
	}

	if len(request.Accounts) == 0 {
		return fmt.Errorf("apply request without accounts")
	}

	hours, advisories, err := l.useCase.EncodeRanges(request.Ranges)
	if err != nil {
		return fmt.Errorf("encode apply request: %w", err)
	}

	for _, advisory := range advisories {
		l.logger.Warn("rabbitmq.apply.advisory", out.LogFields{
			"advisory": advisory,
		})
	}

	results := l.useCase.Apply(ctx, request.Accounts, hours)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}

	// Directory write failures are per-account outcomes, already logged
	// and reported by the service; the message itself is done.
	l.logger.Info("rabbitmq.apply.processed", out.LogFields{
		"accounts": len(results),
		"failed":   failed,
	})

	return nil
}

func (l *ApplyListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
