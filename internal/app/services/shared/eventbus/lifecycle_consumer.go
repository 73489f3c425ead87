package eventbus

import (
	"context"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// LifecycleConsumer drains the payment lifecycle queue and hands each event
// to the reconciliation usecase. Deliveries are acked after handling;
// handler errors nack with requeue so the broker redelivers, which the
// fingerprint dedup downstream makes safe.
type LifecycleConsumer struct {
	ch             *amqp.Channel
	log            *zap.Logger
	queueName      string
	reconciliation contracts.ReconciliationUsecase
	stop           chan struct{}
}

func NewLifecycleConsumer(conn *amqp.Connection, log *zap.Logger, queueName string, reconciliation contracts.ReconciliationUsecase) (*LifecycleConsumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return nil, err
	}

	return &LifecycleConsumer{
		ch:             ch,
		log:            log,
		queueName:      queueName,
		reconciliation: reconciliation,
		stop:           make(chan struct{}),
	}, nil
}

// Start begins consuming. It returns a stop function to halt execution.
func (c *LifecycleConsumer) Start(ctx context.Context) (stopFn func(), err error) {
	deliveries, err := c.ch.Consume(
		c.queueName,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				c.handleDelivery(ctx, delivery)
			}
		}
	}()

	return func() {
		close(c.stop)
		c.ch.Close()
	}, nil
}

func (c *LifecycleConsumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	deliveryCtx := context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())

	var event models.PaymentLifecycleEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		c.log.Error("LifecycleConsumer.handleDelivery error decoding event, dropping",
			zap.String(constvars.LoggingQueueKey, c.queueName),
			zap.Error(err),
		)
		// A payload that cannot decode will never decode; do not requeue.
		delivery.Nack(false, false)
		return
	}

	if err := c.reconciliation.Handle(deliveryCtx, &event); err != nil {
		c.log.Error("LifecycleConsumer.handleDelivery reconciliation failed, requeueing",
			zap.String(constvars.LoggingQueueKey, c.queueName),
			zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
			zap.Error(err),
		)
		delivery.Nack(false, true)
		return
	}

	delivery.Ack(false)
}
