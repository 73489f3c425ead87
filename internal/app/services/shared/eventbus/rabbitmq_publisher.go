package eventbus

import (
	"context"
	"sync"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher pushes domain events onto durable RabbitMQ queues with
// publisher confirms, so an acked publish survives a broker restart.
type Publisher struct {
	ch               *amqp.Channel
	log              *zap.Logger
	lifecycleQueue   string
	overbookingQueue string
	payoutQueue      string
	confirms         chan amqp.Confirmation
	mu               sync.Mutex
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger, lifecycleQueue, overbookingQueue, payoutQueue string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, queueName := range []string{lifecycleQueue, overbookingQueue, payoutQueue} {
		_, err = ch.QueueDeclare(
			queueName, // name
			true,      // durable
			false,     // autoDelete
			false,     // exclusive
			false,     // noWait
			nil,       // args
		)
		if err != nil {
			return nil, err
		}
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Publisher{
		ch:               ch,
		log:              log,
		lifecycleQueue:   lifecycleQueue,
		overbookingQueue: overbookingQueue,
		payoutQueue:      payoutQueue,
		confirms:         ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

var (
	_ contracts.EventPublisher  = (*Publisher)(nil)
	_ contracts.PayoutRequester = (*Publisher)(nil)
)

func (p *Publisher) PublishPaymentLifecycle(ctx context.Context, event *models.PaymentLifecycleEvent) error {
	return p.publish(ctx, p.lifecycleQueue, event)
}

func (p *Publisher) PublishOverbookingReviewed(ctx context.Context, event *models.OverbookingReviewedEvent) error {
	return p.publish(ctx, p.overbookingQueue, event)
}

// RequestPayout hands a settlement to the payout pipeline through its own
// durable queue.
func (p *Publisher) RequestPayout(ctx context.Context, request *contracts.PayoutRequest) error {
	return p.publish(ctx, p.payoutQueue, request)
}

func (p *Publisher) publish(ctx context.Context, queueName string, payload interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	// Publishing and waiting for the confirm must not interleave across
	// goroutines on one channel.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("eventbus.Publisher.publish error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, queueName),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}

	select {
	case confirmation := <-p.confirms:
		if !confirmation.Ack {
			p.log.Error("eventbus.Publisher.publish broker nacked message",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingQueueKey, queueName),
			)
			return exceptions.ErrRabbitMQPublishMessage(nil, queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queueName)
	}

	p.log.Info("eventbus.Publisher.publish confirmed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, queueName),
	)
	return nil
}
