package invalidation

import (
	"context"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher broadcasts list invalidations on a fanout exchange. Publishes are not confirmed;
// a lost event only delays another replica's cache refresh until the list TTL.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
	log      *zap.Logger
}

func NewPublisher(conn *amqp.Connection, logger *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err := declareExchange(ch); err != nil {
		return nil, err
	}

	return &Publisher{
		ch:       ch,
		exchange: constvars.InvalidationExchangeName,
		log:      logger,
	}, nil
}

var _ contracts.InvalidationPublisher = (*Publisher)(nil)

func (p *Publisher) Publish(ctx context.Context, event models.ListInvalidation) error {
	requestID := utils.GetRequestID(ctx)
	p.log.Debug("invalidation.Publisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, event.Resource),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		CorrelationId: requestID,
		Timestamp:     event.At,
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, "", false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.exchange)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func declareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		constvars.InvalidationExchangeName, // name
		amqp.ExchangeFanout,                // kind
		true,                               // durable
		false,                              // autoDelete
		false,                              // internal
		false,                              // noWait
		nil,                                // args
	)
}
