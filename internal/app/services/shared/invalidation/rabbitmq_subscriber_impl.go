package invalidation

import (
	"context"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Purger drops cached list pages without broadcasting again.
type Purger interface {
	Purge(ctx context.Context, resource string) error
}

// Subscriber binds an exclusive queue to the invalidation exchange so this replica drops its
// cached pages when another replica changes a resource.
type Subscriber struct {
	ch     *amqp.Channel
	queue  string
	purger Purger
	log    *zap.Logger
	done   chan struct{}
}

func NewSubscriber(conn *amqp.Connection, purger Purger, logger *zap.Logger) (*Subscriber, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err := declareExchange(ch); err != nil {
		return nil, err
	}

	queue, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(queue.Name, "", constvars.InvalidationExchangeName, false, nil); err != nil {
		return nil, err
	}

	return &Subscriber{
		ch:     ch,
		queue:  queue.Name,
		purger: purger,
		log:    logger,
		done:   make(chan struct{}),
	}, nil
}

// Start consumes until ctx is cancelled or the channel closes.
func (s *Subscriber) Start(ctx context.Context) error {
	deliveries, err := s.ch.ConsumeWithContext(ctx, s.queue, "", true, true, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		defer close(s.done)
		for delivery := range deliveries {
			s.handle(ctx, delivery.Body)
		}
	}()
	return nil
}

func (s *Subscriber) handle(ctx context.Context, body []byte) {
	var event models.ListInvalidation
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Warn("invalidation.Subscriber dropping malformed event", zap.Error(err))
		return
	}

	if err := s.purger.Purge(ctx, event.Resource); err != nil {
		s.log.Error("invalidation.Subscriber error purging list cache",
			zap.String(constvars.LoggingRequestIDKey, event.RequestID),
			zap.String(constvars.LoggingResourceKey, event.Resource),
			zap.Error(err),
		)
	}
}

// Stop closes the channel and waits for the consumer loop to finish.
func (s *Subscriber) Stop() error {
	err := s.ch.Close()
	<-s.done
	return err
}
