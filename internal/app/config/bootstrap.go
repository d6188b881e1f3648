package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Redis          *redis.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// WorkerStop, when set, stops the treatment refresh worker.
	WorkerStop func()
	// Waits block until background work has finished: asset cleanups, then invalidation broadcasts.
	Waits []func()
	// Closers release the invalidation publisher and subscriber channels.
	Closers []func() error
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.WorkerStop != nil {
		b.WorkerStop()
		log.Println("Successfully stopped treatment worker")
	}

	for _, wait := range b.Waits {
		wait := wait
		done := make(chan struct{})
		go func() {
			wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			log.Println("Gave up waiting for background work")
		}
	}
	log.Println("Successfully finished pending background work")

	for _, closeFn := range b.Closers {
		if err := closeFn(); err != nil {
			log.Printf("Failed to close invalidation channel: %v", err)
		}
	}

	err := b.Redis.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	if b.RabbitMQ != nil {
		err = b.RabbitMQ.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
