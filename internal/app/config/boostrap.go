package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Logger         *zap.Logger
	DriverConfig   *DriverConfig
	InternalConfig *InternalConfig
	// SweepWorkerStop if set is called during Shutdown to stop the hold
	// expiry worker.
	SweepWorkerStop func()
	// ConsumerStop if set is called during Shutdown to stop the payment
	// lifecycle consumer.
	ConsumerStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.SweepWorkerStop != nil {
		b.SweepWorkerStop()
		log.Println("Successfully stopped hold expiry worker")
	}

	if b.ConsumerStop != nil {
		b.ConsumerStop()
		log.Println("Successfully stopped payment lifecycle consumer")
	}

	if err := b.MongoDB.Disconnect(ctx); err != nil {
		return err
	}
	log.Println("Successfully closing MongoDB")

	if err := b.Redis.Close(); err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	if err := b.RabbitMQ.Close(); err != nil {
		return err
	}
	log.Println("Successfully closing RabbitMQ")

	if err := b.Logger.Sync(); err != nil {
		return err
	}
	log.Println("Successfully closing Logger")

	return nil
}
