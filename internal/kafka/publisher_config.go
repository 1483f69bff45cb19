package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	MaxAttempts  int
	RetryInitial time.Duration
	RetryMax     time.Duration
}

// writer — kafka.Writer без собственных ретраев: повторы делает Publisher.
// Ключ сообщения — телефон покупателя, Hash кладёт заказы одного покупателя в одну партицию.
func (c *PublisherConfig) writer() *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            1,
		WriteTimeout:           c.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
}
