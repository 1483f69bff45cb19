//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopic — имя топика, не пересекающееся между тестами.
func UniqueTopic(base string) string {
	return base + "-" + UniqSuffix()
}

// CreateTopic — топик с одной партицией через контроллер кластера;
// ждёт, пока топик появится в метаданных.
func CreateTopic(ctx context.Context, broker, topic string) error {
	broker = strings.TrimPrefix(broker, "PLAINTEXT://")

	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return fmt.Errorf("dial %s: %w", broker, err)
	}
	ctrl, err := conn.Controller()
	_ = conn.Close()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}

	for {
		parts, perr := admin.ReadPartitions(topic)
		if perr == nil && len(parts) > 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %s not ready: %w", topic, ctx.Err())
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// ReadFirst — первое сообщение топика (партиция 0, без consumer group).
func ReadFirst(ctx context.Context, brokers []string, topic string) (kafka.Message, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		Partition:   0,
		StartOffset: kafka.FirstOffset,
	})
	defer r.Close()
	return r.ReadMessage(ctx)
}
