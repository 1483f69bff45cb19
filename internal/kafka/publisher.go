package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// Проверка, что Publisher и NopPublisher удовлетворяют интерфейсу порта.
var (
	_ ports.HandoffPublisher = (*Publisher)(nil)
	_ ports.HandoffPublisher = NopPublisher{}
)

// writer — минимальный контракт над kafka.Writer, чтобы подменять его в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher — отправка оформленных заказов в топик передачи (подтверждение в мессенджере и т.п.).
type Publisher struct {
	writer       writer
	topic        string
	log          ports.Logger
	writeTimeout time.Duration
	maxAttempts  int
	retryInitial time.Duration
	retryMax     time.Duration
	jitterRand   *rand.Rand
	randMu       sync.Mutex
	closeOnce    sync.Once
}

// NewPublisher — конструктор; нулевые параметры заменяются значениями по умолчанию.
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}
	cfg.WriteTimeout = wt

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 100 * time.Millisecond
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 1 * time.Second
	}

	return &Publisher{
		writer:       cfg.writer(),
		topic:        cfg.Topic,
		log:          log,
		writeTimeout: wt,
		maxAttempts:  attempts,
		retryInitial: rInit,
		retryMax:     rMax,
		jitterRand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PublishOrder — сериализует заказ и пишет его в топик с ретраями (экспоненциальный backoff с jitter).
// Ошибка возвращается вызывающему только для логирования: оформление заказа от неё не зависит.
func (p *Publisher) PublishOrder(ctx context.Context, h domain.OrderHandoff) error {
	payload, err := json.Marshal(h)
	if err != nil {
		metrics.HandoffPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("marshal handoff: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(h.Request.Phone),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "order-status", Value: []byte(h.Result.Status)},
		},
		Time: time.Now(),
	}

	retry := p.retryInitial
	for attempt := 1; ; attempt++ {
		err = p.write(ctx, msg)
		if err == nil {
			metrics.HandoffPublished.WithLabelValues("ok").Inc()
			p.log.Infof(ctx, "order handoff published topic=%s order_id=%s status=%s", p.topic, h.Result.OrderID, h.Result.Status)
			return nil
		}
		if attempt >= p.maxAttempts || ctx.Err() != nil {
			break
		}

		sleep := p.withJitterEqual(retry)
		p.log.Warnf(ctx, "handoff write failed attempt=%d: %v (will retry in %s)", attempt, err, sleep)
		if !sleepWithBackoff(ctx, sleep) {
			break
		}
		retry = p.nextBackoff(retry)
	}

	metrics.HandoffPublished.WithLabelValues("error").Inc()
	return fmt.Errorf("publish handoff topic=%s: %w", p.topic, err)
}

// Close — закрывает writer (дописывает буфер). Вызывается при остановке приложения.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

func (p *Publisher) write(ctx context.Context, msg kafka.Message) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()
	return p.writer.WriteMessages(ctxTimeout, msg)
}

// NopPublisher — передача выключена: сообщения только учитываются в метриках.
type NopPublisher struct{}

func (NopPublisher) PublishOrder(context.Context, domain.OrderHandoff) error {
	metrics.HandoffPublished.WithLabelValues("skipped").Inc()
	return nil
}

func (NopPublisher) Close() error { return nil }
