package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// fakeWriter — отдаёт ошибки из errs по очереди, затем nil.
type fakeWriter struct {
	mu     sync.Mutex
	errs   []error
	calls  int
	got    []kafka.Message
	closed int
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if len(w.errs) > 0 {
		err := w.errs[0]
		w.errs = w.errs[1:]
		return err
	}
	w.got = append(w.got, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed++
	return nil
}

func newTestPublisher(w writer, attempts int) *Publisher {
	return &Publisher{
		writer: w, topic: "order-handoff", log: nopLogger{},
		writeTimeout: 50 * time.Millisecond,
		maxAttempts:  attempts,
		retryInitial: 2 * time.Millisecond,
		retryMax:     5 * time.Millisecond,
		jitterRand:   rand.New(rand.NewSource(1)),
	}
}

func handoff() domain.OrderHandoff {
	return domain.OrderHandoff{
		Request: domain.OrderRequest{
			Items: []domain.CartLine{{Product: domain.Product{ID: "p1", Price: 100}, Qty: 2}},
			Total: 200,
			User:  domain.User{Name: "Demo User", Phone: "9999999999", Address: "123 Street"},
		},
		Result: domain.OrderResult{Status: domain.StatusSuccess, OrderID: "ORD-1"},
	}
}

func TestPublishOrder_KeyAndPayload(t *testing.T) {
	w := &fakeWriter{}
	p := newTestPublisher(w, 3)

	if err := p.PublishOrder(context.Background(), handoff()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(w.got) != 1 {
		t.Fatalf("want 1 message, got %d", len(w.got))
	}
	msg := w.got[0]
	if string(msg.Key) != "9999999999" {
		t.Fatalf("key must be the customer phone, got %q", msg.Key)
	}

	var back domain.OrderHandoff
	if err := json.Unmarshal(msg.Value, &back); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if back.Result.OrderID != "ORD-1" || back.Request.Total != 200 || back.Request.Items[0].Qty != 2 {
		t.Fatalf("unexpected payload: %+v", back)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != domain.StatusSuccess {
		t.Fatalf("status header missing: %+v", msg.Headers)
	}
}

func TestPublishOrder_RetriesThenSucceeds(t *testing.T) {
	w := &fakeWriter{errs: []error{errors.New("leader not available")}}
	p := newTestPublisher(w, 3)

	if err := p.PublishOrder(context.Background(), handoff()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if w.calls != 2 {
		t.Fatalf("want 2 attempts, got %d", w.calls)
	}
}

func TestPublishOrder_GivesUpAfterMaxAttempts(t *testing.T) {
	boom := errors.New("broker down")
	w := &fakeWriter{errs: []error{boom, boom, boom, boom}}
	p := newTestPublisher(w, 3)

	before := testutil.ToFloat64(metrics.HandoffPublished.WithLabelValues("error"))
	err := p.PublishOrder(context.Background(), handoff())
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped broker error, got %v", err)
	}
	if w.calls != 3 {
		t.Fatalf("want 3 attempts, got %d", w.calls)
	}
	if got := testutil.ToFloat64(metrics.HandoffPublished.WithLabelValues("error")); got != before+1 {
		t.Fatalf("error metric not incremented: %v -> %v", before, got)
	}
}

func TestPublishOrder_StopsOnCanceledContext(t *testing.T) {
	w := &fakeWriter{errs: []error{context.Canceled, context.Canceled}}
	p := newTestPublisher(w, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.PublishOrder(ctx, handoff()); err == nil {
		t.Fatal("expected error")
	}
	if w.calls != 1 {
		t.Fatalf("canceled context must not retry, got %d calls", w.calls)
	}
}

func TestClose_Once(t *testing.T) {
	w := &fakeWriter{}
	p := newTestPublisher(w, 1)

	_ = p.Close()
	_ = p.Close()
	if w.closed != 1 {
		t.Fatalf("want single close, got %d", w.closed)
	}
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	if err := p.PublishOrder(context.Background(), handoff()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestPublisherConfig_Writer(t *testing.T) {
	cfg := &PublisherConfig{Brokers: []string{"b1:9092", "b2:9092"}, Topic: "order-handoff", WriteTimeout: time.Second}
	w := cfg.writer()

	if w.Topic != "order-handoff" || w.MaxAttempts != 1 || w.WriteTimeout != time.Second {
		t.Fatalf("unexpected writer: %+v", w)
	}
	if _, ok := w.Balancer.(*kafka.Hash); !ok {
		t.Fatalf("want hash balancer, got %T", w.Balancer)
	}
	if w.Addr == nil || w.Addr.Network() != "tcp" {
		t.Fatalf("unexpected addr: %v", w.Addr)
	}
}
