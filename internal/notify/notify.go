// Package notify — реализации ports.Notifier для разных хостов:
// страница (лог сервера) и CLI (вывод в терминал).
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Gunvolt24/storefront/internal/ports"
)

// Проверка, что реализации удовлетворяют интерфейсу порта.
var (
	_ ports.Notifier = (*Log)(nil)
	_ ports.Notifier = (*Writer)(nil)
)

// Log — тосты и обновления бейджа уходят в лог (page host: страница перерисуется по ответу API).
type Log struct {
	log ports.Logger
}

func NewLog(log ports.Logger) *Log { return &Log{log: log} }

func (n *Log) Toast(ctx context.Context, msg string) {
	n.log.Infof(ctx, "toast: %s", msg)
}

func (n *Log) CartBadge(ctx context.Context, count int) {
	n.log.Infof(ctx, "cart badge count=%d", count)
}

// Writer — печать в терминал для CLI.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriter(out io.Writer) *Writer { return &Writer{out: out} }

func (n *Writer) Toast(_ context.Context, msg string) {
	n.printf("✔ %s\n", msg)
}

func (n *Writer) CartBadge(_ context.Context, count int) {
	n.printf("cart: %d item(s)\n", count)
}

func (n *Writer) printf(format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, format, args...)
}
