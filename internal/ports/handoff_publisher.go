package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// HandoffPublisher — передача оформленного заказа в последующий процесс подтверждения.
type HandoffPublisher interface {
	PublishOrder(ctx context.Context, handoff domain.OrderHandoff) error
	Close() error
}
