package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// OrderValidator — проверка заказа перед отправкой.
type OrderValidator interface {
	Validate(ctx context.Context, order *domain.OrderRequest) error
}
