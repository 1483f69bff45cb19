package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// StateStore — типизированное хранилище корзины и пользователя.
// Load* никогда не возвращают ошибку: повреждённые данные дают значение по умолчанию.
type StateStore interface {
	LoadCart(ctx context.Context) domain.Cart
	SaveCart(ctx context.Context, cart domain.Cart) error
	LoadUser(ctx context.Context) *domain.User
	SaveUser(ctx context.Context, user *domain.User) error
	ClearUser(ctx context.Context) error
}
