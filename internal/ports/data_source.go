package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// DataSource — источник данных витрины (фикстуры или удалённый эндпоинт).
// Ошибка означает сбой транспорта/статуса; «отказ» бэкенда в login/signup/placeOrder
// приходит внутри результата.
type DataSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Login(ctx context.Context, phone, password string) (domain.AuthResult, error)
	Signup(ctx context.Context, req domain.SignupRequest) (domain.AuthResult, error)
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResult, error)
}
