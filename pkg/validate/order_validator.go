package validate

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

// OrderValidator — проверка заказа перед отправкой в бэкенд.
// Остатки на складе не проверяются: это решает бэкенд.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — проверяет покупателя и строки заказа.
func (v *OrderValidator) Validate(_ context.Context, order *domain.OrderRequest) error {
	if order == nil {
		return fmt.Errorf("%w: order is nil", ErrInvalidOrder)
	}
	if err := v.validateCustomer(&order.User); err != nil {
		return err
	}
	return v.validateItems(order.Items)
}

// validateCustomer — без телефона и адреса заказ не доставить.
func (v *OrderValidator) validateCustomer(u *domain.User) error {
	if u.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidOrder)
	}
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidOrder)
	}
	if u.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidOrder)
	}
	return nil
}

func (v *OrderValidator) validateItems(items []domain.CartLine) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrInvalidOrder)
	}

	for i := range items {
		item := &items[i]
		idx := strconv.Itoa(i)

		if item.ID == "" {
			return fmt.Errorf("%w: items[%s].id is required", ErrInvalidOrder, idx)
		}
		if item.Qty <= 0 {
			return fmt.Errorf("%w: items[%s].qty must be positive", ErrInvalidOrder, idx)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: items[%s].price must be non-negative", ErrInvalidOrder, idx)
		}
	}
	return nil
}
