package ports

import "context"

// Notifier — уведомления пользовательского интерфейса.
type Notifier interface {
	Toast(ctx context.Context, msg string)    // Toast — короткое всплывающее сообщение.
	CartBadge(ctx context.Context, count int) // CartBadge — обновить счётчик корзины.
}
