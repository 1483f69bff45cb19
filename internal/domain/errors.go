package domain

import "errors"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// ErrTransport — сеть, таймаут, не-2xx ответ или нечитаемое тело.
	ErrTransport = errors.New("transport failure")
	// ErrBadStatus — бэкенд ответил, но статус не success.
	ErrBadStatus = errors.New("backend returned non-success status")
	// ErrLineNotFound — в корзине нет строки с таким ID.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrProductNotFound — товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
)
