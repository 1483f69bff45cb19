package domain

// OrderRequest — полезная нагрузка заказа: содержимое корзины и данные покупателя.
// Поля пользователя в JSON плоские, как и у остальных действий бэкенда.
type OrderRequest struct {
	Items []CartLine `json:"items"`
	Total int64      `json:"total"`
	User
}

// OrderResult — ответ на placeOrder.
type OrderResult struct {
	Status  string `json:"status"`
	OrderID string `json:"orderId,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK — заказ принят.
func (r OrderResult) OK() bool { return r.Status == StatusSuccess }

// OrderHandoff — сообщение для последующей обработки подтверждения заказа
// (мессенджер и т.п.); уходит независимо от статуса.
type OrderHandoff struct {
	Request OrderRequest `json:"request"`
	Result  OrderResult  `json:"result"`
}
