//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/storefront/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeOrderRequest — заказ из одной строки для уникального покупателя.
func MakeOrderRequest() domain.OrderRequest {
	line := domain.CartLine{
		Product: domain.Product{ID: "p-" + UniqSuffix(), Name: "Leather Backpack", Price: 3499, Stock: 12},
		Qty:     2,
	}
	return domain.OrderRequest{
		Items: []domain.CartLine{line},
		Total: line.Price * int64(line.Qty),
		User: domain.User{
			Name:    "Demo User",
			Phone:   "9" + UniqSuffix()[:9],
			Address: "123 Street",
			City:    "kerala",
			Pincode: "673502",
		},
	}
}
