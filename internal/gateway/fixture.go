package gateway

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// Демо-учётка режима фикстур.
const (
	MockPhone    = "9999999999"
	MockPassword = "1234"

	mockLoginError = "Invalid credentials (Mock: 9999999999/1234)"
	mockOrderPref  = "MOCK-ORD-"
)

//go:embed fixtures/products.yaml
var productsYAML []byte

// Проверка, что Fixture удовлетворяет интерфейсу DataSource.
var _ ports.DataSource = (*Fixture)(nil)

// Fixture — источник данных без сети: встроенный каталог и демо-учётка.
type Fixture struct {
	products []domain.Product
	delay    time.Duration
	now      func() time.Time
}

// NewFixture — конструктор; delay имитирует сетевую задержку загрузки каталога,
// чтобы UI проходил через то же состояние «загрузка».
func NewFixture(delay time.Duration) (*Fixture, error) {
	products, err := parseFixtures(productsYAML)
	if err != nil {
		return nil, err
	}
	return &Fixture{products: products, delay: delay, now: time.Now}, nil
}

func parseFixtures(raw []byte) ([]domain.Product, error) {
	var doc struct {
		Products []domain.Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse product fixtures: %w", err)
	}
	return doc.Products, nil
}

// Products — копия каталога после задержки; отмена контекста прерывает ожидание.
func (f *Fixture) Products(ctx context.Context) ([]domain.Product, error) {
	if f.delay > 0 {
		t := time.NewTimer(f.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	metrics.GatewayRequests.WithLabelValues("fixture", actionGetProducts, "ok").Inc()

	out := make([]domain.Product, len(f.products))
	for i, p := range f.products {
		p.Images = append([]string(nil), p.Images...)
		out[i] = p
	}
	return out, nil
}

// Login — принимает только демо-учётку.
func (f *Fixture) Login(_ context.Context, phone, password string) (domain.AuthResult, error) {
	if phone == MockPhone && password == MockPassword {
		metrics.GatewayRequests.WithLabelValues("fixture", actionLogin, "ok").Inc()
		return domain.AuthResult{
			Status: domain.StatusSuccess,
			User: &domain.User{
				Name:    "Demo User",
				Phone:   phone,
				Address: "123 Street",
				City:    "kerala",
				Pincode: "673502",
			},
		}, nil
	}
	metrics.GatewayRequests.WithLabelValues("fixture", actionLogin, "rejected").Inc()
	return domain.AuthResult{Status: domain.StatusError, Message: mockLoginError}, nil
}

// Signup — всегда успешно, возвращает введённые данные пользователя (без пароля).
func (f *Fixture) Signup(_ context.Context, req domain.SignupRequest) (domain.AuthResult, error) {
	metrics.GatewayRequests.WithLabelValues("fixture", actionSignup, "ok").Inc()
	u := req.User
	return domain.AuthResult{Status: domain.StatusSuccess, User: &u}, nil
}

// PlaceOrder — номер заказа из текущего времени (миллисекунды Unix).
func (f *Fixture) PlaceOrder(_ context.Context, _ domain.OrderRequest) (domain.OrderResult, error) {
	metrics.GatewayRequests.WithLabelValues("fixture", actionPlaceOrder, "ok").Inc()
	return domain.OrderResult{
		Status:  domain.StatusSuccess,
		OrderID: mockOrderPref + strconv.FormatInt(f.now().UnixMilli(), 10),
	}, nil
}
