package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// Каталог фикстур — 5 товаров и отдаётся только после имитированной задержки.
func TestFixtureProducts_FiveAfterDelay(t *testing.T) {
	f, err := NewFixture(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFixture: %v", err)
	}

	start := time.Now()
	products, err := f.Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("want simulated delay >= 50ms, got %s", elapsed)
	}
	if len(products) != 5 {
		t.Fatalf("want 5 products, got %d", len(products))
	}
	if products[0].ID != "p1" || products[0].Price != 2499 || products[0].Stock != 10 || len(products[0].Images) != 1 {
		t.Fatalf("unexpected first product: %+v", products[0])
	}
	if products[4].ID != "p5" || products[4].Name != "Leather Backpack" {
		t.Fatalf("unexpected last product: %+v", products[4])
	}
}

func TestFixtureProducts_ReturnsCopies(t *testing.T) {
	f, _ := NewFixture(0)
	a, _ := f.Products(context.Background())
	a[0].Name = "changed"
	a[0].Images[0] = "changed"

	b, _ := f.Products(context.Background())
	if b[0].Name == "changed" || b[0].Images[0] == "changed" {
		t.Fatalf("fixture catalogue must not be mutated by callers: %+v", b[0])
	}
}

func TestFixtureProducts_ContextCancelled(t *testing.T) {
	f, _ := NewFixture(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Products(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestFixtureLogin(t *testing.T) {
	f, _ := NewFixture(0)
	ctx := context.Background()

	res, err := f.Login(ctx, "9999999999", "1234")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !res.OK() || res.User.Phone != "9999999999" || res.User.Name != "Demo User" {
		t.Fatalf("want success with demo user, got %+v", res)
	}

	for _, tc := range [][2]string{{"9999999999", "0000"}, {"1111111111", "1234"}, {"", ""}} {
		res, err := f.Login(ctx, tc[0], tc[1])
		if err != nil {
			t.Fatalf("Login(%v): %v", tc, err)
		}
		if res.Status != domain.StatusError || res.User != nil {
			t.Fatalf("Login(%v): want error result, got %+v", tc, res)
		}
		if res.Message != "Invalid credentials (Mock: 9999999999/1234)" {
			t.Fatalf("Login(%v): unexpected message %q", tc, res.Message)
		}
	}
}

func TestFixtureSignup_EchoesUser(t *testing.T) {
	f, _ := NewFixture(0)
	req := domain.SignupRequest{User: domain.User{Name: "A", Phone: "123"}, Password: "secret"}

	res, err := f.Signup(context.Background(), req)
	if err != nil || !res.OK() {
		t.Fatalf("want success, got %+v err=%v", res, err)
	}
	if *res.User != req.User {
		t.Fatalf("want echoed user %+v, got %+v", req.User, *res.User)
	}
}

func TestFixturePlaceOrder_IDFromClock(t *testing.T) {
	f, _ := NewFixture(0)
	f.now = func() time.Time { return time.UnixMilli(1700000000123) }

	res, err := f.PlaceOrder(context.Background(), domain.OrderRequest{})
	if err != nil || !res.OK() {
		t.Fatalf("want success, got %+v err=%v", res, err)
	}
	if res.OrderID != "MOCK-ORD-1700000000123" {
		t.Fatalf("unexpected order id %q", res.OrderID)
	}
	if !strings.HasPrefix(res.OrderID, "MOCK-ORD-") {
		t.Fatalf("order id must carry MOCK-ORD- prefix, got %q", res.OrderID)
	}
}

func TestNew_SelectsStrategy(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		fixture bool
	}{
		{"mock flag", Config{UseMock: true, APIURL: "https://backend.example/exec"}, true},
		{"empty url", Config{}, true},
		{"remote", Config{APIURL: "https://backend.example/exec"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := New(&tc.cfg, nopLogger{})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			_, isFixture := ds.(*Fixture)
			if isFixture != tc.fixture {
				t.Fatalf("want fixture=%v, got %T", tc.fixture, ds)
			}
		})
	}
}
