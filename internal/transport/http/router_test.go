package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/gateway"
	"github.com/Gunvolt24/storefront/internal/kafka"
	"github.com/Gunvolt24/storefront/internal/notify"
	"github.com/Gunvolt24/storefront/internal/state"
	"github.com/Gunvolt24/storefront/internal/storage/memory"
	rest "github.com/Gunvolt24/storefront/internal/transport/http"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newRouter(t *testing.T, staticDir string) (*gin.Engine, *memory.KVStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := noopLogger{}
	src, err := gateway.NewFixture(0)
	require.NoError(t, err)

	kv := memory.NewKVStore()
	svc := usecase.NewStorefront(
		src,
		state.NewStore(kv, log, "", ""),
		notify.NewLog(log),
		validate.NewOrderValidator(),
		kafka.NopPublisher{},
		log,
	)
	svc.Load(context.Background())

	return rest.NewRouter(rest.NewHandler(svc, log, 0, staticDir), ""), kv
}

func do(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body=%s", w.Body.String())
	return v
}

func TestPing(t *testing.T) {
	r, _ := newRouter(t, "")
	w := do(t, r, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProducts(t *testing.T) {
	r, _ := newRouter(t, "")
	w := do(t, r, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[struct {
		Products []domain.Product `json:"products"`
		Error    string           `json:"error"`
	}](t, w)
	require.Len(t, got.Products, 5)
	require.Empty(t, got.Error)
}

func TestCartFlow(t *testing.T) {
	r, kv := newRouter(t, "")

	w := do(t, r, http.MethodPost, "/api/cart/items", map[string]string{"id": "p1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, r, http.MethodPost, "/api/cart/items", map[string]string{"id": "p1"})
	require.Equal(t, 2, int(decode[map[string]float64](t, w)["count"]))

	w = do(t, r, http.MethodPost, "/api/cart/items", map[string]string{"id": "p4"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/cart", nil)
	cart := decode[struct {
		Items          []domain.CartLine `json:"items"`
		Count          int               `json:"count"`
		Total          int64             `json:"total"`
		TotalFormatted string            `json:"totalFormatted"`
	}](t, w)
	require.Len(t, cart.Items, 2)
	require.Equal(t, "p1", cart.Items[0].ID)
	require.Equal(t, 3, cart.Count)
	require.Equal(t, int64(2*2499+1299), cart.Total)
	require.Equal(t, "₹6,297", cart.TotalFormatted)

	w = do(t, r, http.MethodPatch, "/api/cart/items/p1", map[string]int{"qty": 5})
	require.Equal(t, 6, int(decode[map[string]float64](t, w)["count"]))

	w = do(t, r, http.MethodPatch, "/api/cart/items/p1", map[string]int{"qty": 0})
	require.Equal(t, 1, int(decode[map[string]float64](t, w)["count"]))

	w = do(t, r, http.MethodDelete, "/api/cart/items/p1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, 0, int(decode[map[string]float64](t, w)["count"]))

	// корзина сохранена в хранилище
	raw, ok, err := kv.Get(context.Background(), state.DefaultCartKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[]`, string(raw))
}

func TestAddToCart_Validation(t *testing.T) {
	r, _ := newRouter(t, "")

	w := do(t, r, http.MethodPost, "/api/cart/items", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/cart/items", map[string]string{"id": "nope"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPatch, "/api/cart/items/p1", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginCheckoutLogout(t *testing.T) {
	r, _ := newRouter(t, "")

	w := do(t, r, http.MethodPost, "/api/login", map[string]string{"phone": "1", "password": "x"})
	bad := decode[domain.AuthResult](t, w)
	require.Equal(t, domain.StatusError, bad.Status)
	require.Contains(t, bad.Message, "Invalid credentials")

	// пустая корзина — оформление отклоняется
	w = do(t, r, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, domain.StatusError, decode[domain.OrderResult](t, w).Status)

	w = do(t, r, http.MethodPost, "/api/login", map[string]string{"phone": gateway.MockPhone, "password": gateway.MockPassword})
	ok := decode[domain.AuthResult](t, w)
	require.True(t, ok.OK())
	require.Equal(t, "Demo User", ok.User.Name)

	do(t, r, http.MethodPost, "/api/cart/items", map[string]string{"id": "p2"})

	w = do(t, r, http.MethodPost, "/api/checkout", nil)
	res := decode[domain.OrderResult](t, w)
	require.True(t, res.OK(), "result=%+v", res)
	require.True(t, strings.HasPrefix(res.OrderID, "MOCK-ORD-"))

	w = do(t, r, http.MethodGet, "/api/cart", nil)
	require.Equal(t, 0, int(decode[map[string]any](t, w)["count"].(float64)))

	w = do(t, r, http.MethodPost, "/api/logout", nil)
	require.Equal(t, "index.html", decode[map[string]string](t, w)["redirect"])
}

func TestSignupAndPlaceOrder(t *testing.T) {
	r, _ := newRouter(t, "")

	req := domain.SignupRequest{
		User:     domain.User{Name: "Asha", Phone: "9000000001", Address: "MG Road", City: "Kochi", Pincode: "682001"},
		Password: "secret",
	}
	w := do(t, r, http.MethodPost, "/api/signup", req)
	got := decode[domain.AuthResult](t, w)
	require.True(t, got.OK())
	require.Equal(t, req.User, *got.User)
	require.NotContains(t, w.Body.String(), "secret")

	w = do(t, r, http.MethodPost, "/api/orders", domain.OrderRequest{Total: 10, User: req.User})
	require.Equal(t, domain.StatusSuccess, decode[domain.OrderResult](t, w).Status)
}

func TestFragments(t *testing.T) {
	r, _ := newRouter(t, "")

	w := do(t, r, http.MethodGet, "/fragments/header", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `id="cart-count"`)
	require.Contains(t, w.Body.String(), ">Login<")

	w = do(t, r, http.MethodGet, "/fragments/nav?path=/products.html", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `class="nav-item active" href="products.html"`)
}

func TestPages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte(`<html><head></head><body><header></header><div class="mobile-nav"></div></body></html>`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o600))

	r, _ := newRouter(t, dir)

	w := do(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `class="logo"`)
	require.Contains(t, body, `class="nav-item active" href="index.html"`)
	require.Equal(t, 1, strings.Count(body, "https://unpkg.com/@phosphor-icons/web"))

	w = do(t, r, http.MethodGet, "/style.css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "body{}", w.Body.String())

	w = do(t, r, http.MethodGet, "/missing.html", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/../../etc/passwd", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
