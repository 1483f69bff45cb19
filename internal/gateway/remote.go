package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

const (
	actionGetProducts = "getProducts"
	actionLogin       = "login"
	actionSignup      = "signup"
	actionPlaceOrder  = "placeOrder"

	maxResponseBytes = 4 << 20
)

// Проверка, что Remote удовлетворяет интерфейсу DataSource.
var _ ports.DataSource = (*Remote)(nil)

// RemoteConfig — параметры удалённого эндпоинта.
type RemoteConfig struct {
	URL             string
	Timeout         time.Duration     // 0 — без таймаута
	BreakerEnabled  bool              // размыкатель после серии сбоев транспорта
	BreakerFailures uint32            // подряд идущих сбоев до размыкания
	BreakerCooldown time.Duration     // время в состоянии open
	Transport       http.RoundTripper // nil — http.DefaultTransport
}

// Remote — источник данных поверх одного HTTP/JSON эндпоинта бэкенда.
// GET ?action=getProducts для каталога, POST {action, ...поля} для остального.
type Remote struct {
	endpoint *url.URL
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewRemote — конструктор Remote.
func NewRemote(cfg RemoteConfig, log ports.Logger) (*Remote, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", cfg.URL)
	}

	r := &Remote{
		endpoint: u,
		client:   &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
	}

	if cfg.BreakerEnabled {
		failures := cfg.BreakerFailures
		if failures == 0 {
			failures = 5
		}
		r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "storefront-backend",
			Timeout: cfg.BreakerCooldown,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warnf(context.Background(), "circuit breaker %s: %s -> %s", name, from, to)
			},
		})
	}
	return r, nil
}

type productsResponse struct {
	Status   string           `json:"status"`
	Products []domain.Product `json:"products"`
}

// Products — каталог; статус не success → ErrBadStatus, сбой транспорта → ErrTransport.
func (r *Remote) Products(ctx context.Context) ([]domain.Product, error) {
	u := *r.endpoint
	q := u.Query()
	q.Set("action", actionGetProducts)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrTransport, err)
	}

	var resp productsResponse
	if err := r.do(actionGetProducts, req, &resp, false); err != nil {
		return nil, err
	}
	if resp.Status != domain.StatusSuccess {
		metrics.GatewayRequests.WithLabelValues("remote", actionGetProducts, "bad_status").Inc()
		return nil, fmt.Errorf("%w: %q", domain.ErrBadStatus, resp.Status)
	}
	metrics.GatewayRequests.WithLabelValues("remote", actionGetProducts, "ok").Inc()

	if resp.Products == nil {
		return []domain.Product{}, nil
	}
	return resp.Products, nil
}

// Login — пересылает телефон и пароль, ответ отдаётся как есть.
func (r *Remote) Login(ctx context.Context, phone, password string) (domain.AuthResult, error) {
	body := struct {
		Action   string `json:"action"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}{actionLogin, phone, password}

	var res domain.AuthResult
	err := r.post(ctx, actionLogin, body, &res)
	return res, err
}

// Signup — пересылает все поля формы регистрации.
func (r *Remote) Signup(ctx context.Context, su domain.SignupRequest) (domain.AuthResult, error) {
	body := struct {
		Action string `json:"action"`
		domain.SignupRequest
	}{actionSignup, su}

	var res domain.AuthResult
	err := r.post(ctx, actionSignup, body, &res)
	return res, err
}

// PlaceOrder — пересылает заказ; ответ отдаётся как есть.
func (r *Remote) PlaceOrder(ctx context.Context, order domain.OrderRequest) (domain.OrderResult, error) {
	body := struct {
		Action string `json:"action"`
		domain.OrderRequest
	}{actionPlaceOrder, order}

	var res domain.OrderResult
	err := r.post(ctx, actionPlaceOrder, body, &res)
	return res, err
}

func (r *Remote) post(ctx context.Context, action string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", action, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint.String(), bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := r.do(action, req, out, true); err != nil {
		return err
	}
	metrics.GatewayRequests.WithLabelValues("remote", action, "ok").Inc()
	return nil
}

// do — один запрос (без ретраев) через размыкатель, если он включён.
// Любая ошибка на этом уровне оборачивает domain.ErrTransport.
// anyStatus: JSON-ответ со статусом разбирается и при не-2xx коде (отказ бэкенда отдаётся как есть).
func (r *Remote) do(action string, req *http.Request, out any, anyStatus bool) error {
	start := time.Now()
	defer func() {
		metrics.GatewayDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	}()

	call := func() (any, error) { return nil, r.roundTrip(req, out, anyStatus) }

	var err error
	if r.breaker != nil {
		_, err = r.breaker.Execute(call)
	} else {
		_, err = call()
	}
	if err == nil {
		return nil
	}

	metrics.GatewayRequests.WithLabelValues("remote", action, "transport").Inc()
	if errors.Is(err, domain.ErrTransport) {
		return err
	}
	// open/half-open размыкателя
	return fmt.Errorf("%w: %s: %v", domain.ErrTransport, action, err)
}

func (r *Remote) roundTrip(req *http.Request, out any, anyStatus bool) error {
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if !anyStatus || !hasStatus(body) {
			return fmt.Errorf("%w: http status %d", domain.ErrTransport, resp.StatusCode)
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrTransport, err)
	}
	return nil
}

// hasStatus — тело является JSON-объектом с непустым полем status.
func hasStatus(body []byte) bool {
	var head struct {
		Status string `json:"status"`
	}
	return json.Unmarshal(body, &head) == nil && head.Status != ""
}
