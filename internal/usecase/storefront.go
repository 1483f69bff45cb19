package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/view"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/Gunvolt24/storefront/pkg/telemetry"
)

const (
	// HomePage — куда уводит logout.
	HomePage = "index.html"

	msgAddedToCart        = "Added to Cart"
	msgServiceUnavailable = "service unavailable"

	// handoffTimeout — бюджет фоновой передачи заказа, не связанный с дедлайном запроса.
	handoffTimeout = 30 * time.Second
)

// Storefront — состояние страницы (каталог, корзина, пользователь) и действия над ним.
// Единственный владелец состояния: всё изменяется только через методы,
// каждая мутация корзины/пользователя сразу пишется в хранилище.
type Storefront struct {
	source    ports.DataSource       // фикстуры или бэкенд
	store     ports.StateStore       // долговременное состояние
	notifier  ports.Notifier         // тосты и бейдж корзины
	validator ports.OrderValidator   // проверка перед оформлением
	handoff   ports.HandoffPublisher // передача заказа дальше; nil — выключено
	log       ports.Logger

	mu       sync.Mutex
	products []domain.Product
	cart     domain.Cart
	user     *domain.User
	orders   []domain.OrderResult // зарезервировано, пока не заполняется

	pending sync.WaitGroup // фоновые передачи заказов
}

// NewStorefront — DI-конструктор.
func NewStorefront(
	source ports.DataSource,
	store ports.StateStore,
	notifier ports.Notifier,
	validator ports.OrderValidator,
	handoff ports.HandoffPublisher,
	log ports.Logger,
) *Storefront {
	return &Storefront{
		source:    source,
		store:     store,
		notifier:  notifier,
		validator: validator,
		handoff:   handoff,
		log:       log,
	}
}

// Load — чтение сохранённого состояния при старте (как при загрузке страницы).
func (s *Storefront) Load(ctx context.Context) {
	cart := s.store.LoadCart(ctx)
	user := s.store.LoadUser(ctx)

	s.mu.Lock()
	s.cart = cart
	s.user = user
	s.mu.Unlock()

	s.log.Infof(ctx, "state loaded lines=%d count=%d logged_in=%t", len(cart.Lines), cart.Count(), user != nil)
}

// Cart — копия текущей корзины.
func (s *Storefront) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// CartCount — сумма количеств для бейджа.
func (s *Storefront) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

// User — копия текущего пользователя или nil.
func (s *Storefront) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// ViewState — срез состояния для рендера фрагментов страницы path.
func (s *Storefront) ViewState(path string) view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.State{CartCount: s.cart.Count(), LoggedIn: s.user != nil, Path: path}
}

// Orders — локально сохранённые заказы (сейчас всегда пусто).
func (s *Storefront) Orders() []domain.OrderResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.OrderResult(nil), s.orders...)
}

// Products — каталог. Ошибка источника не пробрасывается: Products пустой, причина в Err.
func (s *Storefront) Products(ctx context.Context) domain.ProductsResult {
	products, err := s.source.Products(ctx)
	if err != nil {
		s.log.Warnf(ctx, "products fetch failed: %v (showing empty catalogue)", err)
		return domain.ProductsResult{Products: []domain.Product{}, Err: err}
	}
	if products == nil {
		products = []domain.Product{}
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	return domain.ProductsResult{Products: products}
}

// AddToCart — добавить товар (или +1 к количеству), сохранить, показать тост, обновить бейдж.
// Возвращает новое значение счётчика.
func (s *Storefront) AddToCart(ctx context.Context, p domain.Product) int {
	s.mu.Lock()
	s.cart.Add(p)
	count := s.persistCartLocked(ctx, "add")
	s.mu.Unlock()

	s.notifier.Toast(ctx, msgAddedToCart)
	s.notifier.CartBadge(ctx, count)
	return count
}

// AddToCartByID — то же по ID товара; каталог подгружается, если ещё не загружен
// или товара в нём нет.
func (s *Storefront) AddToCartByID(ctx context.Context, productID string) (int, error) {
	p, ok := s.cachedProduct(productID)
	if !ok {
		res := s.Products(ctx)
		if res.Err != nil {
			return s.CartCount(), res.Err
		}
		if p, ok = res.Find(productID); !ok {
			return s.CartCount(), fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
		}
	}
	return s.AddToCart(ctx, p), nil
}

// UpdateQuantity — выставить количество строки; qty <= 0 удаляет её.
func (s *Storefront) UpdateQuantity(ctx context.Context, productID string, qty int) (int, error) {
	return s.mutateCart(ctx, "set_qty", func(c *domain.Cart) error { return c.SetQty(productID, qty) })
}

// RemoveFromCart — удалить строку.
func (s *Storefront) RemoveFromCart(ctx context.Context, productID string) (int, error) {
	return s.mutateCart(ctx, "remove", func(c *domain.Cart) error { return c.Remove(productID) })
}

// ClearCart — очистить корзину (явное действие пользователя).
func (s *Storefront) ClearCart(ctx context.Context) int {
	n, _ := s.mutateCart(ctx, "clear", func(c *domain.Cart) error { c.Clear(); return nil })
	return n
}

// Login — результат бэкенда отдаётся как есть; при успехе пользователь сохраняется.
// Сбой транспорта превращается в {status: error, message: service unavailable}.
func (s *Storefront) Login(ctx context.Context, phone, password string) domain.AuthResult {
	res, err := s.source.Login(ctx, phone, password)
	if err != nil {
		s.log.Warnf(ctx, "login failed phone=%s err=%v", phone, err)
		return domain.AuthResult{Status: domain.StatusError, Message: msgServiceUnavailable}
	}
	s.rememberUser(ctx, res)
	return res
}

// Signup — как Login, но с полной анкетой.
func (s *Storefront) Signup(ctx context.Context, req domain.SignupRequest) domain.AuthResult {
	res, err := s.source.Signup(ctx, req)
	if err != nil {
		s.log.Warnf(ctx, "signup failed phone=%s err=%v", req.Phone, err)
		return domain.AuthResult{Status: domain.StatusError, Message: msgServiceUnavailable}
	}
	s.rememberUser(ctx, res)
	return res
}

// Logout — забыть пользователя (в памяти и в хранилище); возвращает страницу для перехода.
func (s *Storefront) Logout(ctx context.Context) string {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.store.ClearUser(ctx); err != nil {
		s.log.Warnf(ctx, "clear persisted user failed: %v", err)
	}
	return HomePage
}

// PlaceOrder — отправка заказа. Никогда не падает: сбой транспорта даёт {status: error},
// чтобы последующий процесс подтверждения заказа не блокировался.
func (s *Storefront) PlaceOrder(ctx context.Context, req domain.OrderRequest) domain.OrderResult {
	res, err := s.source.PlaceOrder(ctx, req)
	if err != nil {
		s.log.Errorf(ctx, "order save failed phone=%s err=%v", req.Phone, err)
		return domain.OrderResult{Status: domain.StatusError}
	}
	return res
}

// Checkout — оформить текущую корзину от имени текущего пользователя.
// Успех убирает из корзины оформленные строки (добавленное во время запроса остаётся);
// передача заказа дальше уходит в фон при любом статусе и ответ не задерживает.
func (s *Storefront) Checkout(ctx context.Context) domain.OrderResult {
	ctx, span := telemetry.StartSpan(ctx, "storefront.checkout")
	defer span.End()

	s.mu.Lock()
	req := domain.OrderRequest{Items: s.cart.Clone().Lines, Total: s.cart.Total()}
	if s.user != nil {
		req.User = *s.user
	}
	s.mu.Unlock()

	if err := s.validator.Validate(ctx, &req); err != nil {
		s.log.Warnf(ctx, "checkout rejected: %v", err)
		span.SetStatus(codes.Error, "rejected")
		return domain.OrderResult{Status: domain.StatusError, Message: err.Error()}
	}

	res := s.PlaceOrder(ctx, req)
	span.SetAttributes(
		attribute.Int("cart.items", len(req.Items)),
		attribute.Int64("cart.total", req.Total),
		attribute.String("order.status", res.Status),
	)
	if res.OK() {
		s.log.Infof(ctx, "order placed id=%s items=%d total=%d", res.OrderID, len(req.Items), req.Total)
		ordered := req.Items
		_, _ = s.mutateCart(ctx, "checkout", func(c *domain.Cart) error { c.Subtract(ordered); return nil })
	}

	s.publishHandoff(ctx, domain.OrderHandoff{Request: req, Result: res})
	return res
}

// WaitHandoffs — дождаться фоновых передач заказов (перед закрытием издателя).
func (s *Storefront) WaitHandoffs() {
	s.pending.Wait()
}

// ------вспомогательные функции------

func (s *Storefront) cachedProduct(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ProductsResult{Products: s.products}.Find(id)
}

func (s *Storefront) mutateCart(ctx context.Context, op string, fn func(c *domain.Cart) error) (int, error) {
	s.mu.Lock()
	if err := fn(&s.cart); err != nil {
		count := s.cart.Count()
		s.mu.Unlock()
		return count, err
	}
	count := s.persistCartLocked(ctx, op)
	s.mu.Unlock()

	s.notifier.CartBadge(ctx, count)
	return count, nil
}

// persistCartLocked — запись корзины после мутации; ошибка записи логируется,
// состояние в памяти остаётся актуальным (last-write-wins при следующей записи).
func (s *Storefront) persistCartLocked(ctx context.Context, op string) int {
	metrics.CartMutations.WithLabelValues(op).Inc()
	if err := s.store.SaveCart(ctx, s.cart); err != nil {
		s.log.Warnf(ctx, "persist cart failed op=%s err=%v", op, err)
	}
	return s.cart.Count()
}

func (s *Storefront) rememberUser(ctx context.Context, res domain.AuthResult) {
	if !res.OK() {
		return
	}
	u := *res.User

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()

	if err := s.store.SaveUser(ctx, &u); err != nil {
		s.log.Warnf(ctx, "persist user failed: %v", err)
	}
}

func (s *Storefront) publishHandoff(ctx context.Context, h domain.OrderHandoff) {
	if s.handoff == nil {
		metrics.HandoffPublished.WithLabelValues("skipped").Inc()
		return
	}

	// Контекст отвязан от запроса: ответ пользователю уже ушёл, а передача должна дойти.
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), handoffTimeout)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()
		if err := s.handoff.PublishOrder(bg, h); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Warnf(bg, "order handoff failed order_id=%s err=%v", h.Result.OrderID, err)
		}
	}()
}
