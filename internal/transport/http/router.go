package rest

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/page"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/internal/view"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/Gunvolt24/storefront/pkg/httpx"
)

// Handler — HTTP-обработчики локального хоста страниц магазина.
type Handler struct {
	service   *usecase.Storefront
	log       ports.Logger
	timeout   time.Duration // таймаут обработки одного запроса; 0 — без ограничения
	staticDir string        // каталог с HTML-страницами; пусто — страницы не раздаются
}

// NewHandler — конструктор обработчиков.
func NewHandler(service *usecase.Storefront, log ports.Logger, timeout time.Duration, staticDir string) *Handler {
	return &Handler{service: service, log: log, timeout: timeout, staticDir: staticDir}
}

// NewRouter — gin-роутер: служебные ручки, JSON API действий пользователя,
// фрагменты и страницы. otelServiceName != "" включает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestMeta(ctxmeta.OriginHTTP))
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/products", h.products)

		api.GET("/cart", h.cart)
		api.POST("/cart/items", h.addToCart)
		api.PATCH("/cart/items/:id", h.updateQuantity)
		api.DELETE("/cart/items/:id", h.removeFromCart)
		api.DELETE("/cart", h.clearCart)

		api.POST("/login", h.login)
		api.POST("/signup", h.signup)
		api.POST("/logout", h.logout)

		api.POST("/checkout", h.checkout)
		api.POST("/orders", h.placeOrder)
	}

	r.GET("/fragments/header", h.headerFragment)
	r.GET("/fragments/nav", h.navFragment)

	// Страницы и ассеты магазина: всё, что не совпало с маршрутами выше.
	r.NoRoute(h.page)

	return r
}

type addItemRequest struct {
	ID string `json:"id" binding:"required"`
}

type setQtyRequest struct {
	Qty *int `json:"qty" binding:"required"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type cartResponse struct {
	Items          domain.Cart `json:"items"`
	Count          int         `json:"count"`
	Total          int64       `json:"total"`
	TotalFormatted string      `json:"totalFormatted"`
}

func (h *Handler) products(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	res := h.service.Products(ctx)
	body := gin.H{"products": res.Products}
	if res.Err != nil {
		body["error"] = errorMessage(res.Err)
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) cart(c *gin.Context) {
	cart := h.service.Cart()
	c.JSON(http.StatusOK, cartResponse{
		Items:          cart,
		Count:          cart.Count(),
		Total:          cart.Total(),
		TotalFormatted: view.FormatPrice(cart.Total()),
	})
}

func (h *Handler) addToCart(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	count, err := h.service.AddToCartByID(ctx, req.ID)
	if err != nil {
		h.writeCartError(c, req.ID, count, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) updateQuantity(c *gin.Context) {
	var req setQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "qty is required"})
		return
	}

	id := c.Param("id")
	count, err := h.service.UpdateQuantity(c.Request.Context(), id, *req.Qty)
	if err != nil {
		h.writeCartError(c, id, count, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) removeFromCart(c *gin.Context) {
	id := c.Param("id")
	count, err := h.service.RemoveFromCart(c.Request.Context(), id)
	if err != nil {
		h.writeCartError(c, id, count, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) clearCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.service.ClearCart(c.Request.Context())})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, h.service.Login(ctx, req.Phone, req.Password))
}

func (h *Handler) signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, h.service.Signup(ctx, req))
}

func (h *Handler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"redirect": h.service.Logout(c.Request.Context())})
}

func (h *Handler) checkout(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, h.service.Checkout(ctx))
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req domain.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, h.service.PlaceOrder(ctx, req))
}

func (h *Handler) headerFragment(c *gin.Context) {
	h.writeFragment(c, view.Header, h.service.ViewState(c.Query("path")))
}

func (h *Handler) navFragment(c *gin.Context) {
	h.writeFragment(c, view.Nav, h.service.ViewState(c.Query("path")))
}

// page — раздаёт страницы магазина; *.html проходят через page.Bootstrap.
func (h *Handler) page(c *gin.Context) {
	if h.staticDir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	urlPath := path.Clean("/" + c.Request.URL.Path)
	if urlPath == "/" {
		urlPath = "/" + view.PageHome
	}
	file := filepath.Join(h.staticDir, filepath.FromSlash(urlPath))

	if !strings.HasSuffix(urlPath, ".html") {
		if st, err := os.Stat(file); err != nil || st.IsDir() {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(file)
		return
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}

	out, err := page.Bootstrap(raw, h.service.ViewState(urlPath))
	if err != nil {
		h.log.Errorf(c.Request.Context(), "page bootstrap failed path=%s err=%v", urlPath, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", out)
}

// ------вспомогательные функции------

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *Handler) writeFragment(c *gin.Context, render func(view.State) (string, error), st view.State) {
	out, err := render(st)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "render fragment failed path=%s err=%v", st.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (h *Handler) writeCartError(c *gin.Context, id string, count int, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errorMessage(err), "count": count})
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrBadStatus):
		h.log.Warnf(c.Request.Context(), "cart update failed id=%s err=%v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err), "count": count})
	default:
		h.log.Errorf(c.Request.Context(), "cart update failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "count": count})
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return "product not found"
	case errors.Is(err, domain.ErrLineNotFound):
		return "item not in cart"
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrBadStatus):
		return "service unavailable"
	default:
		return "internal error"
	}
}
