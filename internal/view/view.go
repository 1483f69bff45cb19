// Package view рендерит общие фрагменты страниц магазина (шапку и мобильную навигацию).
// Все функции чистые: результат зависит только от переданного State.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// Страницы магазина.
const (
	PageHome     = "index.html"
	PageProducts = "products.html"
	PageCart     = "cart.html"
	PageOrders   = "orders.html"
	PageLogin    = "login.html"
)

// State — всё, что нужно фрагментам для рендера.
type State struct {
	CartCount int
	LoggedIn  bool
	Path      string // текущий путь страницы, например "/shop/cart.html"
}

// NavItem — пункт мобильной навигации.
type NavItem struct {
	Label  string
	Icon   string
	Target string
	Active bool
}

var fragments = template.Must(template.New("fragments").Parse(headerTmpl + navTmpl))

// Header — шапка: логотип, поиск, корзина с бейджем, аккаунт или кнопка Login.
func Header(st State) (string, error) {
	return render("header", struct {
		Badge    string
		LoggedIn bool
	}{Badge: Badge(st.CartCount), LoggedIn: st.LoggedIn})
}

// Nav — мобильная навигация: Home / Shop / Cart / Account.
func Nav(st State) (string, error) {
	return render("nav", NavItems(st))
}

// NavItems — пункты навигации с флагами активности для пути st.Path.
func NavItems(st State) []NavItem {
	p := st.Path
	account := PageLogin
	if st.LoggedIn {
		account = PageOrders
	}
	return []NavItem{
		{Label: "Home", Icon: "ph-house", Target: PageHome,
			Active: strings.Contains(p, PageHome) || !strings.Contains(p, ".html")},
		{Label: "Shop", Icon: "ph-grid-four", Target: PageProducts, Active: strings.Contains(p, PageProducts)},
		{Label: "Cart", Icon: "ph-shopping-cart", Target: PageCart, Active: strings.Contains(p, PageCart)},
		{Label: "Account", Icon: "ph-user", Target: account,
			Active: strings.Contains(p, PageOrders) || strings.Contains(p, PageLogin)},
	}
}

// Badge — текст бейджа корзины; пусто при нуле.
func Badge(count int) string {
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}

// FormatPrice — сумма в рупиях с индийской группировкой разрядов: ₹1,00,000.
func FormatPrice(amount int64) string {
	// модуль в uint64: -MinInt64 в int64 не помещается
	sign, mag := "", uint64(amount)
	if amount < 0 {
		sign, mag = "-", -mag
	}
	digits := strconv.FormatUint(mag, 10)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return sign + "₹" + strings.Join(groups, ",") + "," + tail
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
