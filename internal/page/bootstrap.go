// Package page наполняет HTML-страницы магазина общими фрагментами:
// шапка, мобильная навигация, бейдж корзины и скрипт иконок.
package page

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Gunvolt24/storefront/internal/view"
)

const (
	IconsScriptID  = "phosphor-icons"
	IconsScriptSrc = "https://unpkg.com/@phosphor-icons/web"

	navClass    = "mobile-nav"
	cartBadgeID = "cart-count"
)

// Bootstrap — заменяет содержимое первого <header> и первого элемента .mobile-nav
// отрендеренными фрагментами, выставляет бейдж корзины и добавляет скрипт иконок,
// если его ещё нет. Отсутствие точек монтирования ошибкой не считается.
// Повторный вызов на результате ничего не меняет.
func Bootstrap(doc []byte, st view.State) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	if header := findFirst(root, func(n *html.Node) bool { return n.DataAtom == atom.Header }); header != nil {
		frag, err := view.Header(st)
		if err != nil {
			return nil, err
		}
		if err := replaceChildren(header, frag); err != nil {
			return nil, fmt.Errorf("mount header: %w", err)
		}
	}

	if nav := findFirst(root, func(n *html.Node) bool { return hasClass(n, navClass) }); nav != nil {
		frag, err := view.Nav(st)
		if err != nil {
			return nil, err
		}
		if err := replaceChildren(nav, frag); err != nil {
			return nil, fmt.Errorf("mount nav: %w", err)
		}
	}

	if badge := findByID(root, cartBadgeID); badge != nil {
		setText(badge, view.Badge(st.CartCount))
	}

	ensureIconsScript(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func ensureIconsScript(root *html.Node) {
	if findByID(root, IconsScriptID) != nil {
		return
	}
	head := findFirst(root, func(n *html.Node) bool { return n.DataAtom == atom.Head })
	if head == nil {
		return
	}
	head.AppendChild(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Script,
		Data:     "script",
		Attr: []html.Attribute{
			{Key: "id", Val: IconsScriptID},
			{Key: "src", Val: IconsScriptSrc},
		},
	})
}

// ------вспомогательные функции------

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findByID(n *html.Node, id string) *html.Node {
	return findFirst(n, func(n *html.Node) bool { return attr(n, "id") == id })
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func replaceChildren(n *html.Node, fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), n)
	if err != nil {
		return err
	}
	removeChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

func setText(n *html.Node, text string) {
	removeChildren(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}
