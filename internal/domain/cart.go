package domain

import (
	"encoding/json"
	"fmt"
)

// CartLine — строка корзины: все поля товара плюс количество.
type CartLine struct {
	Product
	Qty int `json:"qty"`
}

// Cart — упорядоченная корзина; порядок вставки важен для отображения.
// Инвариант: не больше одной строки на один ID товара.
type Cart struct {
	Lines []CartLine
}

// Add — добавить товар: если строка уже есть, увеличиваем количество, иначе дописываем в конец.
func (c *Cart) Add(p Product) {
	if i := c.index(p.ID); i >= 0 {
		c.Lines[i].Qty++
		return
	}
	c.Lines = append(c.Lines, CartLine{Product: cloneProduct(p), Qty: 1})
}

// SetQty — выставить количество; qty <= 0 удаляет строку.
func (c *Cart) SetQty(id string, qty int) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, id)
	}
	if qty <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return nil
	}
	c.Lines[i].Qty = qty
	return nil
}

// Remove — удалить строку по ID товара.
func (c *Cart) Remove(id string) error {
	return c.SetQty(id, 0)
}

// Subtract — убрать из корзины оформленные строки: количество каждой уменьшается
// на заказанное, строки, которых уже нет, пропускаются. Добавленное после снимка остаётся.
func (c *Cart) Subtract(ordered []CartLine) {
	for _, o := range ordered {
		i := c.index(o.ID)
		if i < 0 {
			continue
		}
		c.Lines[i].Qty -= o.Qty
		if c.Lines[i].Qty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		}
	}
	if len(c.Lines) == 0 {
		c.Lines = nil
	}
}

// Clear — очистить корзину.
func (c *Cart) Clear() { c.Lines = nil }

// Count — сумма количеств по всем строкам (для бейджа).
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Qty
	}
	return n
}

// Total — итоговая сумма корзины.
func (c Cart) Total() int64 {
	var sum int64
	for _, l := range c.Lines {
		sum += l.Price * int64(l.Qty)
	}
	return sum
}

// IsEmpty — в корзине нет строк.
func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Normalize — приводит прочитанную из хранилища корзину к инварианту:
// выбрасывает строки без ID и с неположительным количеством, склеивает дубли
// (позиция — первой встреченной строки).
func (c *Cart) Normalize() {
	out := make([]CartLine, 0, len(c.Lines))
	pos := make(map[string]int, len(c.Lines))
	for _, l := range c.Lines {
		if l.ID == "" || l.Qty <= 0 {
			continue
		}
		if i, ok := pos[l.ID]; ok {
			out[i].Qty += l.Qty
			continue
		}
		pos[l.ID] = len(out)
		out = append(out, l)
	}
	c.Lines = out
}

// Clone — глубокая копия, чтобы наружу не утекали внутренние слайсы.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = CartLine{Product: cloneProduct(l.Product), Qty: l.Qty}
	}
	return Cart{Lines: lines}
}

// MarshalJSON — корзина хранится как «голый» массив строк.
func (c Cart) MarshalJSON() ([]byte, error) {
	if c.Lines == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Lines)
}

// UnmarshalJSON — обратная операция; null даёт пустую корзину.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	c.Lines = lines
	return nil
}

func (c Cart) index(id string) int {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneProduct(p Product) Product {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}
