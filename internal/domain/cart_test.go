package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Gunvolt24/storefront/internal/domain"
)

func watch() domain.Product {
	return domain.Product{ID: "p1", Name: "Watch", Price: 2499, Images: []string{"a.jpg"}, Stock: 10}
}

func lamp() domain.Product {
	return domain.Product{ID: "p4", Name: "Lamp", Price: 1299, Stock: 8}
}

// Повторное добавление того же товара увеличивает количество, а не дублирует строку.
func TestCartAdd_SameProductTwice_IncrementsQty(t *testing.T) {
	var c domain.Cart
	c.Add(watch())
	c.Add(watch())

	if len(c.Lines) != 1 {
		t.Fatalf("want 1 line, got %d", len(c.Lines))
	}
	if c.Lines[0].Qty != 2 {
		t.Fatalf("want qty 2, got %d", c.Lines[0].Qty)
	}
}

func TestCartAdd_PreservesInsertionOrderAndFields(t *testing.T) {
	var c domain.Cart
	c.Add(lamp())
	c.Add(watch())
	c.Add(lamp())

	want := []domain.CartLine{
		{Product: lamp(), Qty: 2},
		{Product: watch(), Qty: 1},
	}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCartAdd_DoesNotAliasProductImages(t *testing.T) {
	p := watch()
	var c domain.Cart
	c.Add(p)
	p.Images[0] = "changed.jpg"

	if c.Lines[0].Images[0] != "a.jpg" {
		t.Fatalf("cart line must own its images slice, got %v", c.Lines[0].Images)
	}
}

func TestCartCount_SumOfQuantities(t *testing.T) {
	var c domain.Cart
	if c.Count() != 0 {
		t.Fatalf("empty cart count: want 0, got %d", c.Count())
	}
	c.Add(watch())
	c.Add(watch())
	c.Add(lamp())

	if c.Count() != 3 {
		t.Fatalf("want 3, got %d", c.Count())
	}
	if c.Total() != 2*2499+1299 {
		t.Fatalf("total: want %d, got %d", 2*2499+1299, c.Total())
	}
}

func TestCartSetQty(t *testing.T) {
	var c domain.Cart
	c.Add(watch())
	c.Add(lamp())

	if err := c.SetQty("p1", 5); err != nil {
		t.Fatalf("SetQty: %v", err)
	}
	if c.Lines[0].Qty != 5 {
		t.Fatalf("want qty 5, got %d", c.Lines[0].Qty)
	}

	// ноль удаляет строку
	if err := c.SetQty("p1", 0); err != nil {
		t.Fatalf("SetQty(0): %v", err)
	}
	if len(c.Lines) != 1 || c.Lines[0].ID != "p4" {
		t.Fatalf("unexpected lines after removal: %+v", c.Lines)
	}

	if err := c.SetQty("missing", 1); !errors.Is(err, domain.ErrLineNotFound) {
		t.Fatalf("want ErrLineNotFound, got %v", err)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	var c domain.Cart
	c.Add(watch())
	c.Add(lamp())

	if err := c.Remove("p4"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if c.Count() != 1 {
		t.Fatalf("want count 1, got %d", c.Count())
	}
	c.Clear()
	if !c.IsEmpty() {
		t.Fatalf("cart should be empty after Clear")
	}
}

func TestCartNormalize_MergesDuplicatesAndDropsInvalid(t *testing.T) {
	c := domain.Cart{Lines: []domain.CartLine{
		{Product: watch(), Qty: 1},
		{Product: domain.Product{ID: ""}, Qty: 3},
		{Product: lamp(), Qty: 0},
		{Product: watch(), Qty: 2},
		{Product: lamp(), Qty: 1},
	}}
	c.Normalize()

	want := []domain.CartLine{
		{Product: watch(), Qty: 3},
		{Product: lamp(), Qty: 1},
	}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
}

// Оформленные количества вычитаются, строки, добавленные после снимка, остаются.
func TestCartSubtract_KeepsLinesAddedAfterSnapshot(t *testing.T) {
	var c domain.Cart
	c.Add(watch())
	c.Add(watch())
	ordered := c.Clone().Lines

	c.Add(watch())
	c.Add(lamp())
	c.Subtract(ordered)

	want := []domain.CartLine{
		{Product: watch(), Qty: 1},
		{Product: lamp(), Qty: 1},
	}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Fatalf("subtract mismatch (-want +got):\n%s", diff)
	}

	// всё оформлено — корзина пустая, а не пустой слайс
	c.Subtract(c.Clone().Lines)
	if c.Lines != nil {
		t.Fatalf("want nil lines, got %v", c.Lines)
	}

	// строки, удалённые во время оформления, пропускаются
	c.Subtract([]domain.CartLine{{Product: lamp(), Qty: 5}})
	if !c.IsEmpty() {
		t.Fatalf("want empty cart, got %v", c.Lines)
	}
}

// Корзина сериализуется как массив строк с плоскими полями товара и qty.
func TestCartJSON_RoundTripShape(t *testing.T) {
	var c domain.Cart
	c.Add(watch())

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var generic []map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("stored cart must be a JSON array: %v (%s)", err, raw)
	}
	if generic[0]["id"] != "p1" || generic[0]["qty"] != float64(1) {
		t.Fatalf("unexpected wire shape: %s", raw)
	}

	empty, _ := json.Marshal(domain.Cart{})
	if string(empty) != "[]" {
		t.Fatalf("empty cart: want [], got %s", empty)
	}
}

func TestCartClone_IsDeep(t *testing.T) {
	var c domain.Cart
	c.Add(watch())

	cp := c.Clone()
	cp.Lines[0].Qty = 99
	cp.Lines[0].Images[0] = "x"

	if c.Lines[0].Qty != 1 || c.Lines[0].Images[0] != "a.jpg" {
		t.Fatalf("clone must not share state: %+v", c.Lines[0])
	}
}
