package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports/mocks"
	"github.com/Gunvolt24/storefront/internal/state"
	"github.com/Gunvolt24/storefront/internal/storage/memory"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func product(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "name-" + id, Price: price, Images: []string{id + ".jpg"}, Stock: 3}
}

// Сохранённая корзина после «перезагрузки страницы» воспроизводится полностью.
func TestCart_PersistThenReload(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()

	var cart domain.Cart
	cart.Add(product("p2", 5999))
	cart.Add(product("p1", 2499))
	cart.Add(product("p2", 5999))

	if err := state.NewStore(kv, noopLogger{}, "", "").SaveCart(ctx, cart); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}

	// новый Store над тем же хранилищем — как новая загрузка страницы
	reloaded := state.NewStore(kv, noopLogger{}, "", "").LoadCart(ctx)
	if diff := cmp.Diff(cart.Lines, reloaded.Lines); diff != "" {
		t.Fatalf("reloaded cart mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCart_MissingKey_Empty(t *testing.T) {
	s := state.NewStore(memory.NewKVStore(), noopLogger{}, "", "")
	if c := s.LoadCart(context.Background()); !c.IsEmpty() {
		t.Fatalf("want empty cart, got %+v", c)
	}
}

func TestLoadCart_Malformed_Empty(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()

	for _, raw := range []string{"{", `{"id":"p1"}`, `"text"`, `[{"id":"p1","qty":"two"}]`} {
		_ = kv.Set(ctx, state.DefaultCartKey, []byte(raw))
		if c := state.NewStore(kv, noopLogger{}, "", "").LoadCart(ctx); !c.IsEmpty() {
			t.Fatalf("raw=%s: want empty cart, got %+v", raw, c)
		}
	}
}

func TestLoadCart_NormalizesStoredDuplicates(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	_ = kv.Set(ctx, state.DefaultCartKey, []byte(`[{"id":"p1","qty":1},{"id":"p1","qty":2},{"id":"p3","qty":0}]`))

	c := state.NewStore(kv, noopLogger{}, "", "").LoadCart(ctx)
	if len(c.Lines) != 1 || c.Lines[0].Qty != 3 {
		t.Fatalf("want single p1 line with qty 3, got %+v", c.Lines)
	}
}

func TestLoadCart_ReadError_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKVStore(ctrl)
	kv.EXPECT().Get(gomock.Any(), "cart").Return(nil, false, errors.New("disk gone"))

	c := state.NewStore(kv, noopLogger{}, "cart", "user").LoadCart(context.Background())
	if !c.IsEmpty() {
		t.Fatalf("want empty cart on read error, got %+v", c)
	}
}

func TestUser_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	s := state.NewStore(kv, noopLogger{}, "", "")

	u := &domain.User{Name: "Demo User", Phone: "9999999999", City: "kerala"}
	if err := s.SaveUser(ctx, u); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	got := state.NewStore(kv, noopLogger{}, "", "").LoadUser(ctx)
	if got == nil || *got != *u {
		t.Fatalf("want %+v, got %+v", u, got)
	}

	if err := s.ClearUser(ctx); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}
	// после «перезагрузки» пользователя нет
	if got := state.NewStore(kv, noopLogger{}, "", "").LoadUser(ctx); got != nil {
		t.Fatalf("want nil user after logout, got %+v", got)
	}
}

func TestLoadUser_MalformedOrNull_Nil(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	s := state.NewStore(kv, noopLogger{}, "", "")

	for _, raw := range []string{"null", "{bad", "[]"} {
		_ = kv.Set(ctx, state.DefaultUserKey, []byte(raw))
		if got := s.LoadUser(ctx); got != nil {
			t.Fatalf("raw=%s: want nil user, got %+v", raw, got)
		}
	}
}

func TestSaveUser_Nil_DeletesKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKVStore(ctrl)
	kv.EXPECT().Delete(gomock.Any(), state.DefaultUserKey).Return(nil)

	if err := state.NewStore(kv, noopLogger{}, "", "").SaveUser(context.Background(), nil); err != nil {
		t.Fatalf("SaveUser(nil): %v", err)
	}
}

func TestSaveCart_WriteError_Propagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKVStore(ctrl)
	boom := errors.New("quota exceeded")
	kv.EXPECT().Set(gomock.Any(), state.DefaultCartKey, []byte("[]")).Return(boom)

	err := state.NewStore(kv, noopLogger{}, "", "").SaveCart(context.Background(), domain.Cart{})
	if !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}
