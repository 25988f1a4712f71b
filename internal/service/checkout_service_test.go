package service

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/patel24vivek/billing-system/internal/domain"
	"github.com/patel24vivek/billing-system/internal/persistence"
	"github.com/patel24vivek/billing-system/internal/repository"
)

// fakeStore in-memory persistence for tests
type fakeStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{data: make(map[string][]byte)} }

func (f *fakeStore) Load(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[key]
	return data, ok, nil
}

func (f *fakeStore) Save(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = data
	return nil
}

var _ persistence.Store = (*fakeStore)(nil)

type testEnv struct {
	store    *repository.MemoryStore
	ledger   *repository.MemoryLedger
	cart     *CartService
	checkout *CheckoutService
	files    *fakeStore
}

func setup(t *testing.T, products ...domain.Product) *testEnv {
	t.Helper()
	log := logrus.New()
	files := newFakeStore()
	store := repository.NewMemoryStore()
	store.RestoreProducts(products)
	ledger := repository.NewMemoryLedger(store)
	tx := repository.NewMemoryTx(store)
	mirror := NewMirror(store, ledger, files, log)
	settings, err := NewSettingsService(files, mirror) // defaults: 5% tax
	if err != nil {
		t.Fatal(err)
	}
	cart := NewCartService(store)
	checkout := NewCheckoutService(store, ledger, tx, cart, settings, mirror, log)
	return &testEnv{store: store, ledger: ledger, cart: cart, checkout: checkout, files: files}
}

func TestCheckout_EndToEnd(t *testing.T) {
	ctx := context.Background()
	env := setup(t,
		domain.Product{ID: "a", Name: "Apples", Price: 150, Category: "Fruits", Stock: 50, Unit: "kg"},
		domain.Product{ID: "b", Name: "Bananas", Price: 60, Category: "Fruits", Stock: 30, Unit: "dozen"},
	)

	// 2×A and 1×B
	for _, id := range []string{"a", "a", "b"} {
		if err := env.cart.AddLine(ctx, id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	tr, err := env.checkout.Finalize(ctx, domain.PaymentCash, "")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if tr == nil {
		t.Fatal("expected transaction")
	}
	if tr.Subtotal != 360 || tr.Tax != 18 || tr.Total != 378 {
		t.Fatalf("totals: %v %v %v", tr.Subtotal, tr.Tax, tr.Total)
	}
	if tr.PaymentMethod != domain.PaymentCash {
		t.Fatalf("payment method: %v", tr.PaymentMethod)
	}
	if len(tr.Items) != 2 {
		t.Fatalf("items: %d", len(tr.Items))
	}
	if tr.ID == "" || tr.Timestamp.IsZero() {
		t.Fatalf("id/timestamp not assigned")
	}

	// stocks decreased
	a, _ := env.store.GetByID(ctx, "a")
	b, _ := env.store.GetByID(ctx, "b")
	if a.Stock != 48 || b.Stock != 29 {
		t.Fatalf("stock not decreased: %d %d", a.Stock, b.Stock)
	}

	// cart cleared
	if len(env.cart.Lines()) != 0 {
		t.Fatalf("cart not cleared")
	}

	// state mirrored
	if _, ok, _ := env.files.Load(persistence.KeyProducts); !ok {
		t.Fatalf("products not mirrored")
	}
	if _, ok, _ := env.files.Load(persistence.KeyTransactions); !ok {
		t.Fatalf("transactions not mirrored")
	}
}

func TestCheckout_EmptyCartIsNoop(t *testing.T) {
	ctx := context.Background()
	env := setup(t, domain.Product{ID: "a", Name: "Apples", Price: 150, Category: "Fruits", Stock: 50, Unit: "kg"})

	tr, err := env.checkout.Finalize(ctx, domain.PaymentCard, "John")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if tr != nil {
		t.Fatalf("expected no transaction, got %+v", tr)
	}
	a, _ := env.store.GetByID(ctx, "a")
	if a.Stock != 50 {
		t.Fatalf("stock changed: %d", a.Stock)
	}
	history, _ := env.ledger.List(ctx)
	if len(history) != 0 {
		t.Fatalf("history changed: %d", len(history))
	}
}

func TestCheckout_InvalidPaymentMethod(t *testing.T) {
	ctx := context.Background()
	env := setup(t, domain.Product{ID: "a", Name: "Apples", Price: 150, Category: "Fruits", Stock: 50, Unit: "kg"})
	if err := env.cart.AddLine(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	if _, err := env.checkout.Finalize(ctx, "cheque", ""); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	// nothing consumed
	if len(env.cart.Lines()) != 1 {
		t.Fatalf("cart changed")
	}
}

func TestCheckout_HistoryMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	env := setup(t, domain.Product{ID: "a", Name: "Apples", Price: 150, Category: "Fruits", Stock: 50, Unit: "kg"})

	if err := env.cart.AddLine(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	t1, err := env.checkout.Finalize(ctx, domain.PaymentCash, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := env.cart.AddLine(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	t2, err := env.checkout.Finalize(ctx, domain.PaymentUPI, "")
	if err != nil {
		t.Fatal(err)
	}

	history, err := env.checkout.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("history length: %d", len(history))
	}
	if history[0].ID != t2.ID || history[1].ID != t1.ID {
		t.Fatalf("order: %s %s", history[0].ID, history[1].ID)
	}
}

func TestCheckout_SnapshotSurvivesCatalogEdits(t *testing.T) {
	ctx := context.Background()
	env := setup(t, domain.Product{ID: "a", Name: "Paneer", Price: 300, Category: "Dairy", Stock: 10, Unit: "kg"})

	if err := env.cart.AddLine(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	tr, err := env.checkout.Finalize(ctx, domain.PaymentCash, "")
	if err != nil {
		t.Fatal(err)
	}

	// rewrite the product after the sale
	p, _ := env.store.GetByID(ctx, "a")
	p.Price = 1
	p.Name = "Cheap Paneer"
	if err := env.store.Update(ctx, p); err != nil {
		t.Fatal(err)
	}

	history, _ := env.checkout.History(ctx)
	if history[0].Items[0].Price != 300 || history[0].Items[0].Name != "Paneer" {
		t.Fatalf("recorded line mutated: %+v", history[0].Items[0])
	}
	if tr.Total != history[0].Total {
		t.Fatalf("totals drifted")
	}
}

func TestCheckout_ClampsStockAtZero(t *testing.T) {
	ctx := context.Background()
	env := setup(t, domain.Product{ID: "a", Name: "Eggs", Price: 80, Category: "Dairy", Stock: 5, Unit: "dozen"})

	for i := 0; i < 3; i++ {
		if err := env.cart.AddLine(ctx, "a"); err != nil {
			t.Fatal(err)
		}
	}
	// shrink stock below the carted quantity behind the cart's back
	p, _ := env.store.GetByID(ctx, "a")
	p.Stock = 1
	if err := env.store.Update(ctx, p); err != nil {
		t.Fatal(err)
	}

	tr, err := env.checkout.Finalize(ctx, domain.PaymentCash, "")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if tr == nil {
		t.Fatal("expected transaction")
	}
	// the sale still records with the carted quantity and its totals
	if len(tr.Items) != 1 || tr.Items[0].Quantity != 3 || tr.Subtotal != 240 {
		t.Fatalf("recorded sale: %+v", tr.Items)
	}
	// stock is clamped, never negative
	after, _ := env.store.GetByID(ctx, "a")
	if after.Stock != 0 {
		t.Fatalf("stock must clamp to zero, got %d", after.Stock)
	}
}

func TestCheckout_CustomerNameRecorded(t *testing.T) {
	ctx := context.Background()
	env := setup(t, domain.Product{ID: "a", Name: "Apples", Price: 150, Category: "Fruits", Stock: 50, Unit: "kg"})
	if err := env.cart.AddLine(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	tr, err := env.checkout.Finalize(ctx, domain.PaymentCard, "Priya")
	if err != nil {
		t.Fatal(err)
	}
	if tr.CustomerName != "Priya" {
		t.Fatalf("customer name: %q", tr.CustomerName)
	}
}
