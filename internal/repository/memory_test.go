package repository

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/patel24vivek/billing-system/internal/domain"
)

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := domain.Product{Name: "Apples", Barcode: "1001", Price: 150, Category: "Fruits", Stock: 50, Unit: "kg"}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get: %v", err)
	}

	p.Price = 160
	if err := store.Update(ctx, &p); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); err == nil {
		t.Fatalf("expected not found")
	}
}

func TestMemoryStore_ListFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.RestoreProducts(domain.SeedProducts())

	all, err := store.List(ctx, ProductFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 20 {
		t.Fatalf("expected full seed catalog, got %d", len(all))
	}
	// listing keeps insertion order
	if all[0].Name != "Apples" || all[19].Name != "Soap" {
		t.Fatalf("order not preserved: %s .. %s", all[0].Name, all[19].Name)
	}

	// name is matched case-insensitively
	byName, _ := store.List(ctx, ProductFilter{Query: "apple"})
	if len(byName) != 1 || byName[0].ID != "1" {
		t.Fatalf("name filter: %+v", byName)
	}
	// category too
	byCategory, _ := store.List(ctx, ProductFilter{Query: "dairy"})
	if len(byCategory) != 4 {
		t.Fatalf("category filter: %d", len(byCategory))
	}
	// barcode is a plain contains
	byBarcode, _ := store.List(ctx, ProductFilter{Query: "2003"})
	if len(byBarcode) != 1 || byBarcode[0].Name != "Paneer" {
		t.Fatalf("barcode filter: %+v", byBarcode)
	}
}

func TestMemoryLedger_AppendPrependsAndIDsGrow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ledger := NewMemoryLedger(store)

	t1 := domain.Transaction{Total: 100, PaymentMethod: domain.PaymentCash}
	t2 := domain.Transaction{Total: 200, PaymentMethod: domain.PaymentCard}
	if err := ledger.Append(ctx, &t1); err != nil {
		t.Fatal(err)
	}
	if err := ledger.Append(ctx, &t2); err != nil {
		t.Fatal(err)
	}

	list, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	// most-recent-first
	if list[0].ID != t2.ID || list[1].ID != t1.ID {
		t.Fatalf("history not most-recent-first: %s %s", list[0].ID, list[1].ID)
	}

	id1, _ := strconv.ParseInt(t1.ID, 10, 64)
	id2, _ := strconv.ParseInt(t2.ID, 10, 64)
	if id2 <= id1 {
		t.Fatalf("ids must grow: %d then %d", id1, id2)
	}
	if t1.Timestamp.IsZero() || t2.Timestamp.IsZero() {
		t.Fatalf("timestamps not assigned")
	}
}

func TestMemoryLedger_RestoreKeepsIDsMonotonic(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ledger := NewMemoryLedger(store)

	// saved history with an id far in the future
	future := time.Now().Add(time.Hour).UnixMilli()
	store.RestoreTransactions([]domain.Transaction{
		{ID: strconv.FormatInt(future, 10), Total: 50, Timestamp: time.Now()},
	})

	next := domain.Transaction{Total: 10, PaymentMethod: domain.PaymentUPI}
	if err := ledger.Append(ctx, &next); err != nil {
		t.Fatal(err)
	}
	id, _ := strconv.ParseInt(next.ID, 10, 64)
	if id <= future {
		t.Fatalf("id %d not past restored %d", id, future)
	}
}

func TestMemoryTx_TransactionalUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	ledger := NewMemoryLedger(store)

	// seed product
	p := domain.Product{Name: "Apples", Price: 150, Category: "Fruits", Stock: 50, Unit: "kg"}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	// emulate atomic checkout: stock decrement plus ledger append
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		pp, err := store.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		pp.Stock -= 3
		if err := store.Update(ctx, pp); err != nil {
			return err
		}
		return ledger.Append(ctx, &domain.Transaction{Total: 450, PaymentMethod: domain.PaymentCash})
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	after, _ := store.GetByID(ctx, p.ID)
	if after.Stock != 47 {
		t.Fatalf("stock: %d", after.Stock)
	}
	list, _ := ledger.List(ctx)
	if len(list) != 1 {
		t.Fatalf("ledger: %d", len(list))
	}
}
