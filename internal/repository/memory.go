package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/patel24vivek/billing-system/internal/domain"
)

// MemoryStore объединённое in-memory хранилище каталога и журнала продаж
type MemoryStore struct {
	mu           sync.RWMutex
	productsByID map[string]domain.Product
	productOrder []string // insertion order, keeps listings stable
	transactions []domain.Transaction
	lastTxID     int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		productsByID: make(map[string]domain.Product),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ CatalogRepository = (*MemoryStore)(nil)

// LedgerRepository реализован отдельным типом MemoryLedger

// CatalogRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := m.productsByID[p.ID]; !ok {
		m.productOrder = append(m.productOrder, p.ID)
	}
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.productsByID[p.ID]; !ok {
		return ErrNotFound
	}
	m.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.productsByID[id]; !ok {
		return ErrNotFound
	}
	delete(m.productsByID, id)
	for i, pid := range m.productOrder {
		if pid == id {
			m.productOrder = append(m.productOrder[:i], m.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0, len(m.productOrder))
	for _, id := range m.productOrder {
		p := m.productsByID[id]
		if !f.Matches(p) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// RestoreProducts заменяет каталог загруженным состоянием
func (m *MemoryStore) RestoreProducts(products []domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.productsByID = make(map[string]domain.Product, len(products))
	m.productOrder = make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := m.productsByID[p.ID]; !ok {
			m.productOrder = append(m.productOrder, p.ID)
		}
		m.productsByID[p.ID] = p
	}
}

// RestoreTransactions заменяет журнал загруженным состоянием (most-recent-first)
func (m *MemoryStore) RestoreTransactions(transactions []domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append([]domain.Transaction(nil), transactions...)
	for _, t := range transactions {
		if id, err := strconv.ParseInt(t.ID, 10, 64); err == nil && id > m.lastTxID {
			m.lastTxID = id
		}
	}
}

// LedgerRepository implementation on wrapper type
type MemoryLedger struct{ store *MemoryStore }

func NewMemoryLedger(store *MemoryStore) *MemoryLedger { return &MemoryLedger{store: store} }

var _ LedgerRepository = (*MemoryLedger)(nil)

// Append присваивает id и метку времени и добавляет запись в начало журнала
func (ml *MemoryLedger) Append(ctx context.Context, t *domain.Transaction) error {
	ml.store.wlock(ctx)
	defer ml.store.wunlock(ctx)
	// ids are unix-millisecond strings, bumped forward on same-ms collisions
	// so creation order stays non-decreasing
	id := time.Now().UnixMilli()
	if id <= ml.store.lastTxID {
		id = ml.store.lastTxID + 1
	}
	ml.store.lastTxID = id
	t.ID = strconv.FormatInt(id, 10)
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	// prepend: history is most-recent-first
	ml.store.transactions = append([]domain.Transaction{*t}, ml.store.transactions...)
	return nil
}

func (ml *MemoryLedger) List(ctx context.Context) ([]domain.Transaction, error) {
	ml.store.rlock(ctx)
	defer ml.store.runlock(ctx)
	out := make([]domain.Transaction, len(ml.store.transactions))
	copy(out, ml.store.transactions)
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
