package service

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/patel24vivek/billing-system/internal/domain"
	"github.com/patel24vivek/billing-system/internal/persistence"
	"github.com/patel24vivek/billing-system/internal/repository"
)

// Mirror зеркалирует состояние каталога и журнала в key-value хранилище.
// Запись fire-and-forget: ядро не ждёт и не наблюдает результат,
// ошибки только логируются.
type Mirror struct {
	catalog repository.CatalogRepository
	ledger  repository.LedgerRepository
	store   persistence.Store
	log     *logrus.Logger
}

func NewMirror(catalog repository.CatalogRepository, ledger repository.LedgerRepository, store persistence.Store, log *logrus.Logger) *Mirror {
	return &Mirror{catalog: catalog, ledger: ledger, store: store, log: log}
}

func (m *Mirror) SaveProducts(ctx context.Context) {
	products, err := m.catalog.List(ctx, repository.ProductFilter{})
	if err == nil {
		err = m.saveJSON(persistence.KeyProducts, products)
	}
	if err != nil {
		m.log.WithError(err).Warn("mirror products")
	}
}

func (m *Mirror) SaveTransactions(ctx context.Context) {
	transactions, err := m.ledger.List(ctx)
	if err == nil {
		err = m.saveJSON(persistence.KeyTransactions, transactions)
	}
	if err != nil {
		m.log.WithError(err).Warn("mirror transactions")
	}
}

func (m *Mirror) SaveSettings(s domain.Settings) {
	if err := m.saveJSON(persistence.KeySettings, s); err != nil {
		m.log.WithError(err).Warn("mirror settings")
	}
}

func (m *Mirror) saveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return m.store.Save(key, data)
}

// LoadState загружает сохранённые снимки в хранилище; при отсутствии
// снимка каталога засеивает стартовый набор товаров
func LoadState(store persistence.Store, mem *repository.MemoryStore, log *logrus.Logger) error {
	data, ok, err := store.Load(persistence.KeyProducts)
	if err != nil {
		return err
	}
	if ok {
		var products []domain.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return err
		}
		mem.RestoreProducts(products)
	} else {
		mem.RestoreProducts(domain.SeedProducts())
		log.Info("no saved catalog, seeded initial products")
	}

	data, ok, err = store.Load(persistence.KeyTransactions)
	if err != nil {
		return err
	}
	if ok {
		var transactions []domain.Transaction
		if err := json.Unmarshal(data, &transactions); err != nil {
			return err
		}
		mem.RestoreTransactions(transactions)
	}
	return nil
}
