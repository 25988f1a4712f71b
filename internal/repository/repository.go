package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/patel24vivek/billing-system/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ProductFilter параметры поиска по каталогу: подстрока имени или
// категории без учёта регистра, либо вхождение в штрихкод
type ProductFilter struct {
	Query string
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}

// LedgerRepository интерфейс журнала продаж: только добавление и чтение,
// записи не редактируются и не удаляются
type LedgerRepository interface {
	Append(ctx context.Context, t *domain.Transaction) error
	List(ctx context.Context) ([]domain.Transaction, error)
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Matches применяет фильтр к товару
func (f ProductFilter) Matches(p domain.Product) bool {
	if f.Query == "" {
		return true
	}
	if containsIgnoreCase(p.Name, f.Query) || containsIgnoreCase(p.Category, f.Query) {
		return true
	}
	return p.Barcode != "" && strings.Contains(p.Barcode, f.Query)
}
