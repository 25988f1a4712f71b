package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/patel24vivek/billing-system/internal/domain"
	"github.com/patel24vivek/billing-system/internal/repository"
)

// CheckoutService превращает собранный чек в неизменяемую запись журнала
// и атомарно списывает остатки
type CheckoutService struct {
	catalog  repository.CatalogRepository
	ledger   repository.LedgerRepository
	tx       repository.TxManager
	cart     *CartService
	settings *SettingsService
	mirror   *Mirror
	log      *logrus.Logger
}

func NewCheckoutService(
	catalog repository.CatalogRepository,
	ledger repository.LedgerRepository,
	tx repository.TxManager,
	cart *CartService,
	settings *SettingsService,
	mirror *Mirror,
	log *logrus.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog:  catalog,
		ledger:   ledger,
		tx:       tx,
		cart:     cart,
		settings: settings,
		mirror:   mirror,
		log:      log,
	}
}

// Finalize завершает продажу: снимок строк, расчёт сумм, списание
// остатков и запись в журнал — всё под одной блокировкой. Пустой чек —
// no-op: возвращается (nil, nil), состояние не меняется.
func (s *CheckoutService) Finalize(ctx context.Context, method domain.PaymentMethod, customerName string) (*domain.Transaction, error) {
	if !method.Valid() {
		return nil, ErrInvalidInput
	}
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, nil
	}
	taxRate := s.settings.TaxRate()

	var created *domain.Transaction
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// load and decrement stock; accumulate copies to avoid partial state
		productCopies := make(map[string]*domain.Product, len(lines))
		for _, l := range lines {
			p, err := s.catalog.GetByID(ctx, l.Product.ID)
			if err != nil {
				return err
			}
			p.Stock -= l.Quantity
			if p.Stock < 0 {
				// cart quantities are bounded by stock, so this is an
				// internal consistency violation, not a user error
				s.log.WithFields(logrus.Fields{
					"product":  p.ID,
					"quantity": l.Quantity,
				}).Error("stock went negative on checkout, clamping to zero")
				p.Stock = 0
			}
			productCopies[p.ID] = p
		}
		for _, p := range productCopies {
			if err := s.catalog.Update(ctx, p); err != nil {
				return err
			}
		}

		var subtotal float64
		for _, l := range lines {
			subtotal += float64(l.Quantity) * l.Price
		}
		tax := subtotal * taxRate

		t := domain.Transaction{
			Items:         lines, // value snapshot, detached from the catalog
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         subtotal + tax,
			PaymentMethod: method,
			CustomerName:  customerName,
		}
		if err := s.ledger.Append(ctx, &t); err != nil {
			return err
		}
		created = &t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.mirror.SaveProducts(ctx)
	s.mirror.SaveTransactions(ctx)
	return created, nil
}

// History отдаёт журнал продаж (most-recent-first)
func (s *CheckoutService) History(ctx context.Context) ([]domain.Transaction, error) {
	return s.ledger.List(ctx)
}
