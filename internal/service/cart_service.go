package service

import (
	"context"
	"sync"

	"github.com/patel24vivek/billing-system/internal/domain"
	"github.com/patel24vivek/billing-system/internal/repository"
)

// CartService текущий чек одной кассы. Недопустимые запросы (превышение
// остатка, отрицательное количество) молча игнорируются: состояние не
// меняется, ошибка не возвращается — так же ведёт себя интерактивный UI.
type CartService struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	catalog repository.CatalogRepository
}

func NewCartService(catalog repository.CatalogRepository) *CartService {
	return &CartService{catalog: catalog}
}

// AddLine добавляет единицу товара в чек. Новая строка создаётся со
// снимком полей товара; повторный вызов увеличивает количество, пока
// не упрётся в остаток.
func (s *CartService) AddLine(ctx context.Context, productID string) error {
	p, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].Product.ID != productID {
			continue
		}
		if s.lines[i].Quantity+1 > p.Stock {
			return nil // stock ceiling, no-op
		}
		s.lines[i].Quantity++
		s.lines[i].Total = float64(s.lines[i].Quantity) * s.lines[i].Price
		return nil
	}
	if p.Stock <= 0 {
		return nil // out of stock, no-op
	}
	// snapshot product fields at the moment the line is created
	s.lines = append(s.lines, domain.CartLine{Product: *p, Quantity: 1, Total: p.Price})
	return nil
}

// SetQuantity ставит количество строки. Ноль удаляет строку, значение
// выше остатка или ниже нуля игнорируется.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int64) error {
	if quantity < 0 {
		return nil // no-op
	}
	if quantity == 0 {
		s.RemoveLine(productID)
		return nil
	}
	p, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].Product.ID != productID {
			continue
		}
		if quantity > p.Stock {
			return nil // stock ceiling, no-op
		}
		s.lines[i].Quantity = quantity
		s.lines[i].Total = float64(quantity) * s.lines[i].Price
		return nil
	}
	// no such line, no-op
	return nil
}

// RemoveLine убирает строку из чека; отсутствующая строка — no-op
func (s *CartService) RemoveLine(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.lines[:0]
	for _, l := range s.lines {
		if l.Product.ID != productID {
			out = append(out, l)
		}
	}
	s.lines = out
}

// Clear опустошает чек
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Lines возвращает копию строк чека
func (s *CartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Subtotal всегда пересчитывается с нуля, кэшированных сумм нет
func (s *CartService) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, l := range s.lines {
		sum += float64(l.Quantity) * l.Price
	}
	return sum
}

// Tax налог от текущей промежуточной суммы по ставке (доля, не процент)
func (s *CartService) Tax(rate float64) float64 {
	return s.Subtotal() * rate
}

// Total промежуточная сумма плюс налог
func (s *CartService) Total(rate float64) float64 {
	subtotal := s.Subtotal()
	return subtotal + subtotal*rate
}
