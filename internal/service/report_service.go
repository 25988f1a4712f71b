package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/patel24vivek/billing-system/internal/domain"
	"github.com/patel24vivek/billing-system/internal/repository"
)

// Period отчётный период, границы считаются от переданного "сейчас"
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ReportTotals сводные показатели за период
type ReportTotals struct {
	TotalSales        float64 `json:"totalSales"`
	TransactionCount  int     `json:"transactionCount"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// PaymentBreakdown выручка по способам оплаты; отсутствующий способ — ноль
type PaymentBreakdown struct {
	Cash float64 `json:"cash"`
	Card float64 `json:"card"`
	UPI  float64 `json:"upi"`
}

// ProductSales продажи одного товара, агрегированные по имени
type ProductSales struct {
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// DailySales выручка за календарную дату
type DailySales struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// ReportSummary полный отчёт за период
type ReportSummary struct {
	Period      Period           `json:"period"`
	Totals      ReportTotals     `json:"totals"`
	ByPayment   PaymentBreakdown `json:"byPaymentMethod"`
	TopProducts []ProductSales   `json:"topProducts"`
	DailySeries []DailySales     `json:"dailySeries"`
}

// PeriodStart начало периода: полночь сегодняшней даты, полночь
// последнего воскресенья или первое число месяца
func PeriodStart(p Period, now time.Time) (time.Time, bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodToday:
		return midnight, true
	case PeriodWeek:
		return midnight.AddDate(0, 0, -int(now.Weekday())), true
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// FilterByPeriod оставляет транзакции с меткой времени не раньше начала периода
func FilterByPeriod(history []domain.Transaction, p Period, now time.Time) []domain.Transaction {
	start, bounded := PeriodStart(p, now)
	if !bounded {
		return history
	}
	out := make([]domain.Transaction, 0, len(history))
	for _, t := range history {
		if !t.Timestamp.Before(start) {
			out = append(out, t)
		}
	}
	return out
}

// Totals сумма, количество и средний чек; деления на ноль нет
func Totals(filtered []domain.Transaction) ReportTotals {
	var totals ReportTotals
	for _, t := range filtered {
		totals.TotalSales += t.Total
	}
	totals.TransactionCount = len(filtered)
	if totals.TransactionCount > 0 {
		totals.AverageOrderValue = totals.TotalSales / float64(totals.TransactionCount)
	}
	return totals
}

// ByPaymentMethod выручка в разрезе cash/card/upi
func ByPaymentMethod(filtered []domain.Transaction) PaymentBreakdown {
	var b PaymentBreakdown
	for _, t := range filtered {
		switch t.PaymentMethod {
		case domain.PaymentCash:
			b.Cash += t.Total
		case domain.PaymentCard:
			b.Card += t.Total
		case domain.PaymentUPI:
			b.UPI += t.Total
		}
	}
	return b
}

// TopProducts лидеры по выручке; при равной выручке сохраняется порядок
// первого появления
func TopProducts(filtered []domain.Transaction, limit int) []ProductSales {
	index := make(map[string]int)
	out := make([]ProductSales, 0)
	for _, t := range filtered {
		for _, item := range t.Items {
			i, ok := index[item.Name]
			if !ok {
				i = len(out)
				index[item.Name] = i
				out = append(out, ProductSales{Name: item.Name})
			}
			out[i].Quantity += item.Quantity
			out[i].Revenue += item.Total
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DailySeries выручка по календарным датам, по возрастанию даты
func DailySeries(filtered []domain.Transaction) []DailySales {
	byDate := make(map[string]float64)
	for _, t := range filtered {
		byDate[t.Timestamp.Format("2006-01-02")] += t.Total
	}
	out := make([]DailySales, 0, len(byDate))
	for date, total := range byDate {
		out = append(out, DailySales{Date: date, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ReportService отчёты поверх журнала; только чтение, внутреннего
// состояния нет
type ReportService struct {
	ledger repository.LedgerRepository
}

func NewReportService(ledger repository.LedgerRepository) *ReportService {
	return &ReportService{ledger: ledger}
}

// topProductsLimit отчёт показывает пять лидеров, как исходный экран
const topProductsLimit = 5

// Summary собирает полный отчёт за период на момент now
func (s *ReportService) Summary(ctx context.Context, p Period, now time.Time) (*ReportSummary, error) {
	history, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := FilterByPeriod(history, p, now)
	return &ReportSummary{
		Period:      p,
		Totals:      Totals(filtered),
		ByPayment:   ByPaymentMethod(filtered),
		TopProducts: TopProducts(filtered, topProductsLimit),
		DailySeries: DailySeries(filtered),
	}, nil
}

// HistoryFilter фильтры экрана истории: подстрока имени покупателя или id,
// способ оплаты, точная календарная дата
type HistoryFilter struct {
	Query   string
	Payment string // "", "all" или конкретный способ
	Date    string // YYYY-MM-DD
}

// HistoryPage отфильтрованная история плюс её суммарная выручка
type HistoryPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	TotalSales   float64              `json:"totalSales"`
}

func (f HistoryFilter) matches(t domain.Transaction) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(t.CustomerName), q) && !strings.Contains(t.ID, f.Query) {
			return false
		}
	}
	if f.Payment != "" && f.Payment != "all" && string(t.PaymentMethod) != f.Payment {
		return false
	}
	if f.Date != "" && t.Timestamp.Format("2006-01-02") != f.Date {
		return false
	}
	return true
}

// History отдаёт журнал с фильтрами экрана истории продаж
func (s *ReportService) History(ctx context.Context, f HistoryFilter) (*HistoryPage, error) {
	history, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	page := &HistoryPage{Transactions: make([]domain.Transaction, 0, len(history))}
	for _, t := range history {
		if !f.matches(t) {
			continue
		}
		page.Transactions = append(page.Transactions, t)
		page.TotalSales += t.Total
	}
	return page, nil
}
