package domain

import "time"

// Product представляет товар в каталоге магазина
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Barcode  string  `json:"barcode,omitempty"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int64   `json:"stock"`
	Unit     string  `json:"unit"` // kg, piece, liter, dozen
}

// PaymentMethod тип способа оплаты
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// Valid проверяет, что способ оплаты один из допустимых
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// CartLine позиция чека: снимок полей товара плюс количество.
// Поля копируются в момент добавления, поздние правки каталога
// на строку не влияют.
type CartLine struct {
	Product
	Quantity int64   `json:"quantity"`
	Total    float64 `json:"total"`
}

// Transaction завершённая продажа; после создания не изменяется
type Transaction struct {
	ID            string        `json:"id"`
	Items         []CartLine    `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Timestamp     time.Time     `json:"timestamp"`
	CustomerName  string        `json:"customerName,omitempty"`
}

// Settings настройки магазина; ядро читает только TaxRate (в процентах)
type Settings struct {
	ShopName            string  `json:"shopName"`
	ShopAddress         string  `json:"shopAddress"`
	ShopPhone           string  `json:"shopPhone"`
	ShopEmail           string  `json:"shopEmail"`
	TaxRate             float64 `json:"taxRate"`
	Currency            string  `json:"currency"`
	ReceiptFooter       string  `json:"receiptFooter"`
	EnableBarcode       bool    `json:"enableBarcode"`
	EnableLowStockAlert bool    `json:"enableLowStockAlert"`
	LowStockThreshold   int64   `json:"lowStockThreshold"`
}

// DefaultSettings значения до первого сохранения настроек
func DefaultSettings() Settings {
	return Settings{
		ShopName:            "Grocery Store",
		ShopAddress:         "Main Street",
		ShopPhone:           "+91 9876543210",
		ShopEmail:           "shop@grocerypos.com",
		TaxRate:             5,
		Currency:            "INR",
		ReceiptFooter:       "Thank you for shopping with us!",
		EnableBarcode:       true,
		EnableLowStockAlert: true,
		LowStockThreshold:   10,
	}
}
