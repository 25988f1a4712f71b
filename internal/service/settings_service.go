package service

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/patel24vivek/billing-system/internal/domain"
	"github.com/patel24vivek/billing-system/internal/persistence"
)

// ErrInvalidInput используется сервисами для отбраковки некорректных запросов
var ErrInvalidInput = errors.New("invalid input")

// SettingsService хранит настройки магазина; ядро берёт отсюда только
// налоговую ставку, остальные поля прозрачно отдаются клиенту
type SettingsService struct {
	mirror *Mirror

	mu      sync.RWMutex
	current domain.Settings
}

func NewSettingsService(store persistence.Store, mirror *Mirror) (*SettingsService, error) {
	s := &SettingsService{mirror: mirror}
	data, ok, err := store.Load(persistence.KeySettings)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.current = domain.DefaultSettings()
		return s, nil
	}
	if err := json.Unmarshal(data, &s.current); err != nil {
		return nil, err
	}
	return s, nil
}

// Current текущие настройки
func (s *SettingsService) Current() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// TaxRate налоговая ставка как доля (в настройках хранится процент)
func (s *SettingsService) TaxRate() float64 {
	return s.Current().TaxRate / 100
}

// Update заменяет настройки и зеркалирует их в хранилище
func (s *SettingsService) Update(settings domain.Settings) error {
	if settings.TaxRate < 0 || settings.LowStockThreshold < 0 {
		return ErrInvalidInput
	}
	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()
	s.mirror.SaveSettings(settings)
	return nil
}
