// Package tenantcfg загружает политики тенантов из TOML файлов и кеширует их
// на время жизни процесса. Кеш заменяет объект политики целиком - читатели
// либо видят старую версию, либо новую, частичных обновлений не бывает.
package tenantcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	"github.com/KaayaanAi/salon-receptionist/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// tenantIDPattern допустимые идентификаторы тенантов.
// Идентификатор используется как имя файла, поэтому ограничен жестко.
var tenantIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,63}$`)

// Provider кеширующий провайдер политик тенантов
type Provider struct {
	dir    string
	logger Logger

	mu    sync.RWMutex
	cache map[string]*domain.TenantPolicy
}

// NewProvider создает провайдер, читающий политики из dir
func NewProvider(dir string, logger Logger) *Provider {
	return &Provider{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]*domain.TenantPolicy),
	}
}

// GetPolicy возвращает политику тенанта из кеша, при промахе загружает файл
func (p *Provider) GetPolicy(tenantID string) (*domain.TenantPolicy, error) {
	if !tenantIDPattern.MatchString(tenantID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTenantID, tenantID)
	}

	p.mu.RLock()
	policy, ok := p.cache[tenantID]
	p.mu.RUnlock()
	if ok {
		return policy, nil
	}

	return p.Reload(tenantID)
}

// Reload загружает политику из файла заново и заменяет кешированную копию
func (p *Provider) Reload(tenantID string) (*domain.TenantPolicy, error) {
	if !tenantIDPattern.MatchString(tenantID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTenantID, tenantID)
	}

	policy, err := p.loadFile(tenantID)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[tenantID] = policy
	p.mu.Unlock()

	p.logger.Info("tenantcfg: loaded policy for tenant=%s (%d services, capacity=%d)",
		tenantID, len(policy.Services), policy.MaxConcurrentBookings)

	return policy, nil
}

// Invalidate удаляет политику тенанта из кеша.
// Следующий GetPolicy перечитает файл.
func (p *Provider) Invalidate(tenantID string) {
	p.mu.Lock()
	delete(p.cache, tenantID)
	p.mu.Unlock()

	p.logger.Info("tenantcfg: invalidated cached policy for tenant=%s", tenantID)
}

// filePolicy TOML схема файла политики тенанта
type filePolicy struct {
	Name    string `toml:"name"`
	Country string `toml:"country"`

	SlotGranularityMinutes int `toml:"slot_granularity_minutes"`
	MaxConcurrentBookings  int `toml:"max_concurrent_bookings"`
	AdvanceBookingDays     int `toml:"advance_booking_days"`
	CancelNoticeHours      int `toml:"cancel_notice_hours"`

	BlockedDates []string `toml:"blocked_dates"`

	WorkingHours map[string]fileWorkingHours `toml:"working_hours"`

	Services []fileService `toml:"services"`
}

type fileWorkingHours struct {
	Enabled bool   `toml:"enabled"`
	Open    string `toml:"open"`
	Close   string `toml:"close"`
}

type fileService struct {
	ID              string  `toml:"id"`
	Name            string  `toml:"name"`
	DurationMinutes int     `toml:"duration_minutes"`
	Price           float64 `toml:"price"`
	Active          bool    `toml:"active"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (p *Provider) loadFile(tenantID string) (*domain.TenantPolicy, error) {
	path := filepath.Join(p.dir, tenantID+".toml")

	var raw filePolicy
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, tenantID)
		}
		return nil, fmt.Errorf("%w: tenant=%s: %v", ErrInvalidPolicy, tenantID, err)
	}

	return buildPolicy(tenantID, &raw)
}

// buildPolicy конвертирует и валидирует сырую TOML схему в доменную политику
func buildPolicy(tenantID string, raw *filePolicy) (*domain.TenantPolicy, error) {
	policy := &domain.TenantPolicy{
		TenantID:               tenantID,
		Name:                   raw.Name,
		Country:                raw.Country,
		SlotGranularityMinutes: raw.SlotGranularityMinutes,
		MaxConcurrentBookings:  raw.MaxConcurrentBookings,
		AdvanceBookingDays:     raw.AdvanceBookingDays,
		CancelNoticeHours:      raw.CancelNoticeHours,
		WorkingHours:           make(map[time.Weekday]domain.WorkingHours, 7),
		BlockedDates:           make(map[string]struct{}, len(raw.BlockedDates)),
	}

	if policy.SlotGranularityMinutes == 0 {
		policy.SlotGranularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	if policy.MaxConcurrentBookings == 0 {
		policy.MaxConcurrentBookings = domain.DefaultMaxConcurrentBookings
	}
	if policy.CancelNoticeHours == 0 {
		policy.CancelNoticeHours = domain.DefaultCancelNoticeHours
	}

	if policy.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		policy.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return nil, fmt.Errorf("%w: tenant=%s: slot_granularity_minutes out of range: %d",
			ErrInvalidPolicy, tenantID, policy.SlotGranularityMinutes)
	}
	if policy.MaxConcurrentBookings < domain.MinConcurrentBookings ||
		policy.MaxConcurrentBookings > domain.MaxConcurrentBookings {
		return nil, fmt.Errorf("%w: tenant=%s: max_concurrent_bookings out of range: %d",
			ErrInvalidPolicy, tenantID, policy.MaxConcurrentBookings)
	}
	if policy.AdvanceBookingDays < 0 {
		return nil, fmt.Errorf("%w: tenant=%s: advance_booking_days must not be negative",
			ErrInvalidPolicy, tenantID)
	}
	if policy.Country == "" {
		return nil, fmt.Errorf("%w: tenant=%s: country is required for phone parsing",
			ErrInvalidPolicy, tenantID)
	}

	for name, hours := range raw.WorkingHours {
		weekday, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: tenant=%s: unknown weekday %q", ErrInvalidPolicy, tenantID, name)
		}

		entry := domain.WorkingHours{Enabled: hours.Enabled}
		if hours.Enabled {
			open, err := types.NewTimeStringFromString(hours.Open)
			if err != nil {
				return nil, fmt.Errorf("%w: tenant=%s: %s open time: %v", ErrInvalidPolicy, tenantID, name, err)
			}
			closeAt, err := types.NewTimeStringFromString(hours.Close)
			if err != nil {
				return nil, fmt.Errorf("%w: tenant=%s: %s close time: %v", ErrInvalidPolicy, tenantID, name, err)
			}
			if !open.IsBefore(closeAt) {
				return nil, fmt.Errorf("%w: tenant=%s: %s open time must precede close time",
					ErrInvalidPolicy, tenantID, name)
			}
			entry.Open = open
			entry.Close = closeAt
		}
		policy.WorkingHours[weekday] = entry
	}

	for _, dateStr := range raw.BlockedDates {
		if _, err := time.Parse(domain.DateFormat, dateStr); err != nil {
			return nil, fmt.Errorf("%w: tenant=%s: blocked date %q: expected YYYY-MM-DD",
				ErrInvalidPolicy, tenantID, dateStr)
		}
		policy.BlockedDates[dateStr] = struct{}{}
	}

	seen := make(map[string]struct{}, len(raw.Services))
	for _, svc := range raw.Services {
		if svc.ID == "" || svc.Name == "" {
			return nil, fmt.Errorf("%w: tenant=%s: service id and name are required", ErrInvalidPolicy, tenantID)
		}
		if svc.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: tenant=%s: service %s duration must be positive",
				ErrInvalidPolicy, tenantID, svc.ID)
		}
		if _, dup := seen[svc.ID]; dup {
			return nil, fmt.Errorf("%w: tenant=%s: duplicate service id %s", ErrInvalidPolicy, tenantID, svc.ID)
		}
		seen[svc.ID] = struct{}{}

		policy.Services = append(policy.Services, domain.Service{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			Active:          svc.Active,
		})
	}

	return policy, nil
}
