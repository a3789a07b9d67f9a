package create_booking

import (
	"context"
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	"github.com/KaayaanAi/salon-receptionist/internal/rules"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Appointment, error)
	// GetRefsByDayPrefix возвращает все номера записей салона за день для генерации следующего номера
	GetRefsByDayPrefix(ctx context.Context, tenantID, dayPrefix string) ([]string, error)
}

// PolicyProvider интерфейс провайдера конфигурации салона
type PolicyProvider interface {
	GetPolicy(tenantID string) (*domain.TenantPolicy, error)
}

// RulesEngine интерфейс движка бизнес-правил бронирования
type RulesEngine interface {
	ValidateBooking(policy *domain.TenantPolicy, in rules.BookingInput, now time.Time) (*rules.Normalized, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
