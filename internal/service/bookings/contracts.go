package bookings

import (
	"context"
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByRef(ctx context.Context, tenantID, bookingRef string) (*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Appointment, error)
	GetByPhoneSince(ctx context.Context, tenantID, phone string, since time.Time) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, tenantID, bookingRef string, reason string) error
}

// PolicyProvider интерфейс провайдера конфигурации салона
type PolicyProvider interface {
	GetPolicy(tenantID string) (*domain.TenantPolicy, error)
}

// RulesEngine интерфейс движка бизнес-правил
type RulesEngine interface {
	// CheckCancellationNotice проверяет, что до начала записи осталось достаточно времени
	CheckCancellationNotice(policy *domain.TenantPolicy, appt *domain.Appointment, now time.Time) error
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
