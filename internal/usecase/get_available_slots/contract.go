package get_available_slots

import (
	"context"
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByTenantWithFilter получает записи салона по фильтру (одна выборка на расчёт)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Appointment, error)
}

// PolicyProvider интерфейс провайдера конфигурации салона
type PolicyProvider interface {
	GetPolicy(tenantID string) (*domain.TenantPolicy, error)
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
