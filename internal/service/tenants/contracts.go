package tenants

import (
	"github.com/KaayaanAi/salon-receptionist/internal/domain"
)

// PolicyProvider интерфейс провайдера конфигурации салона
type PolicyProvider interface {
	GetPolicy(tenantID string) (*domain.TenantPolicy, error)
	Reload(tenantID string) (*domain.TenantPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
