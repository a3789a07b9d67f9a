package get_available_slots

import (
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID  string    // Идентификатор салона
	ServiceID string    // Идентификатор услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	TenantID    string                 // Идентификатор салона
	ServiceID   string                 // Идентификатор услуги
	ServiceName string                 // Название услуги
	Date        time.Time              // Дата, на которую запрашивались слоты
	Slots       []domain.AvailableSlot // Слоты с остаточной вместимостью > 0
}
