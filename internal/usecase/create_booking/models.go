package create_booking

import (
	"time"

	"github.com/KaayaanAi/salon-receptionist/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	TenantID      string  // Идентификатор салона
	CustomerName  string  // Имя клиента
	CustomerPhone string  // Телефон клиента в любом разумном формате
	ServiceID     string  // Идентификатор услуги
	Date          string  // Дата в формате "YYYY-MM-DD"
	StartTime     string  // Время начала в формате "HH:MM"
	Notes         *string // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	BookingRef      string           `json:"bookingRef"`
	TenantID        string           `json:"tenantId"`
	CustomerName    string           `json:"customerName"`
	CustomerPhone   string           `json:"customerPhone"`
	ServiceID       string           `json:"serviceId"`
	ServiceName     string           `json:"serviceName"`
	ServicePrice    float64          `json:"servicePrice"`
	Date            time.Time        `json:"date"`
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`
	Notes           *string          `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}
