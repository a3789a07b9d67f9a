package update_booking

import (
	"time"

	"github.com/KaayaanAi/salon-receptionist/pkg/types"
)

// Request модель запроса на изменение записи.
// Nil-поля остаются без изменений.
type Request struct {
	TenantID   string
	BookingRef string
	Date       *string // "YYYY-MM-DD"
	StartTime  *string // "HH:MM"
	ServiceID  *string
	Notes      *string
}

// Response модель ответа с обновленной записью
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
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// hasScheduleChange сообщает, затрагивает ли запрос дату, время или услугу
func (r *Request) hasScheduleChange() bool {
	return r.Date != nil || r.StartTime != nil || r.ServiceID != nil
}

// hasChanges сообщает, есть ли в запросе хоть одно изменяемое поле
func (r *Request) hasChanges() bool {
	return r.hasScheduleChange() || r.Notes != nil
}
