package update_booking

import (
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	updateBooking "github.com/KaayaanAi/salon-receptionist/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model.
// Nil-поля остаются без изменений.
type UpdateBookingRequest struct {
	Date      *string `json:"date,omitempty" validate:"omitempty,len=10"`      // "2025-10-15"
	StartTime *string `json:"startTime,omitempty" validate:"omitempty,len=5"`  // "10:00"
	ServiceID *string `json:"serviceId,omitempty" validate:"omitempty,max=64"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingRef      string  `json:"bookingRef"`
	TenantID        string  `json:"tenantId"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	ServiceID       string  `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(tenantID, bookingRef string) *updateBooking.Request {
	return &updateBooking.Request{
		TenantID:   tenantID,
		BookingRef: bookingRef,
		Date:       r.Date,
		StartTime:  r.StartTime,
		ServiceID:  r.ServiceID,
		Notes:      r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingRef:      resp.BookingRef,
		TenantID:        resp.TenantID,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
