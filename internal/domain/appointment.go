package domain

import (
	"time"

	"github.com/KaayaanAi/salon-receptionist/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a salon appointment in the system
type Appointment struct {
	ID         int64
	BookingRef string // "BK-{tenantId}-{YYYYMMDD}-{seq}", unique per tenant
	TenantID   string

	CustomerName  string
	CustomerPhone string // canonical E.164

	ServiceID string
	Date      time.Time // calendar day, time part zeroed
	StartTime types.TimeString
	EndTime   types.TimeString // always StartTime + DurationMinutes
	Status    AppointmentStatus

	// Denormalized service data for history
	ServiceName     string
	DurationMinutes int
	ServicePrice    float64

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeUpdated returns true if the appointment can still be modified.
// Cancelled appointments are immutable.
func (a *Appointment) CanBeUpdated() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// RecalculateEnd derives EndTime from StartTime and DurationMinutes.
// Must be called whenever start time or service changes.
func (a *Appointment) RecalculateEnd() error {
	end, err := a.StartTime.AddMinutes(a.DurationMinutes)
	if err != nil {
		return err
	}
	a.EndTime = end
	return nil
}

// StartsAt anchors the appointment start to an absolute instant in loc
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return a.StartTime.At(a.Date, loc)
}

// TenantBookingsFilter фильтр для выборки записей тенанта
type TenantBookingsFilter struct {
	TenantID        string             // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и no-show записи
}
