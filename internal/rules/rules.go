// Package rules реализует проверку бизнес-правил бронирования: допустимость
// даты и времени, существование услуги, данные клиента и политику уведомления
// об отмене. Движок не хранит состояния - все входы передаются явно.
package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	"github.com/KaayaanAi/salon-receptionist/pkg/phonefmt"
	"github.com/KaayaanAi/salon-receptionist/pkg/types"
)

// Engine проверяет запросы на бронирование против политики тенанта.
// Все вычисления дат привязаны к одной таймзоне.
type Engine struct {
	loc *time.Location
}

// NewEngine создает движок правил для указанной таймзоны
func NewEngine(loc *time.Location) *Engine {
	return &Engine{loc: loc}
}

// Location возвращает таймзону движка
func (e *Engine) Location() *time.Location {
	return e.loc
}

// BookingInput сырые поля запроса на создание или изменение записи
type BookingInput struct {
	Date          string // "YYYY-MM-DD"
	StartTime     string // "HH:MM"
	ServiceID     string
	CustomerName  string
	CustomerPhone string
}

// Normalized результат успешной валидации: разобранные и приведенные
// к каноническому виду данные запроса.
type Normalized struct {
	Date          time.Time
	Weekday       time.Weekday
	StartTime     types.TimeString
	Service       domain.Service
	CustomerName  string // trimmed
	CustomerPhone string // canonical E.164
}

// ValidateBooking прогоняет все проверки и накапливает причины отказа.
// Каждая независимая проверка выполняется всегда, чтобы клиент получил
// полный список проблем за один запрос. Проверка времени пропускается,
// если дата не прошла валидацию - без даты нет дня недели.
func (e *Engine) ValidateBooking(policy *domain.TenantPolicy, in BookingInput, now time.Time) (*Normalized, error) {
	reasons := make([]string, 0, 4)
	result := &Normalized{}

	dateOK := e.validateDate(policy, in.Date, now, result, &reasons)
	if dateOK {
		e.validateTime(policy, in.StartTime, result, &reasons)
	}
	e.validateService(policy, in.ServiceID, result, &reasons)
	e.validateCustomerName(in.CustomerName, result, &reasons)
	e.validatePhone(policy, in.CustomerPhone, result, &reasons)

	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}
	return result, nil
}

// CheckCancellationNotice проверяет политику уведомления об отмене.
// Считается от времени НАЧАЛА записи - не от окончания (осознанный выбор,
// зафиксированный в поведении системы).
func (e *Engine) CheckCancellationNotice(policy *domain.TenantPolicy, appt *domain.Appointment, now time.Time) error {
	startsAt, err := appt.StartsAt(e.loc)
	if err != nil {
		return fmt.Errorf("%w: booking=%s: %v", ErrAppointmentAlreadyPast, appt.BookingRef, err)
	}

	if !startsAt.After(now) {
		return fmt.Errorf("%w: booking=%s started at %s", ErrAppointmentAlreadyPast,
			appt.BookingRef, startsAt.Format(time.RFC3339))
	}

	hoursUntil := startsAt.Sub(now).Hours()
	if hoursUntil < float64(policy.CancelNoticeHours) {
		return fmt.Errorf("%w: %d hours required, %.1f remaining", ErrInsufficientNotice,
			policy.CancelNoticeHours, hoursUntil)
	}

	return nil
}

// validateDate проверяет дату: формат, не в прошлом, окно предварительной
// записи, заблокированные даты. Возвращает true, если день недели определен.
func (e *Engine) validateDate(policy *domain.TenantPolicy, dateStr string, now time.Time, result *Normalized, reasons *[]string) bool {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, e.loc)
	if err != nil {
		*reasons = append(*reasons, fmt.Sprintf("booking date %q is not a valid date, expected YYYY-MM-DD", dateStr))
		return false
	}

	result.Date = date
	result.Weekday = date.Weekday()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.loc)

	if date.Before(today) {
		*reasons = append(*reasons, "booking date is in the past")
		return true
	}

	if policy.HasAdvanceBookingLimit() {
		maxDate := today.AddDate(0, 0, policy.AdvanceBookingDays)
		if date.After(maxDate) {
			*reasons = append(*reasons, fmt.Sprintf("booking date is beyond the advance window of %d days",
				policy.AdvanceBookingDays))
		}
	}

	if policy.IsBlockedDate(date) {
		*reasons = append(*reasons, fmt.Sprintf("the salon is not accepting bookings on %s", dateStr))
	}

	return true
}

// validateTime проверяет время: формат, рабочий день, попадание в часы работы.
// Вызывается только при успешно разобранной дате.
// Время, равное времени закрытия, отклоняется: запись должна начинаться
// строго до закрытия.
func (e *Engine) validateTime(policy *domain.TenantPolicy, timeStr string, result *Normalized, reasons *[]string) {
	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		*reasons = append(*reasons, fmt.Sprintf("start time %q is not a valid time, expected HH:MM", timeStr))
		return
	}
	result.StartTime = startTime

	hours := policy.WorkingHoursFor(result.Date)
	if !hours.Enabled {
		*reasons = append(*reasons, fmt.Sprintf("the salon is closed on %ss", strings.ToLower(result.Weekday.String())))
		return
	}

	if startTime.IsBefore(hours.Open) || !startTime.IsBefore(hours.Close) {
		*reasons = append(*reasons, fmt.Sprintf("start time %s is outside working hours (%s-%s)",
			startTime, hours.Open, hours.Close))
	}
}

// validateService проверяет, что услуга существует и активна
func (e *Engine) validateService(policy *domain.TenantPolicy, serviceID string, result *Normalized, reasons *[]string) {
	if serviceID == "" {
		*reasons = append(*reasons, "service id is required")
		return
	}

	svc := policy.ServiceByID(serviceID)
	if svc == nil {
		*reasons = append(*reasons, fmt.Sprintf("service %q is not offered by this salon", serviceID))
		return
	}
	if !svc.Active {
		*reasons = append(*reasons, fmt.Sprintf("service %q is currently unavailable", serviceID))
		return
	}

	result.Service = *svc
}

// validateCustomerName проверяет имя клиента после обрезки пробелов
func (e *Engine) validateCustomerName(name string, result *Normalized, reasons *[]string) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < domain.MinCustomerNameLength {
		*reasons = append(*reasons, fmt.Sprintf("customer name must be at least %d characters",
			domain.MinCustomerNameLength))
		return
	}
	result.CustomerName = trimmed
}

// validatePhone канонизирует телефон клиента через страну тенанта
func (e *Engine) validatePhone(policy *domain.TenantPolicy, phone string, result *Normalized, reasons *[]string) {
	canonical, err := phonefmt.Normalize(phone, policy.Country)
	if err != nil {
		*reasons = append(*reasons, fmt.Sprintf("phone number %q is not a valid number for region %s",
			phone, policy.Country))
		return
	}
	result.CustomerPhone = canonical
}
