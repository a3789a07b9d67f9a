package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	appointmentRepo "github.com/KaayaanAi/salon-receptionist/internal/infra/storage/appointment"
	"github.com/KaayaanAi/salon-receptionist/internal/infra/tenantcfg"
	"github.com/KaayaanAi/salon-receptionist/internal/rules"
	"github.com/KaayaanAi/salon-receptionist/pkg/ptr"
)

// UseCase use case для изменения существующей записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	policyProvider  PolicyProvider
	rulesEngine     RulesEngine
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	policyProvider PolicyProvider,
	rulesEngine RulesEngine,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		policyProvider:  policyProvider,
		rulesEngine:     rulesEngine,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case изменения записи.
// Перенос по дате/времени/услуге проходит полный цикл бизнес-правил и
// проверку вместимости; собственный интервал записи при этом исключается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: tenant=%s, ref=%s", req.TenantID, req.BookingRef)

	// 1. Базовая валидация запроса
	if req.TenantID == "" {
		return nil, fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}
	if req.BookingRef == "" {
		return nil, fmt.Errorf("%w: bookingRef is required", ErrInvalidInput)
	}
	if !req.hasChanges() {
		return nil, ErrNoChanges
	}

	// 2. Текущее время в таймзоне салонов
	now := uc.timeProvider.Now()

	// 3. Конфигурация салона
	policy, err := uc.policyProvider.GetPolicy(req.TenantID)
	if err != nil {
		if errors.Is(err, tenantcfg.ErrTenantNotFound) || errors.Is(err, tenantcfg.ErrInvalidTenantID) {
			uc.logger.Warn("UpdateBooking: tenant %s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		if errors.Is(err, tenantcfg.ErrInvalidPolicy) {
			uc.logger.Error("UpdateBooking: tenant %s has invalid config: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: %v", ErrTenantConfig, err)
		}
		uc.logger.Error("UpdateBooking: failed to get policy for tenant %s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant policy: %v", ErrInternal, err)
	}

	// 4. Существующая запись
	existing, err := uc.appointmentRepo.GetByRef(ctx, req.TenantID, req.BookingRef)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateBooking: booking %s not found in tenant %s", req.BookingRef, req.TenantID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking %s: %v", req.BookingRef, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 5. Отмененные и завершенные записи неизменяемы
	if !existing.CanBeUpdated() {
		uc.logger.Warn("UpdateBooking: booking %s has status %s and cannot be updated",
			req.BookingRef, existing.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrBookingImmutable, existing.Status)
	}

	// 6. Только заметки — без пересчета расписания
	if !req.hasScheduleChange() {
		fields := appointmentRepo.UpdateFields{Notes: req.Notes}
		if err := uc.appointmentRepo.Update(ctx, req.TenantID, req.BookingRef, fields); err != nil {
			uc.logger.Error("UpdateBooking: failed to update notes for %s: %v", req.BookingRef, err)
			return nil, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
		return uc.fetchResponse(ctx, req.TenantID, req.BookingRef)
	}

	// 7. Итоговые значения: явные поля запроса поверх текущих
	input := rules.BookingInput{
		Date:          existing.Date.Format(domain.DateFormat),
		StartTime:     existing.StartTime.String(),
		ServiceID:     existing.ServiceID,
		CustomerName:  existing.CustomerName,
		CustomerPhone: existing.CustomerPhone,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}
	if req.StartTime != nil {
		input.StartTime = *req.StartTime
	}
	if req.ServiceID != nil {
		input.ServiceID = *req.ServiceID
	}

	// 8. Полный прогон бизнес-правил для нового расписания
	normalized, err := uc.rulesEngine.ValidateBooking(policy, input, now)
	if err != nil {
		uc.logger.Warn("UpdateBooking: booking rules rejected request: %v", err)
		return nil, err
	}

	endTime, err := normalized.StartTime.AddMinutes(normalized.Service.DurationMinutes)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to compute end time: %v", err)
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	var result *Response

	// 9. Проверка вместимости и обновление в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		filter := domain.TenantBookingsFilter{
			TenantID:        req.TenantID,
			Date:            ptr.Ptr(normalized.Date),
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByTenantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// Собственный интервал записи не считается конфликтом
		overlapping, err := domain.CountOverlapping(appointments, normalized.StartTime, normalized.Service.DurationMinutes, req.BookingRef)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to count overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to count overlapping appointments: %v", ErrInternal, err)
		}

		if overlapping >= policy.MaxConcurrentBookings {
			uc.logger.Warn("UpdateBooking: slot not available, %d/%d spots taken",
				overlapping, policy.MaxConcurrentBookings)
			return ErrSlotNotAvailable
		}

		fields := appointmentRepo.UpdateFields{
			Date:            ptr.Ptr(normalized.Date),
			StartTime:       ptr.Ptr(normalized.StartTime.String()),
			EndTime:         ptr.Ptr(endTime.String()),
			ServiceID:       ptr.Ptr(normalized.Service.ID),
			ServiceName:     ptr.Ptr(normalized.Service.Name),
			DurationMinutes: ptr.Ptr(normalized.Service.DurationMinutes),
			ServicePrice:    ptr.Ptr(normalized.Service.Price),
			Notes:           req.Notes,
		}

		if err := uc.appointmentRepo.Update(txCtx, req.TenantID, req.BookingRef, fields); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking %s: %v", req.BookingRef, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		updated, err := uc.appointmentRepo.GetByRef(txCtx, req.TenantID, req.BookingRef)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to reload booking %s: %v", req.BookingRef, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		result = toResponse(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: updated %s for tenant=%s", req.BookingRef, req.TenantID)

	return result, nil
}

func (uc *UseCase) fetchResponse(ctx context.Context, tenantID, bookingRef string) (*Response, error) {
	updated, err := uc.appointmentRepo.GetByRef(ctx, tenantID, bookingRef)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to reload booking %s: %v", bookingRef, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}
	return toResponse(updated), nil
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		BookingRef:      appt.BookingRef,
		TenantID:        appt.TenantID,
		CustomerName:    appt.CustomerName,
		CustomerPhone:   appt.CustomerPhone,
		ServiceID:       appt.ServiceID,
		ServiceName:     appt.ServiceName,
		ServicePrice:    appt.ServicePrice,
		Date:            appt.Date,
		StartTime:       appt.StartTime,
		EndTime:         appt.EndTime,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		Notes:           appt.Notes,
		UpdatedAt:       appt.UpdatedAt,
	}
}
