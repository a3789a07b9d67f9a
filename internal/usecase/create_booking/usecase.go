package create_booking

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

// maxRefAttempts ограничивает число перезапусков транзакции при коллизии номера записи
const maxRefAttempts = 3

// UseCase use case для создания записи в салон
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

// Execute выполняет use case создания записи.
// Проверка вместимости, генерация номера и вставка выполняются в одной
// сериализуемой транзакции; при коллизии номера транзакция перезапускается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%s, service=%s, date=%s, time=%s",
		req.TenantID, req.ServiceID, req.Date, req.StartTime)

	// 1. Базовая валидация запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в таймзоне салонов
	now := uc.timeProvider.Now()

	// 3. Конфигурация салона
	policy, err := uc.policyProvider.GetPolicy(req.TenantID)
	if err != nil {
		if errors.Is(err, tenantcfg.ErrTenantNotFound) || errors.Is(err, tenantcfg.ErrInvalidTenantID) {
			uc.logger.Warn("CreateBooking: tenant %s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		if errors.Is(err, tenantcfg.ErrInvalidPolicy) {
			uc.logger.Error("CreateBooking: tenant %s has invalid config: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: %v", ErrTenantConfig, err)
		}
		uc.logger.Error("CreateBooking: failed to get policy for tenant %s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant policy: %v", ErrInternal, err)
	}

	// 4. Бизнес-правила: все нарушения собираются в один ответ
	normalized, err := uc.rulesEngine.ValidateBooking(policy, rules.BookingInput{
		Date:          req.Date,
		StartTime:     req.StartTime,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: booking rules rejected request: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 5. Сериализуемая транзакция с перезапуском при коллизии номера
	for attempt := 1; attempt <= maxRefAttempts; attempt++ {
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 5.1. Снимок активных записей дня с блокировкой (FOR UPDATE)
			filter := domain.TenantBookingsFilter{
				TenantID:        req.TenantID,
				Date:            ptr.Ptr(normalized.Date),
				IncludeInactive: false,
			}

			appointments, err := uc.appointmentRepo.GetByTenantWithFilter(txCtx, filter)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get appointments: %v", err)
				return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
			}

			// 5.2. Проверка вместимости на запрошенный интервал
			overlapping, err := domain.CountOverlapping(appointments, normalized.StartTime, normalized.Service.DurationMinutes, "")
			if err != nil {
				uc.logger.Error("CreateBooking: failed to count overlapping appointments: %v", err)
				return fmt.Errorf("%w: failed to count overlapping appointments: %v", ErrInternal, err)
			}

			if overlapping >= policy.MaxConcurrentBookings {
				uc.logger.Warn("CreateBooking: slot not available, %d/%d spots taken",
					overlapping, policy.MaxConcurrentBookings)
				return ErrSlotNotAvailable
			}

			// 5.3. Следующий последовательный номер записи за день
			dayPrefix := domain.BookingRefDayPrefix(req.TenantID, normalized.Date)
			refs, err := uc.appointmentRepo.GetRefsByDayPrefix(txCtx, req.TenantID, dayPrefix)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get booking refs: %v", err)
				return fmt.Errorf("%w: failed to get booking refs: %v", ErrInternal, err)
			}

			appt := &domain.Appointment{
				BookingRef:      nextBookingRef(refs, req.TenantID, normalized.Date),
				TenantID:        req.TenantID,
				CustomerName:    normalized.CustomerName,
				CustomerPhone:   normalized.CustomerPhone,
				ServiceID:       normalized.Service.ID,
				ServiceName:     normalized.Service.Name,
				ServicePrice:    normalized.Service.Price,
				Date:            normalized.Date,
				StartTime:       normalized.StartTime,
				DurationMinutes: normalized.Service.DurationMinutes,
				Status:          domain.StatusConfirmed,
				Notes:           req.Notes,
			}
			if err := appt.RecalculateEnd(); err != nil {
				uc.logger.Error("CreateBooking: failed to compute end time: %v", err)
				return fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
			}

			// 5.4. Вставка; уникальный индекс ловит гонку по номеру
			created, err := uc.appointmentRepo.Create(txCtx, appt)
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrDuplicateBookingRef) {
					return err
				}
				uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}

			result = created
			return nil
		})

		if err == nil {
			break
		}

		if errors.Is(err, appointmentRepo.ErrDuplicateBookingRef) {
			uc.logger.Warn("CreateBooking: booking ref collision for tenant %s, attempt %d/%d",
				req.TenantID, attempt, maxRefAttempts)
			if attempt == maxRefAttempts {
				return nil, fmt.Errorf("%w: after %d attempts", ErrRefGenerationFailed, maxRefAttempts)
			}
			continue
		}

		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}

		// Перезапуски сериализации исчерпаны или другая ошибка транзакции
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created %s for tenant=%s", result.BookingRef, result.TenantID)

	return toResponse(result), nil
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
		CreatedAt:       appt.CreatedAt,
	}
}
