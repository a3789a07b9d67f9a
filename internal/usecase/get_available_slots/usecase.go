package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	"github.com/KaayaanAi/salon-receptionist/internal/infra/tenantcfg"
	"github.com/KaayaanAi/salon-receptionist/pkg/ptr"
)

// UseCase use case для получения доступных слотов салона
type UseCase struct {
	appointmentRepo AppointmentRepository
	policyProvider  PolicyProvider
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	policyProvider PolicyProvider,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		policyProvider:  policyProvider,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%s, service=%s, date=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в таймзоне салонов
	now := uc.timeProvider.Now()

	// 3. Конфигурация салона
	policy, err := uc.policyProvider.GetPolicy(req.TenantID)
	if err != nil {
		if errors.Is(err, tenantcfg.ErrTenantNotFound) || errors.Is(err, tenantcfg.ErrInvalidTenantID) {
			uc.logger.Warn("GetAvailableSlots: tenant %s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		if errors.Is(err, tenantcfg.ErrInvalidPolicy) {
			uc.logger.Error("GetAvailableSlots: tenant %s has invalid config: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: %v", ErrTenantConfig, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to get policy for tenant %s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant policy: %v", ErrInternal, err)
	}

	// 4. Услуга должна существовать и быть активной
	service := policy.ServiceByID(req.ServiceID)
	if service == nil || !service.Active {
		uc.logger.Warn("GetAvailableSlots: service %s not found in tenant %s", req.ServiceID, req.TenantID)
		return nil, ErrServiceNotFound
	}

	// 5. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Выходной или заблокированная дата — пустой список, не ошибка
	hours := policy.WorkingHoursFor(req.Date)
	if !hours.Enabled || policy.IsBlockedDate(req.Date) {
		uc.logger.Info("GetAvailableSlots: tenant %s is closed on %s", req.TenantID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, service.Name), nil
	}

	// 7. Кандидаты слотов от открытия с шагом granularity
	candidates, err := generateCandidateTimes(hours, policy.SlotGranularityMinutes, service.DurationMinutes, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidate times: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidate times: %v", ErrInternal, err)
	}

	// 8. Один снимок записей дня на весь расчет
	filter := domain.TenantBookingsFilter{
		TenantID:        req.TenantID,
		Date:            ptr.Ptr(req.Date),
		IncludeInactive: false,
	}

	appointments, err := uc.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Остаточная вместимость каждого кандидата; занятые слоты отбрасываются
	slots, err := buildAvailableSlots(candidates, service.DurationMinutes, appointments, policy.MaxConcurrentBookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute availability: %v", err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots available for tenant=%s, service=%s, date=%s",
		len(slots), req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		TenantID:    req.TenantID,
		ServiceID:   req.ServiceID,
		ServiceName: service.Name,
		Date:        req.Date,
		Slots:       slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, serviceName string) *Response {
	return &Response{
		TenantID:    req.TenantID,
		ServiceID:   req.ServiceID,
		ServiceName: serviceName,
		Date:        req.Date,
		Slots:       []domain.AvailableSlot{},
	}
}
