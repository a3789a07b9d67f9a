package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	appointmentRepo "github.com/KaayaanAi/salon-receptionist/internal/infra/storage/appointment"
	"github.com/KaayaanAi/salon-receptionist/internal/infra/tenantcfg"
	"github.com/KaayaanAi/salon-receptionist/internal/rules"
	"github.com/KaayaanAi/salon-receptionist/internal/service/bookings/models"
	"github.com/KaayaanAi/salon-receptionist/pkg/phonefmt"
)

// Service сервис для работы с записями салонов
type Service struct {
	appointmentRepo AppointmentRepository
	policyProvider  PolicyProvider
	rulesEngine     RulesEngine
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	policyProvider PolicyProvider,
	rulesEngine RulesEngine,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		policyProvider:  policyProvider,
		rulesEngine:     rulesEngine,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByRef получает запись по номеру в пределах салона
func (s *Service) GetByRef(ctx context.Context, tenantID, bookingRef string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByRef: fetching booking %s for tenant=%s", bookingRef, tenantID)

	appt, err := s.appointmentRepo.GetByRef(ctx, tenantID, bookingRef)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByRef: booking %s not found in tenant %s", bookingRef, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByRef: repository error for booking %s: %v", bookingRef, err)
		return nil, fmt.Errorf("%w: GetByRef - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет запись с проверкой срока уведомления.
// Отсчет срока идет от времени НАЧАЛА записи: уже начавшаяся запись и
// запись внутри окна уведомления дают разные ошибки.
func (s *Service) Cancel(ctx context.Context, tenantID, bookingRef string, req *models.CancelBookingRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling booking %s for tenant=%s", bookingRef, tenantID)

	appt, err := s.appointmentRepo.GetByRef(ctx, tenantID, bookingRef)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: booking %s not found in tenant %s", bookingRef, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking %s: %v", bookingRef, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.IsCancelled() {
		s.logger.Warn("Cancel: booking %s is already cancelled", bookingRef)
		return nil, ErrAlreadyCancelled
	}
	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: booking %s has status %s and cannot be cancelled", bookingRef, appt.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrCannotCancel, appt.Status)
	}

	policy, err := s.getPolicy(tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.rulesEngine.CheckCancellationNotice(policy, appt, s.timeProvider.Now()); err != nil {
		switch {
		case errors.Is(err, rules.ErrAppointmentAlreadyPast):
			s.logger.Warn("Cancel: booking %s has already started", bookingRef)
			return nil, ErrAlreadyPast
		case errors.Is(err, rules.ErrInsufficientNotice):
			s.logger.Warn("Cancel: booking %s is within the notice window", bookingRef)
			return nil, fmt.Errorf("%w: requires %d hours notice", ErrInsufficientNotice, policy.CancelNoticeHours)
		default:
			s.logger.Error("Cancel: notice check failed for booking %s: %v", bookingRef, err)
			return nil, fmt.Errorf("%w: Cancel - notice check: %v", ErrInternal, err)
		}
	}

	if err := s.appointmentRepo.Cancel(ctx, tenantID, bookingRef, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			// Гонка: запись отменили между чтением и обновлением
			return nil, ErrAlreadyCancelled
		}
		s.logger.Error("Cancel: failed to cancel booking %s: %v", bookingRef, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.appointmentRepo.GetByRef(ctx, tenantID, bookingRef)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking %s: %v", bookingRef, err)
		return nil, fmt.Errorf("%w: Cancel - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking %s cancelled", bookingRef)
	return models.FromDomainAppointment(cancelled), nil
}

// GetTenantBookings получает записи салона с фильтрацией по дате и статусу.
// Дневная выборка возвращается в порядке времени начала.
func (s *Service) GetTenantBookings(ctx context.Context, req *models.GetTenantBookingsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetTenantBookings: tenant=%s, date=%v, status=%v, includeInactive=%v",
		req.TenantID, req.Date, req.Status, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantBookings: invalid filter for tenant %s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantBookings: repository error for tenant %s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantBookings: fetched %d bookings for tenant=%s", len(appointments), req.TenantID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetCustomerBookings получает историю записей клиента по телефону.
// Телефон приводится к каноническому E.164 перед поиском.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerBookings: tenant=%s, since=%v", req.TenantID, req.Since)

	policy, err := s.getPolicy(req.TenantID)
	if err != nil {
		return nil, err
	}

	phone, err := phonefmt.Normalize(req.Phone, policy.Country)
	if err != nil {
		s.logger.Warn("GetCustomerBookings: invalid phone for tenant %s: %v", req.TenantID, err)
		return nil, ErrInvalidPhone
	}

	var since time.Time
	if req.Since != nil {
		since, err = time.Parse(domain.DateFormat, *req.Since)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid since date for tenant %s", req.TenantID)
			return nil, fmt.Errorf("%w: invalid since date", ErrInvalidInput)
		}
	}

	appointments, err := s.appointmentRepo.GetByPhoneSince(ctx, req.TenantID, phone, since)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for tenant %s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for tenant=%s", len(appointments), req.TenantID)
	return models.FromDomainAppointmentList(appointments), nil
}

func (s *Service) getPolicy(tenantID string) (*domain.TenantPolicy, error) {
	policy, err := s.policyProvider.GetPolicy(tenantID)
	if err != nil {
		if errors.Is(err, tenantcfg.ErrTenantNotFound) || errors.Is(err, tenantcfg.ErrInvalidTenantID) {
			s.logger.Warn("getPolicy: tenant %s not found", tenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("getPolicy: failed to get policy for tenant %s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant policy: %v", ErrInternal, err)
	}
	return policy, nil
}
