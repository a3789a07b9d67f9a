package tenants

import (
	"errors"
	"fmt"

	"github.com/KaayaanAi/salon-receptionist/internal/infra/tenantcfg"
)

// Service сервис для работы с конфигурацией салонов
type Service struct {
	policyProvider PolicyProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(policyProvider PolicyProvider, logger Logger) *Service {
	return &Service{
		policyProvider: policyProvider,
		logger:         logger,
	}
}

// GetPolicy возвращает действующую конфигурацию салона
func (s *Service) GetPolicy(tenantID string) (*PolicyResponse, error) {
	policy, err := s.policyProvider.GetPolicy(tenantID)
	if err != nil {
		return nil, s.mapPolicyError("GetPolicy", tenantID, err)
	}
	return FromDomainPolicy(policy), nil
}

// ReloadPolicy перечитывает конфигурацию салона с диска и возвращает новую версию.
// Действующая версия заменяется атомарно только после успешной валидации.
func (s *Service) ReloadPolicy(tenantID string) (*PolicyResponse, error) {
	s.logger.Info("ReloadPolicy: reloading config for tenant=%s", tenantID)

	policy, err := s.policyProvider.Reload(tenantID)
	if err != nil {
		return nil, s.mapPolicyError("ReloadPolicy", tenantID, err)
	}

	s.logger.Info("ReloadPolicy: tenant=%s config reloaded", tenantID)
	return FromDomainPolicy(policy), nil
}

// ListServices возвращает активные услуги салона
func (s *Service) ListServices(tenantID string) (*ServiceListResponse, error) {
	policy, err := s.policyProvider.GetPolicy(tenantID)
	if err != nil {
		return nil, s.mapPolicyError("ListServices", tenantID, err)
	}
	return FromDomainServiceList(policy), nil
}

func (s *Service) mapPolicyError(op, tenantID string, err error) error {
	switch {
	case errors.Is(err, tenantcfg.ErrTenantNotFound), errors.Is(err, tenantcfg.ErrInvalidTenantID):
		s.logger.Warn("%s: tenant %s not found", op, tenantID)
		return ErrTenantNotFound
	case errors.Is(err, tenantcfg.ErrInvalidPolicy):
		s.logger.Error("%s: tenant %s has invalid config: %v", op, tenantID, err)
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	default:
		s.logger.Error("%s: failed to get policy for tenant %s: %v", op, tenantID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
