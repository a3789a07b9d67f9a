package tenants

import "errors"

var (
	// ErrTenantNotFound возвращается, когда салон не найден
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidPolicy возвращается при некорректной конфигурации салона
	ErrInvalidPolicy = errors.New("invalid tenant policy")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
