package tenantcfg

import "errors"

var (
	// ErrTenantNotFound возвращается, когда файл политики тенанта отсутствует
	ErrTenantNotFound = errors.New("tenantcfg: tenant policy not found")

	// ErrInvalidTenantID возвращается при недопустимом идентификаторе тенанта
	ErrInvalidTenantID = errors.New("tenantcfg: invalid tenant id")

	// ErrInvalidPolicy возвращается, когда файл политики не проходит валидацию.
	// Это операционная ошибка деплоя, а не ошибка пользователя.
	ErrInvalidPolicy = errors.New("tenantcfg: invalid tenant policy")
)
