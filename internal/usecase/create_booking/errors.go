package create_booking

import "errors"

var (
	// ErrTenantNotFound возвращается, когда салон не найден
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrSlotNotAvailable возвращается, когда на запрошенное время не осталось мест
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrRefGenerationFailed возвращается после исчерпания попыток получить уникальный номер записи
	ErrRefGenerationFailed = errors.New("failed to generate unique booking reference")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTenantConfig возвращается при некорректной конфигурации салона
	ErrTenantConfig = errors.New("tenant configuration error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
