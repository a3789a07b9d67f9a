package update_booking

import "errors"

var (
	// ErrTenantNotFound возвращается, когда салон не найден
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingImmutable возвращается при попытке изменить отмененную или завершенную запись
	ErrBookingImmutable = errors.New("booking can no longer be updated")

	// ErrSlotNotAvailable возвращается, когда на новое время не осталось мест
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrNoChanges возвращается, когда в запросе нет ни одного изменяемого поля
	ErrNoChanges = errors.New("no fields to update")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTenantConfig возвращается при некорректной конфигурации салона
	ErrTenantConfig = errors.New("tenant configuration error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
