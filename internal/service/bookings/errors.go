package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTenantNotFound возвращается, когда салон не найден
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrAlreadyCancelled возвращается при повторной отмене записи
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrCannotCancel возвращается, когда запись нельзя отменить из её статуса
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrAlreadyPast возвращается при попытке отменить уже начавшуюся запись
	ErrAlreadyPast = errors.New("booking has already started")

	// ErrInsufficientNotice возвращается, когда до начала записи осталось меньше требуемого срока
	ErrInsufficientNotice = errors.New("cancellation notice period has passed")

	// ErrInvalidPhone возвращается при некорректном номере телефона
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
