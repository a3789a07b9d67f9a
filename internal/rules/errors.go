package rules

import (
	"errors"
	"strings"
)

var (
	// ErrAppointmentAlreadyPast возвращается при попытке отменить запись,
	// начало которой уже прошло. Отличается от нарушения срока уведомления.
	ErrAppointmentAlreadyPast = errors.New("rules: appointment has already started")

	// ErrInsufficientNotice возвращается, когда до начала записи осталось
	// меньше часов, чем требует политика тенанта.
	ErrInsufficientNotice = errors.New("rules: insufficient cancellation notice")

	// ErrCancelledImmutable возвращается при попытке изменить отмененную запись
	ErrCancelledImmutable = errors.New("rules: cancelled appointment cannot be updated")
)

// ValidationError несет весь накопленный список причин отказа.
// Вызывающая сторона обязана показать их все, а не только первую.
type ValidationError struct {
	Reasons []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "rules: validation failed: " + strings.Join(e.Reasons, "; ")
}

// AsValidationError распаковывает ошибку валидации из цепочки err
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	ok := errors.As(err, &vErr)
	return vErr, ok
}
