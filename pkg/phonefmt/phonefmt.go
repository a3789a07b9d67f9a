// Package phonefmt normalizes customer phone numbers to a single canonical
// form (E.164) before they are stored or used as lookup keys.
package phonefmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhone возвращается, когда номер не распарсился или невалиден
// для указанного региона.
var ErrInvalidPhone = errors.New("phonefmt: invalid phone number")

// Normalize парсит сырой номер с учетом кода страны тенанта и приводит его
// к каноническому формату E.164 (например "+96550001122").
// Номера, уже содержащие международный префикс, регион-подсказку игнорируют.
func Normalize(raw string, defaultRegion string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidPhone)
	}

	num, err := phonenumbers.Parse(trimmed, strings.ToUpper(defaultRegion))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidPhone, raw, err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q is not valid for region %s", ErrInvalidPhone, raw, defaultRegion)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsValid сообщает, является ли номер валидным для региона.
func IsValid(raw string, defaultRegion string) bool {
	_, err := Normalize(raw, defaultRegion)
	return err == nil
}
