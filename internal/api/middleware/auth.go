package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
)

// APIKeyHeader заголовок с ключом доступа к защищенным маршрутам
const APIKeyHeader = "X-API-Key"

// Auth проверяет ключ доступа в заголовке X-API-Key.
// Защищенные маршруты предназначены для администраторов и интеграций салонов.
func Auth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(APIKeyHeader)
			if provided == "" {
				handlers.RespondUnauthorized(w, "missing API key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				handlers.RespondUnauthorized(w, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
