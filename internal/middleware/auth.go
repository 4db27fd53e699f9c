package middleware

import (
	"context"
	"net/http"

	"fetenahub-backend/internal/auth"
)

type contextKey string

const telegramUserKey contextKey = "telegram_user"

// AuthHeader carries the platform-signed init data on every protected call.
const AuthHeader = "X-Telegram-Auth"

// TelegramAuth validates the init data header and stores the verified
// identity in the request context. Every failure is a plain 401; no detail
// about why verification failed is disclosed.
func TelegramAuth(botToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initData := r.Header.Get(AuthHeader)
			if initData == "" {
				respondError(w, "Missing authentication", http.StatusUnauthorized)
				return
			}

			tgUser, err := auth.Validate(initData, botToken)
			if err != nil {
				respondError(w, "Invalid authentication", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), telegramUserKey, tgUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTelegramUser extracts the verified identity from the context
func GetTelegramUser(ctx context.Context) auth.TelegramUser {
	tgUser, ok := ctx.Value(telegramUserKey).(auth.TelegramUser)
	if !ok {
		return auth.TelegramUser{}
	}
	return tgUser
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
