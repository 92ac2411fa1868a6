package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
)

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyRequestID
)

// UserIDHeader заголовок с ID пользователя, выставляется шлюзом
const UserIDHeader = "X-User-ID"

const (
	msgMissingUserID = "требуется заголовок X-User-ID"
	msgInvalidUserID = "некорректный X-User-ID"
	msgForbidden     = "доступ запрещен"
)

// UserIDFromContext возвращает ID пользователя, сохраненный Auth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(int64)
	return id, ok
}

// Auth требует X-User-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly пропускает только пользователей из списка администраторов. Ставится после Auth.
func AdminOnly(adminIDs []int64) func(http.Handler) http.Handler {
	allowed := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		allowed[id] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}
			if _, ok := allowed[userID]; !ok {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
