package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recover перехватывает панику хендлера и отвечает 500
func Recover(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("%s %s - panic recovered: request_id=%s, panic=%v\n%s",
						r.Method, r.URL.Path, RequestIDFromContext(r.Context()), rec, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
