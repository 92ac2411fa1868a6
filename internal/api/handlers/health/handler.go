package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger проверка доступности зависимости (БД, Redis)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - Database ping failed: %v", err)
		handlers.RespondStoreUnavailable(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
