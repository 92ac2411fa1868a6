package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Типы ошибок, которые видит клиент
const (
	KindNotFound         = "NotFound"
	KindInvalidRange     = "InvalidRange"
	KindInvalidInput     = "InvalidInput"
	KindSlotFull         = "SlotFull"
	KindVolumeExceeded   = "VolumeExceeded"
	KindConflict         = "Conflict"
	KindUnauthorized     = "Unauthorized"
	KindForbidden        = "Forbidden"
	KindStoreUnavailable = "StoreUnavailable"
	KindInternal         = "Internal"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgStoreUnavailable = "сервис временно недоступен, повторите попытку"

	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Success   bool   `json:"success"`
	ErrorKind string `json:"errorKind"`
	Message   string `json:"message"`
}

// DataResponse обертка успешного ответа со списком/объектом
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondData отправляет {success: true, data: ...}
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, DataResponse{Success: true, Data: data})
}

// RespondError отправляет ошибку с указанным типом
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Success: false, ErrorKind: kind, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindInvalidInput, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, KindUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, KindForbidden, message)
}

// RespondStoreUnavailable 503, клиент может повторить запрос целиком
func RespondStoreUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, KindStoreUnavailable, msgStoreUnavailable)
}

// RespondInternalError 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, msgInternalError)
}

// DecodeJSON читает тело запроса, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}
