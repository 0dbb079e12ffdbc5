package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Сообщения пользователю, общие для всех обработчиков
const (
	MsgInvalidParams  = "Μη έγκυρες παράμετροι"
	MsgInvalidBody    = "Μη έγκυρο αίτημα"
	MsgUnauthorized   = "Μη εξουσιοδοτημένη πρόσβαση"
	MsgNotFound       = "Δεν βρέθηκε"
	MsgInternalError  = "Παρουσιάστηκε άγνωστο σφάλμα."
	MsgTooManyRequest = "Πολλά αιτήματα. Παρακαλώ περιμένετε."
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку в формате {"error": "..."}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, MsgUnauthorized)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, MsgInternalError)
}

// DecodeJSON читает тело запроса в v; пустое тело и лишние данные после объекта - ошибка
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}
