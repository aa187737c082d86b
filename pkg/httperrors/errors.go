// Package httperrors переводит доменные ошибки в HTTP-ответы вида {"detail": "..."}.
package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dforst25/week9-docker/internal/models"
)

// Body описывает тело ответа об ошибке.
type Body struct {
	Detail string `json:"detail"`
}

// Status возвращает HTTP-код для ошибки: 422 для невалидного тела, иначе 500.
func Status(err error) int {
	if errors.Is(err, models.ErrValidation) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func Write(w http.ResponseWriter, err error) {
	WriteStatus(w, Status(err), err.Error())
}

// WriteStatus пишет JSON-ошибку с произвольным кодом.
func WriteStatus(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Body{Detail: detail})
}
