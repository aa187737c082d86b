package resthttp

import (
	"net/http"

	"github.com/dforst25/week9-docker/internal/models"
	"github.com/dforst25/week9-docker/pkg/httperrors"
)

const itemCreatedMessage = "Item created successfully"

// createItemResp описывает тело ответа на создание записи.
type createItemResp struct {
	Message string      `json:"message"`
	Item    models.Item `json:"item"`
}

// createItem валидирует тело до обращения к хранилищу и делегирует создание сервису.
func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	in, err := models.DecodeNewItem(r.Body)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	item, err := s.ItemsService.Create(r.Context(), in)
	if err != nil {
		s.Logger.Printf("create item: %v", err)
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createItemResp{
		Message: itemCreatedMessage,
		Item:    item,
	})
}
