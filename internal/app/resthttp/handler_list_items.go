package resthttp

import (
	"net/http"

	"github.com/dforst25/week9-docker/pkg/httperrors"
)

// listItems отдаёт коллекцию целиком в порядке хранения.
func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.ItemsService.List(r.Context())
	if err != nil {
		s.Logger.Printf("list items: %v", err)
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
