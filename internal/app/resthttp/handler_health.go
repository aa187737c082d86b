package resthttp

import "net/http"

// healthStats — payload ответа /health.
type healthStats struct {
	OK     bool   `json:"ok"`
	Driver string `json:"driver"`
	Items  int    `json:"items"`
	Error  string `json:"error,omitempty"`
}

// health проверяет, что коллекция читается, и отдаёт её размер.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	items, err := s.ItemsService.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthStats{
			OK:     false,
			Driver: s.Cfg.StoreDriver,
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthStats{
		OK:     true,
		Driver: s.Cfg.StoreDriver,
		Items:  len(items),
	})
}
