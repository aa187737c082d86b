package resthttp

import "net/http"

// backupIndex и backupSave намеренно оставлены заглушками: маршруты входят в публичный
// контракт, но бэкап не выполняется. Хранилище не читается и не меняется, ответ всегда null.
func (s *Server) backupIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) backupSave(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, nil)
}
