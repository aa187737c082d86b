package resthttp

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/dforst25/week9-docker/internal/config"
	"github.com/dforst25/week9-docker/internal/metrics"
	"github.com/dforst25/week9-docker/internal/repo"
	"github.com/dforst25/week9-docker/internal/usecase/itemsvc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	ItemsService itemsvc.Service
	Cfg          *config.Config
	Metrics      *metrics.Metrics
	Logger       *log.Logger

	store repo.Store
}

// NewServer конструктор: открывает хранилище, готовит его и собирает роутер.
func NewServer(ctx context.Context, cfg *config.Config, logger *log.Logger) (http.Handler, *Server, error) {
	if logger == nil {
		logger = log.New(os.Stdout, "[shopping-list] ", log.LstdFlags)
	}

	store, err := repo.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	m := metrics.New()
	items := itemsvc.New(itemsvc.Deps{
		Storage: store,
		Logger:  logger,
		Metrics: m,
	})

	// Хранилище создаётся один раз на старте, а не в каждом запросе.
	if err := items.Prepare(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	srv := &Server{
		ItemsService: items,
		Cfg:          cfg,
		Metrics:      m,
		Logger:       logger,
		store:        store,
	}

	return srv.routes(), srv, nil
}

// routes регистрирует обработчики списка, заглушек бэкапа и служебных эндпоинтов.
func (s *Server) routes() http.Handler {
	rtr := chi.NewRouter()
	rtr.Use(requestID)
	rtr.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.Logger, NoColor: true}))
	rtr.Use(middleware.Recoverer)
	rtr.Use(s.Metrics.Middleware)

	// Обе формы пути: клиенты первой версии ходят на /items без слэша.
	for _, p := range []string{"/items", "/items/"} {
		rtr.Get(p, s.listItems)
		rtr.Post(p, s.createItem)
	}

	rtr.Get("/backup/", s.backupIndex)
	rtr.Post("/backup/save/", s.backupSave)

	rtr.Get("/health", s.health)
	rtr.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	rtr.Get("/admin/config", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, s.Cfg) })

	return rtr
}

// Close освобождает хранилище.
func (s *Server) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	// Сохранённые записи отдаются без переэкранирования <, > и &.
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
