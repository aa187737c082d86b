package itemsvc

import (
	"context"
	"log"
	"sync"

	"github.com/dforst25/week9-docker/internal/models"
)

type (
	// Storage хранилище коллекции покупок; читается и пишется целиком.
	Storage interface {
		EnsureExists(ctx context.Context) error
		Load(ctx context.Context) ([]models.Record, error)
		Save(ctx context.Context, records []models.Record) error
	}

	// CreatedRecorder получает уведомление о каждой созданной записи (метрики).
	CreatedRecorder interface {
		ItemCreated()
	}

	// Service объединяет операции над списком покупок.
	Service interface {
		Prepare(ctx context.Context) error
		List(ctx context.Context) ([]models.Record, error)
		Create(ctx context.Context, in models.NewItem) (models.Item, error)
	}
)

type Deps struct {
	Storage Storage
	Logger  *log.Logger
	Metrics CreatedRecorder
}

type Items struct {
	Deps

	// writeMu сериализует read-modify-write в Create внутри процесса.
	writeMu sync.Mutex
}

// New конструирует сервис списка покупок с заданными зависимостями.
func New(deps Deps) *Items {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Items{Deps: deps}
}

var _ Service = (*Items)(nil)

// Prepare гарантирует наличие хранилища; вызывается один раз при старте.
func (s *Items) Prepare(ctx context.Context) error {
	return s.Storage.EnsureExists(ctx)
}
