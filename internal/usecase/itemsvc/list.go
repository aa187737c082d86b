package itemsvc

import (
	"context"
	"fmt"

	"github.com/dforst25/week9-docker/internal/models"
)

// List возвращает коллекцию в том порядке и в том виде, в котором она сохранена.
func (s *Items) List(ctx context.Context) ([]models.Record, error) {
	records, err := s.Storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if records == nil {
		records = []models.Record{}
	}

	return records, nil
}
