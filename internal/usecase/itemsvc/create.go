package itemsvc

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/dforst25/week9-docker/internal/models"
)

// Create дописывает запись в конец коллекции и сохраняет коллекцию целиком.
// Существующие записи уходят обратно в хранилище байт в байт.
// При любой ошибке до Save хранилище остаётся нетронутым.
func (s *Items) Create(ctx context.Context, in models.NewItem) (models.Item, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	records, err := s.Storage.Load(ctx)
	if err != nil {
		return models.Item{}, fmt.Errorf("load items: %w", err)
	}

	id, err := nextID(records)
	if err != nil {
		return models.Item{}, err
	}

	item := models.Item{
		ID:       id,
		Name:     in.Name,
		Quantity: in.Quantity,
	}
	rec, err := models.NewRecord(item)
	if err != nil {
		return models.Item{}, fmt.Errorf("encode item: %w", err)
	}
	records = append(records, rec)

	if err = s.Storage.Save(ctx, records); err != nil {
		return models.Item{}, fmt.Errorf("save items: %w", err)
	}

	if s.Metrics != nil {
		s.Metrics.ItemCreated()
	}
	s.Logger.Printf("item %s created (%q x%d), collection size %d", item.ID, item.Name, item.Quantity, len(records))

	return item, nil
}

// nextID вычисляет max(id)+1 по всем записям; для пустой коллекции "1".
func nextID(records []models.Record) (string, error) {
	if len(records) == 0 {
		return "1", nil
	}

	var maxID int64
	for i, rec := range records {
		n, err := rec.NumericID()
		if err != nil {
			return "", fmt.Errorf("item #%d: %w", i, err)
		}
		if i == 0 || n > maxID {
			maxID = n
		}
	}

	if maxID == math.MaxInt64 {
		return "", fmt.Errorf("%w: id %d cannot be incremented", models.ErrTypeConversion, maxID)
	}

	return strconv.FormatInt(maxID+1, 10), nil
}
