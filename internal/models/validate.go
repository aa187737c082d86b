package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// newItemPayload описывает тело запроса на создание. Указатель и сырое значение
// позволяют отличить отсутствующее поле от нулевого значения.
type newItemPayload struct {
	Name     *string         `json:"name"`
	Quantity json.RawMessage `json:"quantity"`
}

// DecodeNewItem читает JSON-объект {name, quantity} и проверяет его форму.
// Посторонние ключи игнорируются. quantity принимается числом или строкой, если
// значение в точности целое: 2, 2.0 и "2" проходят, 2.5 и "two" нет.
// Любое отклонение возвращается как ошибка, оборачивающая ErrValidation.
func DecodeNewItem(r io.Reader) (NewItem, error) {
	if r == nil {
		return NewItem{}, fmt.Errorf("%w: empty body", ErrValidation)
	}

	dec := json.NewDecoder(r)

	var p newItemPayload
	if err := dec.Decode(&p); err != nil {
		return NewItem{}, fmt.Errorf("%w: %s", ErrValidation, describeDecodeError(err))
	}
	// После объекта допустимы только пробелы.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return NewItem{}, fmt.Errorf("%w: unexpected data after JSON object", ErrValidation)
	}

	if p.Name == nil {
		return NewItem{}, fmt.Errorf("%w: field \"name\" is required", ErrValidation)
	}
	if len(p.Quantity) == 0 {
		return NewItem{}, fmt.Errorf("%w: field \"quantity\" is required", ErrValidation)
	}

	qty, err := parseInteger(p.Quantity)
	if err != nil {
		return NewItem{}, fmt.Errorf("%w: field \"quantity\" must be an integer: %v", ErrValidation, err)
	}
	if qty < math.MinInt || qty > math.MaxInt {
		return NewItem{}, fmt.Errorf("%w: field \"quantity\" is out of range", ErrValidation)
	}

	return NewItem{Name: *p.Name, Quantity: int(qty)}, nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			return fmt.Sprintf("field %q must be %s, got %s", typeErr.Field, typeErr.Type.String(), typeErr.Value)
		}
		return fmt.Sprintf("body must be a JSON object, got %s", typeErr.Value)
	}
	if errors.Is(err, io.EOF) {
		return "empty body"
	}
	return err.Error()
}
