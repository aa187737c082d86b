package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record одна запись коллекции в том виде, в каком она лежит в хранилище.
// Содержимое не разбирается при чтении и не меняется при перезаписи: лишние ключи,
// отсутствующие поля и числовые id переживают любой Create.
type Record json.RawMessage

// MarshalJSON отдаёт запись как есть.
func (r Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON копирует сырое значение элемента массива.
func (r *Record) UnmarshalJSON(b []byte) error {
	if r == nil {
		return errors.New("models.Record: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[:0], b...)
	return nil
}

// NewRecord сериализует созданную сервером запись.
func NewRecord(it Item) (Record, error) {
	b, err := json.Marshal(it)
	if err != nil {
		return nil, err
	}
	return Record(b), nil
}

// NumericID читает поле id как целое число: десятичная строка (пробелы по краям
// допустимы) или целое JSON-число. Всё остальное даёт ErrTypeConversion.
func (r Record) NumericID() (int64, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r, &fields); err != nil {
		return 0, fmt.Errorf("%w: record %s is not an object", ErrTypeConversion, r)
	}

	raw, ok := fields["id"]
	if !ok {
		return 0, fmt.Errorf("%w: record has no id", ErrTypeConversion)
	}

	n, err := parseInteger(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: id %s: %v", ErrTypeConversion, raw, err)
	}
	return n, nil
}

// CloneRecords копирует коллекцию вместе с байтами записей.
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = append(Record(nil), rec...)
	}
	return out
}

// parseInteger принимает целое JSON-число (в том числе 2.0) или строку с десятичным целым.
func parseInteger(raw json.RawMessage) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}

	switch x := v.(type) {
	case json.Number:
		return numberToInt(x)
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	default:
		return 0, fmt.Errorf("want integer, got %s", jsonKind(v))
	}
}

func numberToInt(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}

	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%s is not an integer", n)
	}
	return int64(f), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
