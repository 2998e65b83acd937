package storage

import "encoding/json"

// Encode converts an entity into the map form the cache stores.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	data := map[string]any{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Decode restores an entity from its cached map form.
func Decode(data map[string]any, v any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// EncodeList wraps a slice of entities into a single-field map under the
// given name, the shape handbook lists are cached in.
func EncodeList[T any](name string, items []T) (map[string]any, error) {
	rows := make([]any, 0, len(items))
	for _, item := range items {
		row, err := Encode(item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return map[string]any{name: rows}, nil
}

// DecodeList unwraps a list cached by EncodeList. A map without the field
// yields an empty slice.
func DecodeList[T any](data map[string]any, name string) ([]T, error) {
	field, ok := data[name]
	if !ok {
		return nil, nil
	}
	raw, err := json.Marshal(field)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
