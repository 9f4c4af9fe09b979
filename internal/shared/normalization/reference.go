package normalization

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Reference holds a field the REST API sends either as a bare id string or as an
// embedded record. The shape is resolved once while decoding.
type Reference[T any] struct {
	id       string
	embedded *T
}

// RefID builds a reference that only knows the id.
func RefID[T any](id string) Reference[T] {
	return Reference[T]{id: id}
}

// RefEmbedded builds a reference around a full record.
func RefEmbedded[T any](record T, id string) Reference[T] {
	return Reference[T]{id: id, embedded: &record}
}

// Identifiable lets Reference read the id out of an embedded record.
type Identifiable interface {
	Identifier() string
}

func (r Reference[T]) ID() string { return r.id }

// Embedded returns the record and true when the API sent the full object.
func (r Reference[T]) Embedded() (*T, bool) {
	return r.embedded, r.embedded != nil
}

func (r Reference[T]) IsZero() bool {
	return r.id == "" && r.embedded == nil
}

func (r *Reference[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Reference[T]{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &r.id)
	case '{':
		var record T
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("decode embedded reference: %w", err)
		}
		r.embedded = &record
		if ident, ok := any(&record).(Identifiable); ok {
			r.id = ident.Identifier()
		}
		return nil
	default:
		return fmt.Errorf("reference must be a string or object, got %s", string(data[:1]))
	}
}

func (r Reference[T]) MarshalJSON() ([]byte, error) {
	if r.embedded != nil {
		return json.Marshal(r.embedded)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}
