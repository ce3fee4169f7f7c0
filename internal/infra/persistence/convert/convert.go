// Package convert maps between the storage records in package rows and the
// domain entities. Every function is pure. Enums are stored as their exact
// discriminant and parsed strictly, nested data is canonical JSON text, and
// unsigned values that do not fit their signed column are rejected.
//
// JSON numbers inside free-form maps decode as float64.
package convert

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

func parseEnum[T ~string](field, value string, parse func(string) (T, bool)) (T, error) {
	v, ok := parse(value)
	if !ok {
		var zero T
		return zero, enumErr(field, value)
	}
	return v, nil
}

func checkEnum[T ~string](field string, value T, parse func(string) (T, bool)) (string, error) {
	if _, ok := parse(string(value)); !ok {
		return "", enumErr(field, string(value))
	}
	return string(value), nil
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, idErr(field, value, err)
	}
	return id, nil
}

func parseOptID(field string, value *string) (*uuid.UUID, error) {
	s := optString(value)
	if s == nil {
		return nil, nil
	}
	id, err := parseID(field, *s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optIDText(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// optString normalizes the empty-string absent sentinel to nil.
func optString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func u64(field string, v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, overflowErr(field, v)
	}
	return int64(v), nil
}

func u32(field string, v uint32) (int32, error) {
	if v > math.MaxInt32 {
		return 0, overflowErr(field, v)
	}
	return int32(v), nil
}

func optU64(field string, v *uint64) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	n, err := u64(field, *v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optU32(field string, v *uint32) (*int32, error) {
	if v == nil {
		return nil, nil
	}
	n, err := u32(field, *v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optU16(v *uint16) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

func toU64(field string, v int64) (uint64, error) {
	if v < 0 {
		return 0, overflowErr(field, v)
	}
	return uint64(v), nil
}

func toU32(field string, v int32) (uint32, error) {
	if v < 0 {
		return 0, overflowErr(field, v)
	}
	return uint32(v), nil
}

func toU16(field string, v int32) (uint16, error) {
	if v < 0 || v > math.MaxUint16 {
		return 0, overflowErr(field, v)
	}
	return uint16(v), nil
}

func toOptU64(field string, v *int64) (*uint64, error) {
	if v == nil {
		return nil, nil
	}
	n, err := toU64(field, *v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func toOptU32(field string, v *int32) (*uint32, error) {
	if v == nil {
		return nil, nil
	}
	n, err := toU32(field, *v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func toOptU16(field string, v *int32) (*uint16, error) {
	if v == nil {
		return nil, nil
	}
	n, err := toU16(field, *v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// encode renders v as compact JSON with sorted map keys.
func encode(field string, v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", jsonErr(field, err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// encodeList renders a slice, writing "[]" rather than null for nil.
func encodeList[T any](field string, v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	return encode(field, v)
}

// encodeMap renders a map, writing "{}" rather than null for nil.
func encodeMap[V any](field string, v map[string]V) (string, error) {
	if v == nil {
		v = map[string]V{}
	}
	return encode(field, v)
}

func isEmptyJSON(text string) bool {
	t := bytes.TrimSpace([]byte(text))
	return len(t) == 0 || string(t) == "null"
}

func decodeList[T any](field, text string) ([]T, error) {
	out := []T{}
	if isEmptyJSON(text) {
		return out, nil
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, jsonErr(field, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func decodeMap[V any](field, text string) (map[string]V, error) {
	out := map[string]V{}
	if isEmptyJSON(text) {
		return out, nil
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, jsonErr(field, err)
	}
	if out == nil {
		out = map[string]V{}
	}
	return out, nil
}

func decodeObject(field, text string, dst any) error {
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return jsonErr(field, err)
	}
	return nil
}
