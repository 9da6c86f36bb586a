// internal/models/optional.go
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Optional is a questionnaire answer that may be missing. The zero value is unanswered.
type Optional[T any] struct {
	value T
	set   bool
}

func Answered[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func Unanswered[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

func (o Optional[T]) OrElse(def T) T {
	if !o.set {
		return def
	}
	return o.value
}

// IsZero lets `omitzero` drop unanswered fields when encoding.
func (o Optional[T]) IsZero() bool {
	return !o.set
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON never fails: null or a value of the wrong shape leaves the answer unset.
// Numeric answers also accept floats and quoted numbers.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	*o = Optional[T]{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err == nil {
		o.value, o.set = v, true
		return nil
	}

	if coerced, ok := coerce[T](trimmed); ok {
		o.value, o.set = coerced, true
	}
	return nil
}

func coerce[T any](data []byte) (T, bool) {
	var zero T
	raw := strings.Trim(string(data), `"`)

	switch any(zero).(type) {
	case int:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return zero, false
		}
		// out-of-range float to int conversion is implementation-defined
		f = math.Max(math.MinInt32, math.Min(math.MaxInt32, f))
		out, _ := any(int(math.Round(f))).(T)
		return out, true
	case float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return zero, false
		}
		out, _ := any(f).(T)
		return out, true
	case string:
		if len(data) > 0 && data[0] != '{' && data[0] != '[' {
			out, _ := any(raw).(T)
			return out, true
		}
	}
	return zero, false
}
