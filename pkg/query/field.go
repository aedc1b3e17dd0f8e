package query

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
)

// Kind is the value type a field extractor produces
type Kind int

const (
	KindNumber Kind = iota + 1
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Field extracts one sortable and filterable value from a record.
// Build fields with Number, Text or Bool.
type Field[T any] struct {
	kind    Kind
	number  func(T) float64
	text    func(T) string
	boolean func(T) bool
}

// Fields maps the public field name to its extractor
type Fields[T any] map[string]Field[T]

// Number declares a numeric field
func Number[T any](fn func(T) float64) Field[T] {
	return Field[T]{kind: KindNumber, number: fn}
}

// Text declares a textual field, compared with the engine's collator
func Text[T any](fn func(T) string) Field[T] {
	return Field[T]{kind: KindText, text: fn}
}

// Bool declares a boolean field; false sorts before true
func Bool[T any](fn func(T) bool) Field[T] {
	return Field[T]{kind: KindBool, boolean: fn}
}

// Kind returns the value type of the field
func (f Field[T]) Kind() Kind {
	return f.kind
}

func (f Field[T]) value(item T) any {
	switch f.kind {
	case KindNumber:
		return f.number(item)
	case KindText:
		return f.text(item)
	case KindBool:
		return f.boolean(item)
	}
	return nil
}

func (f Field[T]) compare(c *collate.Collator, a, b T) int {
	switch f.kind {
	case KindNumber:
		return cmp.Compare(f.number(a), f.number(b))
	case KindText:
		return c.CompareString(f.text(a), f.text(b))
	case KindBool:
		return compareBool(f.boolean(a), f.boolean(b))
	}
	return 0
}

// normalize converts a caller supplied filter value to the field's kind.
// Values that cannot be converted are returned unchanged and will never
// equal an extracted value.
func (f Field[T]) normalize(v any) any {
	switch f.kind {
	case KindNumber:
		if n, ok := toFloat(v); ok {
			return n
		}
	case KindText:
		switch s := v.(type) {
		case string:
			return s
		case fmt.Stringer:
			return s.String()
		}
	case KindBool:
		switch b := v.(type) {
		case bool:
			return b
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
				return parsed
			}
		}
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
