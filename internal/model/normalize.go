package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// MaxID is the largest id accepted from outside. Above 2^53 float64 ids
// stop being exact integers.
const MaxID = 1<<53 - 1

// NormalizeTitle collapses every whitespace run into one space and trims
// both ends. Whitespace is Unicode White_Space plus the byte order mark
// U+FEFF, but not U+0085.
func NormalizeTitle(input string) string {
	return strings.Join(strings.FieldsFunc(input, isTitleSpace), " ")
}

func isTitleSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// NextIDAfter returns one more than the largest finite numeric value in
// ids, or 1 when none is usable. Values that are neither numbers nor
// numeric strings are skipped, as are values above MaxID, which ParseID
// rejects too, so every id ParseID accepts stays below the result.
func NextIDAfter(ids []any) TodoID {
	max := 0.0
	for _, raw := range ids {
		n, ok := numericValue(raw)
		if !ok || n > MaxID {
			continue
		}
		if n > max {
			max = n
		}
	}
	return TodoID(math.Floor(max)) + 1
}

// ParseID converts an externally supplied id into a TodoID. Only positive
// integral values are accepted.
func ParseID(raw any) (TodoID, bool) {
	n, ok := numericValue(raw)
	if !ok || n != math.Trunc(n) || n < 1 || n > MaxID {
		return 0, false
	}
	return TodoID(n), true
}

func numericValue(raw any) (float64, bool) {
	var n float64
	switch v := raw.(type) {
	case TodoID:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case float32:
		n = float64(v)
	case float64:
		n = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
