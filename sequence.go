package gochart

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// isSequence reports whether v is a slice or an array. Strings, maps,
// structs, scalars and nil are not sequences.
func isSequence(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

// elements returns the elements of a sequence as a generic slice.
func elements(v any) []any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// toFloat converts any numeric scalar to float64. Booleans and strings are
// not numbers.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// toInt converts an integral number to int. Floating values are accepted
// only when they carry no fractional part, since JSON and YAML decoders
// produce float64 for every number.
func toInt(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	}
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		return int(i), err == nil
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// toLabel converts a label element to a string. Labels may be strings,
// fmt.Stringers, numbers or booleans.
func toLabel(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	case bool:
		return fmt.Sprint(s), true
	}
	if f, ok := toFloat(v); ok {
		return formatNumber(f), true
	}
	return "", false
}

// vector coerces a flat numeric sequence.
func vector(v any) ([]float64, bool) {
	elems := elements(v)
	out := make([]float64, len(elems))
	for i, e := range elems {
		f, ok := toFloat(e)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// gridInfo describes the shape of a possibly two dimensional sequence.
type gridInfo struct {
	rows   [][]float64
	ndim   int
	ragged bool
	size   int
}

// grid coerces a sequence of numeric rows. The second return is false when
// a leaf is not a number. Shape problems (wrong ndim, ragged rows) are
// reported through gridInfo so that type errors take precedence.
func grid(v any) (gridInfo, bool) {
	elems := elements(v)
	info := gridInfo{ndim: 1}
	if len(elems) == 0 {
		return info, true
	}
	seqs := 0
	for _, e := range elems {
		if isSequence(e) {
			seqs++
		}
	}
	if seqs == 0 {
		for _, e := range elems {
			if _, ok := toFloat(e); !ok {
				return info, false
			}
		}
		info.size = len(elems)
		return info, true
	}
	info.ndim = 2
	if seqs != len(elems) {
		info.ragged = true
	}
	width := -1
	for _, e := range elems {
		if !isSequence(e) {
			if _, ok := toFloat(e); !ok {
				return info, false
			}
			continue
		}
		inner := elements(e)
		row := make([]float64, len(inner))
		for j, c := range inner {
			if isSequence(c) {
				info.ndim = 3
				continue
			}
			f, ok := toFloat(c)
			if !ok {
				return info, false
			}
			row[j] = f
		}
		if width >= 0 && len(inner) != width {
			info.ragged = true
		}
		width = len(inner)
		info.size += len(inner)
		info.rows = append(info.rows, row)
	}
	return info, true
}

// nested coerces a sequence of numeric sequences. flat is true when at least
// one element is a bare number instead of a group.
func nested(v any) (groups [][]float64, flat bool, ok bool) {
	elems := elements(v)
	groups = make([][]float64, 0, len(elems))
	for _, e := range elems {
		if isSequence(e) {
			g, ok := vector(e)
			if !ok {
				return nil, false, false
			}
			groups = append(groups, g)
			continue
		}
		if _, isNum := toFloat(e); isNum {
			flat = true
			continue
		}
		return nil, false, false
	}
	return groups, flat, true
}

// labels coerces a sequence of label-like values.
func labels(v any) ([]string, bool) {
	elems := elements(v)
	out := make([]string, len(elems))
	for i, e := range elems {
		s, ok := toLabel(e)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// strs coerces a sequence of strings only.
func strs(v any) ([]string, bool) {
	elems := elements(v)
	out := make([]string, len(elems))
	for i, e := range elems {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}
