package listview

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// fieldIndex caches, per struct type, the json name and Go name of every exported field.
var fieldIndex sync.Map // reflect.Type -> map[string][]int

func structFields(t reflect.Type) map[string][]int {
	if cached, ok := fieldIndex.Load(t); ok {
		return cached.(map[string][]int)
	}
	fields := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if _, taken := fields[f.Name]; !taken {
			fields[f.Name] = f.Index
		}
		if name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
			fields[name] = f.Index
		}
	}
	fieldIndex.Store(t, fields)
	return fields
}

// Resolve walks a dotted path through item. Segments match struct fields by json name or
// Go name, string map keys and slice indexes. Nil pointers, nil interfaces and unknown
// segments make the path missing.
func Resolve(item interface{}, path string) (interface{}, bool) {
	v, ok := resolve(reflect.ValueOf(item), path)
	if !ok {
		return nil, false
	}
	return v.Interface(), true
}

func resolve(v reflect.Value, path string) (reflect.Value, bool) {
	if path == "" {
		return reflect.Value{}, false
	}
	for _, key := range strings.Split(path, ".") {
		var ok bool
		if v, ok = indirect(v); !ok {
			return reflect.Value{}, false
		}
		switch v.Kind() {
		case reflect.Struct:
			idx, found := structFields(v.Type())[key]
			if !found {
				return reflect.Value{}, false
			}
			v = v.FieldByIndex(idx)
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return reflect.Value{}, false
			}
			v = v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
			if !v.IsValid() {
				return reflect.Value{}, false
			}
		case reflect.Slice, reflect.Array:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= v.Len() {
				return reflect.Value{}, false
			}
			v = v.Index(i)
		default:
			return reflect.Value{}, false
		}
	}
	return indirect(v)
}

func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// text renders a resolved value the way it is searched: slices join their elements with commas.
func text(v reflect.Value) string {
	if v.Type() == timeType {
		return v.Interface().(time.Time).Format(time.RFC3339)
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if elem, ok := indirect(v.Index(i)); ok {
				parts = append(parts, text(elem))
			} else {
				parts = append(parts, "")
			}
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v.Interface())
}

// compare orders two resolved values: numbers numerically, bools false first, times
// chronologically and everything else by its text.
func compare(a, b reflect.Value) int {
	if a.Type() == timeType && b.Type() == timeType {
		return a.Interface().(time.Time).Compare(b.Interface().(time.Time))
	}
	switch {
	case isInt(a) && isInt(b):
		return cmp3(a.Int(), b.Int())
	case isNumber(a) && isNumber(b):
		return cmp3(toFloat(a), toFloat(b))
	case a.Kind() == reflect.Bool && b.Kind() == reflect.Bool:
		if a.Bool() == b.Bool() {
			return 0
		}
		if !a.Bool() {
			return -1
		}
		return 1
	}
	return strings.Compare(text(a), text(b))
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64:
		return v.Float()
	}
	return float64(v.Uint())
}

func cmp3[N int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
