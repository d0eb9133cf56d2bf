package filter

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// APIDateLayout is the timestamp layout used by the Marvel API.
const APIDateLayout = "2006-01-02T15:04:05-0700"

// apiLayouts are tried before falling back to cast. Event start and end dates
// come without a zone.
var apiLayouts = []string{APIDateLayout, "2006-01-02 15:04:05"}

// zeroDatePrefix marks the placeholder date the API sends for unknown values.
const zeroDatePrefix = "-0001-11-30"

var builtins *Registry

func init() {
	builtins = NewRegistry(map[string]Func{
		"int":       intFilter,
		"uint":      uintFilter,
		"float":     floatFilter,
		"string":    stringFilter,
		"strval":    strval,
		"bool":      boolFilter,
		"date":      dateFilter,
		"in":        inFilter,
		"ofScalars": ofScalars,
		"implode":   implode,
		"trim":      trim,
		"array":     arrayFilter,
	})
	builtins.checks = map[string]argCheck{
		"ofScalars": checkStepArgs,
	}
}

// Builtins returns the registry of standard filter functions.
func Builtins() *Registry {
	return builtins
}

// --- argument helpers ---

func argBool(args []any, i int, def bool) bool {
	if i >= len(args) || args[i] == nil {
		return def
	}
	b, ok := args[i].(bool)
	if !ok {
		return def
	}
	return b
}

func argInt(args []any, i int) (int, bool) {
	if i >= len(args) || args[i] == nil {
		return 0, false
	}
	n, err := cast.ToIntE(args[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func argFloat(args []any, i int) (float64, bool) {
	if i >= len(args) || args[i] == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(args[i])
	if err != nil {
		return 0, false
	}
	return f, true
}

func argString(args []any, i int, def string) string {
	if i >= len(args) || args[i] == nil {
		return def
	}
	s, ok := args[i].(string)
	if !ok {
		return def
	}
	return s
}

// AsList converts any slice or array to []any.
func AsList(value any) ([]any, bool) {
	if list, ok := value.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func isScalar(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	default:
		return false
	}
}

// --- numeric ---

// toInt64 accepts integers, integral floats and base 10 numeric strings.
// Leading zeros do not switch the base, and prefixed or underscored forms
// such as "0x10" or "1_000" are rejected.
func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case bool:
		return 0, Failf("value %v is not an integer", v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, Failf("value %q is not an integer", v)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, Failf("value %q is not an integer", v)
		}
		return n, nil
	case float32:
		return integralFloat(float64(v))
	case float64:
		return integralFloat(v)
	case json.Number:
		return toInt64(v.String())
	}
	if !isScalar(value) {
		return 0, Failf("value of type %T is not an integer", value)
	}
	n, err := cast.ToInt64E(value)
	if err != nil {
		return 0, Failf("value %v is not an integer", value)
	}
	return n, nil
}

// parseDecimal parses a base 10 float. strconv also takes hex mantissas
// and the Inf/NaN words, neither of which is a number here.
func parseDecimal(v string) (float64, error) {
	s := strings.TrimSpace(v)
	if strings.ContainsAny(s, "xX_") {
		return 0, Failf("value %q is not a number", v)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, Failf("value %q is not a number", v)
	}
	return f, nil
}

func integralFloat(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, Failf("value %v is not an integer", f)
	}
	return int64(f), nil
}

func checkRange(n float64, args []any, minIdx, maxIdx int) error {
	if minV, ok := argFloat(args, minIdx); ok && n < minV {
		return Failf("value %v is less than %v", n, minV)
	}
	if maxV, ok := argFloat(args, maxIdx); ok && n > maxV {
		return Failf("value %v is greater than %v", n, maxV)
	}
	return nil
}

// intFilter: args allowNull, min, max.
func intFilter(value any, args ...any) (any, error) {
	if value == nil && argBool(args, 0, false) {
		return nil, nil
	}
	if value == nil {
		return nil, Failf("value is null")
	}
	n, err := toInt64(value)
	if err != nil {
		return nil, err
	}
	if err := checkRange(float64(n), args, 1, 2); err != nil {
		return nil, err
	}
	return int(n), nil
}

// uintFilter: args allowNull, min, max.
func uintFilter(value any, args ...any) (any, error) {
	if value == nil && argBool(args, 0, false) {
		return nil, nil
	}
	if value == nil {
		return nil, Failf("value is null")
	}
	n, err := toInt64(value)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, Failf("value %d is negative", n)
	}
	if err := checkRange(float64(n), args, 1, 2); err != nil {
		return nil, err
	}
	return uint(n), nil
}

// floatFilter: args allowNull, min, max.
func floatFilter(value any, args ...any) (any, error) {
	if value == nil && argBool(args, 0, false) {
		return nil, nil
	}
	var (
		f   float64
		err error
	)
	switch v := value.(type) {
	case nil:
		return nil, Failf("value is null")
	case bool:
		return nil, Failf("value %v is not a number", v)
	case string:
		f, err = parseDecimal(v)
	case json.Number:
		f, err = v.Float64()
	default:
		if !isScalar(value) {
			return nil, Failf("value of type %T is not a number", value)
		}
		f, err = cast.ToFloat64E(value)
	}
	if err != nil {
		return nil, Failf("value %v is not a number", value)
	}
	if err := checkRange(f, args, 1, 2); err != nil {
		return nil, err
	}
	return f, nil
}

// --- strings ---

// stringFilter: args allowNull, minLength (default 1), maxLength.
func stringFilter(value any, args ...any) (any, error) {
	if value == nil && argBool(args, 0, false) {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, Failf("value %v is not a string", value)
	}
	n := utf8.RuneCountInString(s)
	minLen, ok := argInt(args, 1)
	if !ok {
		minLen = 1
	}
	if n < minLen {
		return nil, Failf("value %q is shorter than %d characters", s, minLen)
	}
	if maxLen, ok := argInt(args, 2); ok && n > maxLen {
		return nil, Failf("value %q is longer than %d characters", s, maxLen)
	}
	return s, nil
}

func strval(value any, _ ...any) (any, error) {
	if value != nil && !isScalar(value) {
		return nil, Failf("value of type %T cannot be converted to a string", value)
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, Failf("value %v cannot be converted to a string", value)
	}
	return s, nil
}

func trim(value any, _ ...any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, Failf("value %v is not a string", value)
	}
	return strings.TrimSpace(s), nil
}

// --- bool ---

// boolFilter: args allowNull.
func boolFilter(value any, args ...any) (any, error) {
	if value == nil && argBool(args, 0, false) {
		return nil, nil
	}
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, Failf("value %v is not a boolean", value)
}

// --- dates ---

// dateFilter: args allowNull. Strings in the API layout are parsed first;
// other layouts and unix timestamps go through cast.
func dateFilter(value any, args ...any) (any, error) {
	allowNull := argBool(args, 0, false)
	switch v := value.(type) {
	case nil:
		if allowNull {
			return nil, nil
		}
		return nil, Failf("value is null")
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			if allowNull {
				return nil, nil
			}
			return nil, Failf("value is null")
		}
		return *v, nil
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, zeroDatePrefix) {
			if allowNull {
				return nil, nil
			}
			return nil, Failf("value %q is not a valid date", v)
		}
		for _, layout := range apiLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		t, err := cast.ToTimeE(s)
		if err != nil {
			return nil, Failf("value %q is not a valid date", v)
		}
		return t, nil
	case bool:
		return nil, Failf("value %v is not a valid date", v)
	}
	if !isScalar(value) {
		return nil, Failf("value of type %T is not a valid date", value)
	}
	t, err := cast.ToTimeE(value)
	if err != nil {
		return nil, Failf("value %v is not a valid date", value)
	}
	return t, nil
}

// --- lists ---

// inFilter: args allowed values (any slice).
func inFilter(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, Failf("no allowed values given")
	}
	allowed, ok := AsList(args[0])
	if !ok {
		return nil, Failf("allowed values must be a list, got %T", args[0])
	}
	if !isScalar(value) {
		return nil, Failf("value %v is not in the allowed set", value)
	}
	if !lo.Contains(allowed, value) {
		return nil, Failf("value %v is not in the allowed set %v", value, allowed)
	}
	return value, nil
}

// ofScalars: args element steps ([]Step or Step). A compiled spec binds the
// element steps against its own registry; when called directly, aliases
// resolve against the built-in registry. Every element is checked and all
// failures are reported together.
func ofScalars(value any, args ...any) (any, error) {
	list, ok := AsList(value)
	if !ok {
		return nil, Failf("value %v is not a list", value)
	}

	elem := chain{}
	for _, a := range args {
		switch s := a.(type) {
		case boundSteps:
			elem.steps = append(elem.steps, s...)
		case []Step, Step:
			bound, err := bindArg(a, builtins)
			if err != nil {
				return nil, err
			}
			elem.steps = append(elem.steps, bound.(boundSteps)...)
		default:
			return nil, invalidSpec("ofScalars expects steps, got %T", a)
		}
	}

	out := make([]any, len(list))
	var errs []string
	for i, item := range list {
		if !isScalar(item) {
			errs = append(errs, Failf("[%d]: value %v is not a scalar", i, item).Error())
			continue
		}
		v, err := elem.run(item)
		if err != nil {
			errs = append(errs, Failf("[%d]: %s", i, err.Error()).Error())
			continue
		}
		out[i] = v
	}
	if len(errs) > 0 {
		return nil, Failf("%s", strings.Join(errs, ", "))
	}
	return out, nil
}

func checkStepArgs(args []any) error {
	for _, a := range args {
		switch a.(type) {
		case Step, []Step:
		default:
			return invalidSpec("ofScalars expects steps, got %T", a)
		}
	}
	return nil
}

// implode: args delimiter (default ",").
func implode(value any, args ...any) (any, error) {
	list, ok := AsList(value)
	if !ok {
		return nil, Failf("value %v is not a list", value)
	}
	parts := lo.Map(list, func(item any, _ int) string {
		return cast.ToString(item)
	})
	return strings.Join(parts, argString(args, 0, ",")), nil
}

// arrayFilter: args minCount, maxCount.
func arrayFilter(value any, args ...any) (any, error) {
	list, ok := AsList(value)
	if !ok {
		return nil, Failf("value %v is not a list", value)
	}
	if n, ok := argInt(args, 0); ok && len(list) < n {
		return nil, Failf("list has %d elements, fewer than %d", len(list), n)
	}
	if n, ok := argInt(args, 1); ok && len(list) > n {
		return nil, Failf("list has %d elements, more than %d", len(list), n)
	}
	return list, nil
}
