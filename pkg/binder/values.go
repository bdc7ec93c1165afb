package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// RemainTag marks a map[string]string field that receives every value not
// bound to another field of the same source.
const RemainTag = "*"

var stringMap = reflect.TypeOf(map[string]string(nil))

// bindValues copies values into the fields of v carrying tagName. Fields
// without the tag are left to other binders.
func bindValues(v any, tagName string, values map[string][]string, bindErr error) error {
	rv, err := target(v)
	if err != nil {
		return fmt.Errorf("%w: %w", bindErr, err)
	}
	rt := rv.Type()

	bound := make(map[string]struct{})
	remain := -1

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, ok := tagged(sf, tagName)
		if !ok {
			continue
		}
		if name == RemainTag {
			if sf.Type != stringMap {
				return fmt.Errorf("%w: field %s: %q requires map[string]string", bindErr, sf.Name, RemainTag)
			}
			remain = i
			continue
		}

		bound[name] = struct{}{}
		if vals, exists := values[name]; exists && len(vals) > 0 {
			if err := setField(field, sf.Type, vals); err != nil {
				return fmt.Errorf("%w: field %s: %w", bindErr, sf.Name, err)
			}
		}
	}

	if remain >= 0 {
		rest := make(map[string]string, len(values))
		for name, vals := range values {
			if _, skip := bound[name]; skip || len(vals) == 0 {
				continue
			}
			rest[name] = vals[0]
		}
		rv.Field(remain).Set(reflect.ValueOf(rest))
	}

	return nil
}

func target(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, ErrInvalidTarget
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv, nil
}

// tagged returns the parameter name of a struct field for tagName. Options
// after a comma are ignored. Untagged and "-" fields report false.
func tagged(sf reflect.StructField, tagName string) (string, bool) {
	tag, ok := sf.Tag.Lookup(tagName)
	if !ok || tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return "", false
	}
	return name, true
}

func setField(field reflect.Value, typ reflect.Type, values []string) error {
	switch typ.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setField(field.Elem(), typ.Elem(), values)
	case reflect.Slice:
		slice := reflect.MakeSlice(typ, len(values), len(values))
		for i, value := range values {
			if err := setField(slice.Index(i), typ.Elem(), []string{value}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	value := values[0]
	switch typ.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}
	return nil
}

// parseBool accepts checkbox values on top of strconv.ParseBool.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid bool value %q", value)
	}
	return b, nil
}
