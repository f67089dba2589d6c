package store

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

var (
	ErrNoField        = errors.New("store: no such field")
	ErrNotAddressable = errors.New("store: value is not addressable")
)

// IDOf returns a function reading the row id at key. A missing field yields
// the empty id.
func IDOf[T any](key Key) func(T) RowID {
	return func(values T) RowID {
		v, ok := Lookup(values, key)
		if !ok || v == nil {
			return ""
		}
		return RowID(fmt.Sprint(v))
	}
}

// Lookup resolves key inside values. Maps with string keys, structs (by
// field name or json tag) and pointers to either are traversed.
func Lookup(values any, key Key) (any, bool) {
	rv := reflect.ValueOf(values)
	for _, part := range key {
		next, ok := child(rv, part)
		if !ok {
			return nil, false
		}
		rv = next
	}
	rv = indirect(rv)
	if !rv.IsValid() {
		return nil, false
	}
	return rv.Interface(), true
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func child(rv reflect.Value, name string) (reflect.Value, bool) {
	rv = indirect(rv)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		return v, v.IsValid()
	case reflect.Struct:
		i, ok := fieldIndex(rv.Type(), name)
		if !ok {
			return reflect.Value{}, false
		}
		return rv.Field(i), true
	default:
		return reflect.Value{}, false
	}
}

func fieldIndex(t reflect.Type, name string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name || f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// SetValue writes value at key inside dst, which must be a map or a pointer.
// Intermediate maps are created for missing map segments.
func SetValue(dst any, key Key, value any) error {
	if len(key) == 0 {
		return fmt.Errorf("set %q: %w", key.String(), ErrNoField)
	}
	rv := reflect.ValueOf(dst)
	if err := setIn(rv, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key.String(), err)
	}
	return nil
}

func setIn(rv reflect.Value, key Key, value any) error {
	rv = indirect(rv)
	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return ErrNoField
		}
		mk := reflect.ValueOf(key[0]).Convert(kt)
		et := rv.Type().Elem()
		if len(key) == 1 {
			v, err := assignable(value, et)
			if err != nil {
				return err
			}
			rv.SetMapIndex(mk, v)
			return nil
		}
		cur := rv.MapIndex(mk)
		if !cur.IsValid() || indirect(cur).Kind() != reflect.Map {
			if et.Kind() != reflect.Interface && et.Kind() != reflect.Map {
				return ErrNoField
			}
			cur = reflect.ValueOf(map[string]any{})
			rv.SetMapIndex(mk, cur)
		}
		return setIn(cur, key[1:], value)
	case reflect.Struct:
		i, ok := fieldIndex(rv.Type(), key[0])
		if !ok {
			return ErrNoField
		}
		f := rv.Field(i)
		if len(key) > 1 {
			if f.Kind() == reflect.Struct && !f.CanAddr() {
				return ErrNotAddressable
			}
			return setIn(f, key[1:], value)
		}
		if !f.CanSet() {
			return ErrNotAddressable
		}
		v, err := assignable(value, f.Type())
		if err != nil {
			return err
		}
		f.Set(v)
		return nil
	default:
		return ErrNotAddressable
	}
}

func assignable(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(t):
		return v, nil
	case v.Type().ConvertibleTo(t) && v.Kind() != reflect.String && t.Kind() != reflect.String:
		return v.Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("cannot assign %s to %s", v.Type(), t)
	}
}

// RemoveChecked marks the checked rows for removal. Rows that were never
// saved (StatusNew) are dropped; every other checked row stays with
// StatusRemove. Unchecked rows are untouched.
func RemoveChecked[T any](items []DataItem[T], checked []RowID, idOf func(T) RowID) []DataItem[T] {
	set := make(map[RowID]bool, len(checked))
	for _, id := range checked {
		set[id] = true
	}
	out := make([]DataItem[T], 0, len(items))
	for _, it := range items {
		if !set[idOf(it.Values)] {
			out = append(out, it)
			continue
		}
		if it.Status == StatusNew {
			continue
		}
		it.Status = StatusRemove
		it.Checked = false
		out = append(out, it)
	}
	return out
}

// AppendNew appends unsaved rows.
func AppendNew[T any](items []DataItem[T], values ...T) []DataItem[T] {
	out := slices.Grow(slices.Clone(items), len(values))
	for _, v := range values {
		out = append(out, DataItem[T]{Values: v, Status: StatusNew})
	}
	return out
}
