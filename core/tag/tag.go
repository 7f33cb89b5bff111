package tag

import (
	"reflect"
)

const (
	// Name is the struct tag holding the default value
	Name = "default"

	maxDepth = 16
)

// ApplyDefaults fills zero valued fields of the struct pointed to by target
// from their `default` tags. Nested structs and non-nil pointers to structs
// are walked; fields that already hold a value are left alone, so it must run
// before any source that can legitimately set a zero value.
//
//	type ServerConfig struct {
//	    Host string `default:"0.0.0.0"`
//	    Port int    `default:"8080"`
//	}
func ApplyDefaults(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrTargetMustBePointer
	}
	return walk(v.Elem(), "", 0)
}

func walk(v reflect.Value, prefix string, depth int) error {
	if depth >= maxDepth {
		return ErrMaxDepthExceeded
	}

	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}

		def, hasDefault := field.Tag.Lookup(Name)

		switch {
		case fv.Kind() == reflect.Struct && !hasDefault:
			if err := walk(fv, path, depth+1); err != nil {
				return err
			}
		case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct:
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			if err := walk(fv.Elem(), path, depth+1); err != nil {
				return err
			}
		case hasDefault && fv.IsZero():
			if err := setValue(fv, def); err != nil {
				return &FieldError{Path: path, Kind: fv.Kind(), Value: def, Err: err}
			}
		}
	}
	return nil
}
