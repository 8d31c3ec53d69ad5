package funcli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// coerceTarget returns the type raw values coerce to for a parameter: the
// map value type for a variadic keyword parameter, otherwise the declared
// parameter type (a slice for variadic positional and container parameters,
// handled elementwise by coerceValues).
func coerceTarget(p *Param) reflect.Type {
	if p.Kind == VarKeyword {
		return p.typ.Elem()
	}
	return p.typ
}

// checkCoercible rejects, at bind time, types the coercion layer cannot
// produce from strings.
func checkCoercible(t reflect.Type) error {
	if t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	default:
		return fmt.Errorf("type %s is not coercible from a string", t)
	}
}

// coerceScalar converts one raw token to a scalar type. Integers accept
// base prefixes (0x, 0o, 0b); bool accepts true/false/1/0/yes/no in any
// case.
func coerceScalar(p *Param, t reflect.Type, raw string) (reflect.Value, error) {
	fail := func(err error) (reflect.Value, error) {
		return reflect.Value{}, &CoercionError{Param: p.Name, Value: raw, Type: t, Err: err}
	}
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(raw).Convert(t), nil
	case reflect.Bool:
		b, err := parseBool(raw)
		if err != nil {
			return fail(err)
		}
		return reflect.ValueOf(b).Convert(t), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 0, t.Bits())
		if err != nil {
			return fail(err)
		}
		v := reflect.New(t).Elem()
		v.SetInt(n)
		return v, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 0, t.Bits())
		if err != nil {
			return fail(err)
		}
		v := reflect.New(t).Elem()
		v.SetUint(n)
		return v, nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return fail(err)
		}
		v := reflect.New(t).Elem()
		v.SetFloat(f)
		return v, nil
	default:
		return fail(fmt.Errorf("unsupported type %s", t))
	}
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("want true/false/1/0/yes/no, got %q", raw)
	}
}

// coerceValues converts one parameter's raw value run into its declared
// type, enforcing run arity: container parameters take the whole run,
// scalar parameters take exactly one value, and a bool flag with an empty
// run reads as true.
func coerceValues(p *Param, t reflect.Type, values []string, source valueSource) (reflect.Value, error) {
	if t.Kind() == reflect.Slice {
		out := reflect.MakeSlice(t, 0, len(values))
		for _, raw := range values {
			v, err := coerceScalar(p, t.Elem(), raw)
			if err != nil {
				return reflect.Value{}, err
			}
			out = reflect.Append(out, v)
		}
		return out, nil
	}
	if t.Kind() == reflect.Bool && source == fromFlag && len(values) == 0 {
		return reflect.ValueOf(true).Convert(t), nil
	}
	if len(values) != 1 {
		return reflect.Value{}, parseErrorf("argument %q expected 1 value, got %d", p.Name, len(values))
	}
	return coerceScalar(p, t, values[0])
}

// buildCallArgs turns a match result into the reflect values for invoking
// the bound function. Variadic positional elements are appended
// individually; a variadic keyword parameter becomes a map holding every
// leftover run coerced to its value type.
func buildCallArgs(c *Command, m *matchResult) ([]reflect.Value, error) {
	var args []reflect.Value
	for _, a := range m.assigned {
		p := a.param
		switch {
		case p.Kind == VarPositional:
			elem := p.typ.Elem()
			for _, raw := range a.values {
				v, err := coerceScalar(p, elem, raw)
				if err != nil {
					return nil, err
				}
				args = append(args, v)
			}
		case p.Kind == VarKeyword:
			out := reflect.MakeMap(p.typ)
			elem := p.typ.Elem()
			for _, run := range m.extra {
				v, err := coerceValues(p, elem, run.values, fromFlag)
				if err != nil {
					return nil, err
				}
				out.SetMapIndex(reflect.ValueOf(run.name).Convert(p.typ.Key()), v)
			}
			args = append(args, out)
		case a.source == fromDefault:
			args = append(args, reflect.ValueOf(p.Default).Convert(p.typ))
		default:
			v, err := coerceValues(p, p.typ, a.values, a.source)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
	}
	return args, nil
}
