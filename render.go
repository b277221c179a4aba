package cmdspec

import (
	"fmt"
	"reflect"
	"strconv"
)

// renderer turns one field value into argv tokens under the two emission
// modes of the serialization protocol. Renderers are resolved once at
// Compile time so Build stays infallible.
type renderer interface {
	appendArg(v reflect.Value, dst []string) []string
	appendOption(v reflect.Value, name string, dst []string) []string
}

var argIface = reflect.TypeOf((*Arg)(nil)).Elem()

// rendererFor resolves the renderer for a field type. Outside the pointer
// case, Arg implementations win over the built-in forms, value receiver
// before pointer receiver, so a user type keeps control of its own tokens.
func rendererFor(t reflect.Type) (renderer, error) {
	if t.Kind() == reflect.Pointer {
		// Pointer fields are optional values: nil renders zero tokens and
		// suppresses the option name. A custom implementation on the element
		// type still applies through the element renderer, so the nil check
		// stays in front of every method call.
		elem, err := rendererFor(t.Elem())
		if err != nil {
			if t.Implements(argIface) {
				return ifaceRenderer{}, nil
			}
			return nil, err
		}
		return optionalRenderer{elem: elem}, nil
	}
	if t.Implements(argIface) {
		return ifaceRenderer{}, nil
	}
	if reflect.PointerTo(t).Implements(argIface) {
		return addrRenderer{}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return scalarRenderer{format: reflect.Value.String}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalarRenderer{format: formatInt}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalarRenderer{format: formatUint}, nil
	case reflect.Float32:
		return scalarRenderer{format: formatFloat(32)}, nil
	case reflect.Float64:
		return scalarRenderer{format: formatFloat(64)}, nil
	case reflect.Slice, reflect.Array:
		elem, err := rendererFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return sequenceRenderer{elem: elem}, nil
	case reflect.Bool:
		return nil, fmt.Errorf("%w: bool carries no tokens, declare it as a flag", ErrUnsupportedArgType)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedArgType, t)
}

// scalarRenderer emits exactly one token, the value's canonical decimal or
// literal text form.
type scalarRenderer struct {
	format func(reflect.Value) string
}

func (r scalarRenderer) appendArg(v reflect.Value, dst []string) []string {
	return append(dst, r.format(v))
}

func (r scalarRenderer) appendOption(v reflect.Value, name string, dst []string) []string {
	return append(dst, name, r.format(v))
}

// optionalRenderer wraps a pointer field: nil renders zero tokens and, as an
// option, suppresses the name token as well.
type optionalRenderer struct {
	elem renderer
}

func (r optionalRenderer) appendArg(v reflect.Value, dst []string) []string {
	if v.IsNil() {
		return dst
	}
	return r.elem.appendArg(v.Elem(), dst)
}

func (r optionalRenderer) appendOption(v reflect.Value, name string, dst []string) []string {
	if v.IsNil() {
		return dst
	}
	return r.elem.appendOption(v.Elem(), name, dst)
}

// sequenceRenderer concatenates element renderings in order. Under an option
// name, the name token repeats once per element.
type sequenceRenderer struct {
	elem renderer
}

func (r sequenceRenderer) appendArg(v reflect.Value, dst []string) []string {
	for i := 0; i < v.Len(); i++ {
		dst = r.elem.appendArg(v.Index(i), dst)
	}
	return dst
}

func (r sequenceRenderer) appendOption(v reflect.Value, name string, dst []string) []string {
	for i := 0; i < v.Len(); i++ {
		dst = r.elem.appendOption(v.Index(i), name, dst)
	}
	return dst
}

// ifaceRenderer delegates to the field type's own Arg implementation.
type ifaceRenderer struct{}

func (ifaceRenderer) appendArg(v reflect.Value, dst []string) []string {
	return v.Interface().(Arg).AppendArg(dst)
}

func (ifaceRenderer) appendOption(v reflect.Value, name string, dst []string) []string {
	return appendArgOption(dst, name, v.Interface().(Arg))
}

// addrRenderer serves types whose Arg methods live on the pointer receiver.
// Field values reached through a non-pointer instance are not addressable, so
// the value is copied into a fresh allocation before the method call.
type addrRenderer struct{}

func (addrRenderer) arg(v reflect.Value) Arg {
	if v.CanAddr() {
		return v.Addr().Interface().(Arg)
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Interface().(Arg)
}

func (r addrRenderer) appendArg(v reflect.Value, dst []string) []string {
	return r.arg(v).AppendArg(dst)
}

func (r addrRenderer) appendOption(v reflect.Value, name string, dst []string) []string {
	return appendArgOption(dst, name, r.arg(v))
}

func formatInt(v reflect.Value) string {
	return strconv.FormatInt(v.Int(), 10)
}

func formatUint(v reflect.Value) string {
	return strconv.FormatUint(v.Uint(), 10)
}

func formatFloat(bits int) func(reflect.Value) string {
	return func(v reflect.Value) string {
		return strconv.FormatFloat(v.Float(), 'g', -1, bits)
	}
}
