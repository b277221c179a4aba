package cmdspec

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"
)

// Spec is the compiled declaration of a command record: the executable
// identity plus the per-field emission roles, in field declaration order.
// Compile validates everything once; a Spec is immutable afterwards and safe
// for concurrent use from any number of goroutines.
type Spec struct {
	typ       reflect.Type
	exe       string
	exeFn     reflect.Value // func(T) string or func(*T) string; invalid when unused
	exePtr    bool          // exeFn takes *T
	exeMethod bool          // resolve through the Command interface
	fields    []fieldSpec
}

type fieldSpec struct {
	name   string
	index  int
	role   role
	token  string   // option or flag name
	render renderer // nil for flags
}

// Command is implemented by record types that declare their own executable,
// letting For compile and memoize a Spec without explicit compile options.
// The method is consulted on every Build, so it may depend on field values.
type Command interface {
	Executable() string
}

var cmdIface = reflect.TypeOf((*Command)(nil)).Elem()

// Option configures Compile.
type Option func(*compileConfig)

type compileConfig struct {
	exe       string
	exeSet    bool
	exeFn     any
	exeMethod bool
}

// Executable declares a fixed executable name or path, resolved verbatim.
func Executable(name string) Option {
	return func(c *compileConfig) {
		c.exe = name
		c.exeSet = true
	}
}

// ExecutableFunc declares the executable as a function of the record
// instance, invoked fresh on every Build. fn must be func(T) string or
// func(*T) string for the compiled record type T.
func ExecutableFunc(fn any) Option {
	return func(c *compileConfig) {
		c.exeFn = fn
	}
}

func executableMethod() Option {
	return func(c *compileConfig) {
		c.exeMethod = true
	}
}

// Compile validates the record declaration for prototype and produces its
// Spec. prototype may be T or *T; only the type is consulted. Every
// definition error surfaces here as a *DefinitionError; Build never
// re-validates.
func Compile(prototype any, opts ...Option) (*Spec, error) {
	t := reflect.TypeOf(prototype)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		record := "<nil>"
		if t != nil {
			record = t.String()
		}
		return nil, &DefinitionError{
			Record: record,
			Err:    fmt.Errorf("%w: command records must be structs with named fields", ErrUnsupportedFieldShape),
		}
	}
	record := t.String()

	var cfg compileConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	spec := &Spec{typ: t}
	if err := spec.compileExecutable(cfg, t); err != nil {
		return nil, &DefinitionError{Record: record, Err: err}
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup(tagName)
		if !ok {
			continue
		}
		if f.PkgPath != "" {
			return nil, &DefinitionError{
				Record: record,
				Field:  f.Name,
				Err:    fmt.Errorf("%w: unexported field cannot carry a role", ErrUnsupportedFieldShape),
			}
		}
		r, token, err := parseArgTag(tag)
		if err != nil {
			return nil, &DefinitionError{Record: record, Field: f.Name, Err: err}
		}

		fs := fieldSpec{name: f.Name, index: i, role: r, token: token}
		if r == roleFlag {
			if f.Type.Kind() != reflect.Bool {
				return nil, &DefinitionError{
					Record: record,
					Field:  f.Name,
					Err:    fmt.Errorf("%w: flag field must be bool, have %s", ErrUnsupportedArgType, f.Type),
				}
			}
		} else {
			render, err := rendererFor(f.Type)
			if err != nil {
				return nil, &DefinitionError{Record: record, Field: f.Name, Err: err}
			}
			fs.render = render
		}
		spec.fields = append(spec.fields, fs)
	}

	log.Debug().Str("record", record).Int("args", len(spec.fields)).Msg("cmdspec.Compile")
	return spec, nil
}

func (s *Spec) compileExecutable(cfg compileConfig, t reflect.Type) error {
	declared := 0
	if cfg.exeSet {
		declared++
	}
	if cfg.exeFn != nil {
		declared++
	}
	if cfg.exeMethod {
		declared++
	}
	switch {
	case declared == 0:
		return ErrMissingExecutable
	case declared > 1:
		return ErrConflictingExecutable
	case cfg.exeSet:
		s.exe = cfg.exe
	case cfg.exeMethod:
		if !t.Implements(cmdIface) && !reflect.PointerTo(t).Implements(cmdIface) {
			return fmt.Errorf("%w: type does not implement Command", ErrMissingExecutable)
		}
		s.exeMethod = true
	default:
		fn := reflect.ValueOf(cfg.exeFn)
		ptr, err := checkExecutableFunc(fn.Type(), t)
		if err != nil {
			return err
		}
		s.exeFn = fn
		s.exePtr = ptr
	}
	return nil
}

func checkExecutableFunc(ft reflect.Type, t reflect.Type) (bool, error) {
	bad := func() error {
		return fmt.Errorf("%w: executable func must be func(%s) string or func(*%s) string, have %s",
			ErrUnsupportedAttribute, t, t, ft)
	}
	if ft.Kind() != reflect.Func || ft.NumIn() != 1 || ft.NumOut() != 1 || ft.IsVariadic() {
		return false, bad()
	}
	if ft.Out(0).Kind() != reflect.String {
		return false, bad()
	}
	switch ft.In(0) {
	case t:
		return false, nil
	case reflect.PointerTo(t):
		return true, nil
	}
	return false, bad()
}

// MustCompile is Compile for init-time declarations; it panics on definition
// errors.
func MustCompile(prototype any, opts ...Option) *Spec {
	s, err := Compile(prototype, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

var specCache sync.Map // reflect.Type -> *Spec

// For returns the memoized Spec for v's concrete type. The type declares its
// executable by implementing Command; the first call compiles, later calls
// for the same type share the result.
func For(v Command) (*Spec, error) {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := specCache.Load(t); ok {
		return cached.(*Spec), nil
	}
	s, err := Compile(v, executableMethod())
	if err != nil {
		return nil, err
	}
	cached, _ := specCache.LoadOrStore(t, s)
	return cached.(*Spec), nil
}

// Type reports the record type this Spec was compiled for.
func (s *Spec) Type() reflect.Type {
	return s.typ
}

// Build resolves the executable and assembles the argument vector for one
// record instance, visiting fields in declaration order. It is a pure
// function of the instance's current field values: no I/O, no mutation of
// the instance, no shared state. v must be the compiled record type (or a
// pointer to it); anything else is a caller defect and panics.
func (s *Spec) Build(v any) (program string, args []string) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != s.typ {
		panic(fmt.Sprintf("cmdspec: Build called with %T, spec compiled for %s", v, s.typ))
	}

	program = s.resolveExecutable(rv)
	for i := range s.fields {
		f := &s.fields[i]
		fv := rv.Field(f.index)
		switch f.role {
		case rolePositional:
			args = f.render.appendArg(fv, args)
		case roleOption:
			args = f.render.appendOption(fv, f.token, args)
		case roleFlag:
			if fv.Bool() {
				args = append(args, f.token)
			}
		}
	}
	return program, args
}

// resolveExecutable runs fresh on every Build so a computed executable may
// depend on instance state. Function and method receivers get a private copy
// of the instance, keeping construction free of side effects on the record.
func (s *Spec) resolveExecutable(rv reflect.Value) string {
	switch {
	case s.exeMethod:
		if s.typ.Implements(cmdIface) {
			return rv.Interface().(Command).Executable()
		}
		p := reflect.New(s.typ)
		p.Elem().Set(rv)
		return p.Interface().(Command).Executable()
	case s.exeFn.IsValid():
		arg := rv
		if s.exePtr {
			p := reflect.New(s.typ)
			p.Elem().Set(rv)
			arg = p
		}
		return s.exeFn.Call([]reflect.Value{arg})[0].String()
	}
	return s.exe
}
