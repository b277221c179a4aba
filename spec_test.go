package cmdspec

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/danmuck/cmdspec/internal/testutil/testlog"
)

func TestPositionalString(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:""`
	}
	spec := MustCompile(rec{}, Executable("test"))
	program, args := spec.Build(rec{A: "a"})
	if program != "test" {
		t.Fatalf("unexpected program: %q", program)
	}
	if !reflect.DeepEqual(args, []string{"a"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestPositionalInt(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A int `arg:""`
	}
	spec := MustCompile(rec{}, Executable("test"))
	_, args := spec.Build(rec{A: 3})
	if !reflect.DeepEqual(args, []string{"3"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestOptionString(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:"option=--input"`
	}
	spec := MustCompile(rec{}, Executable("test"))
	program, args := spec.Build(rec{A: "value"})
	if program != "test" {
		t.Fatalf("unexpected program: %q", program)
	}
	if !reflect.DeepEqual(args, []string{"--input", "value"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestOptionalOptionOmitted(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A *int `arg:"option=--input"`
	}
	spec := MustCompile(rec{}, Executable("test"))

	n := 0
	_, args := spec.Build(rec{A: &n})
	if !reflect.DeepEqual(args, []string{"--input", "0"}) {
		t.Fatalf("unexpected args with value: %#v", args)
	}

	// Absent optional: no value token and no name token either.
	_, args = spec.Build(rec{})
	if len(args) != 0 {
		t.Fatalf("expected no args, got %#v", args)
	}
}

func TestFlagEmission(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A bool `arg:"flag=-a"`
	}
	spec := MustCompile(rec{}, Executable("test"))
	_, args := spec.Build(rec{A: true})
	if !reflect.DeepEqual(args, []string{"-a"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
	_, args = spec.Build(rec{A: false})
	if len(args) != 0 {
		t.Fatalf("expected no args, got %#v", args)
	}
}

func TestOptionSliceRepeatsName(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A []string `arg:"option=--input"`
	}
	spec := MustCompile(rec{}, Executable("test"))
	_, args := spec.Build(rec{A: []string{"v1", "v2"}})
	want := []string{"--input", "v1", "--input", "v2"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("unexpected args: %#v", args)
	}

	_, args = spec.Build(rec{})
	if len(args) != 0 {
		t.Fatalf("expected no args for empty slice, got %#v", args)
	}
}

func TestEmissionOrderFollowsDeclaration(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		Verbose bool   `arg:"flag=-v"`
		Input   string `arg:"option=-i"`
		Target  string `arg:""`
		Gzip    bool   `arg:"flag=-z"`
	}
	spec := MustCompile(rec{}, Executable("test"))
	_, args := spec.Build(rec{Verbose: true, Input: "in.txt", Target: "out", Gzip: true})
	want := []string{"-v", "-i", "in.txt", "out", "-z"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestUntaggedFieldCarriesNoTokens(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		Keep string
		A    string `arg:""`
	}
	spec := MustCompile(rec{}, Executable("test"))
	_, args := spec.Build(rec{Keep: "ignored", A: "a"})
	if !reflect.DeepEqual(args, []string{"a"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestConflictingRoles(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:"option=-i,flag=-f"`
	}
	_, err := Compile(rec{}, Executable("test"))
	if !errors.Is(err, ErrConflictingRoles) {
		t.Fatalf("expected ErrConflictingRoles, got %v", err)
	}
	var defErr *DefinitionError
	if !errors.As(err, &defErr) {
		t.Fatalf("expected *DefinitionError, got %T", err)
	}
	if defErr.Field != "A" {
		t.Fatalf("expected field A, got %q", defErr.Field)
	}
}

func TestMissingExecutable(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:""`
	}
	_, err := Compile(rec{})
	if !errors.Is(err, ErrMissingExecutable) {
		t.Fatalf("expected ErrMissingExecutable, got %v", err)
	}
}

func TestConflictingExecutable(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:""`
	}
	_, err := Compile(rec{}, Executable("test"), ExecutableFunc(func(rec) string { return "test" }))
	if !errors.Is(err, ErrConflictingExecutable) {
		t.Fatalf("expected ErrConflictingExecutable, got %v", err)
	}
}

func TestComputedExecutable(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		Suffix string
	}
	spec := MustCompile(rec{}, ExecutableFunc(func(r rec) string {
		return "test-" + r.Suffix
	}))
	program, args := spec.Build(rec{Suffix: "abc"})
	if program != "test-abc" {
		t.Fatalf("unexpected program: %q", program)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %#v", args)
	}
}

func TestComputedExecutablePointerFunc(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		IPv6 bool
		Host string `arg:""`
	}
	spec := MustCompile(rec{}, ExecutableFunc(func(r *rec) string {
		if r.IPv6 {
			return "ping6"
		}
		return "ping"
	}))
	program, _ := spec.Build(rec{IPv6: true, Host: "edge-1"})
	if program != "ping6" {
		t.Fatalf("unexpected program: %q", program)
	}
	program, _ = spec.Build(&rec{Host: "edge-1"})
	if program != "ping" {
		t.Fatalf("unexpected program: %q", program)
	}
}

func TestExecutableFuncShapeChecked(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:""`
	}
	_, err := Compile(rec{}, ExecutableFunc(func(s string) string { return s }))
	if !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("expected ErrUnsupportedAttribute, got %v", err)
	}
	_, err = Compile(rec{}, ExecutableFunc("not a func"))
	if !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("expected ErrUnsupportedAttribute, got %v", err)
	}
}

func TestUnsupportedAttribute(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:"opt=-i"`
	}
	_, err := Compile(rec{}, Executable("test"))
	if !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("expected ErrUnsupportedAttribute, got %v", err)
	}
}

func TestUnsupportedRecordShape(t *testing.T) {
	testlog.Start(t)
	_, err := Compile(42, Executable("test"))
	if !errors.Is(err, ErrUnsupportedFieldShape) {
		t.Fatalf("expected ErrUnsupportedFieldShape, got %v", err)
	}
	_, err = Compile(nil, Executable("test"))
	if !errors.Is(err, ErrUnsupportedFieldShape) {
		t.Fatalf("expected ErrUnsupportedFieldShape, got %v", err)
	}
}

func TestTaggedUnexportedField(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		a string `arg:""`
	}
	_ = rec{a: ""}
	_, err := Compile(rec{}, Executable("test"))
	if !errors.Is(err, ErrUnsupportedFieldShape) {
		t.Fatalf("expected ErrUnsupportedFieldShape, got %v", err)
	}
}

func TestFlagMustBeBool(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:"flag=-a"`
	}
	_, err := Compile(rec{}, Executable("test"))
	if !errors.Is(err, ErrUnsupportedArgType) {
		t.Fatalf("expected ErrUnsupportedArgType, got %v", err)
	}
}

func TestBareBoolRejected(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A bool `arg:""`
	}
	_, err := Compile(rec{}, Executable("test"))
	if !errors.Is(err, ErrUnsupportedArgType) {
		t.Fatalf("expected ErrUnsupportedArgType, got %v", err)
	}
}

func TestBuildWrongTypePanics(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:""`
	}
	type other struct {
		A string `arg:""`
	}
	spec := MustCompile(rec{}, Executable("test"))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for wrong instance type")
		}
	}()
	spec.Build(other{A: "a"})
}

func TestBuildDoesNotMutateInstance(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A []string `arg:"option=--input"`
		B string   `arg:""`
	}
	spec := MustCompile(rec{}, Executable("test"))
	in := rec{A: []string{"v1"}, B: "b"}
	_, args := spec.Build(&in)
	args[0] = "clobbered"
	if in.A[0] != "v1" || in.B != "b" {
		t.Fatalf("instance mutated: %#v", in)
	}
	_, again := spec.Build(&in)
	if !reflect.DeepEqual(again, []string{"--input", "v1", "b"}) {
		t.Fatalf("unexpected args on rebuild: %#v", again)
	}
}

type selfNamed struct {
	Suffix string
	Path   string `arg:""`
}

func (s selfNamed) Executable() string {
	return "tool-" + s.Suffix
}

func TestForMemoizesPerType(t *testing.T) {
	testlog.Start(t)
	a, err := For(selfNamed{})
	if err != nil {
		t.Fatalf("for: %v", err)
	}
	b, err := For(selfNamed{Suffix: "other"})
	if err != nil {
		t.Fatalf("for: %v", err)
	}
	if a != b {
		t.Fatalf("expected memoized spec, got distinct instances")
	}
	program, args := a.Build(selfNamed{Suffix: "x", Path: "/tmp"})
	if program != "tool-x" {
		t.Fatalf("unexpected program: %q", program)
	}
	if !reflect.DeepEqual(args, []string{"/tmp"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestCmdAdapters(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:"option=--input"`
	}
	spec := MustCompile(rec{}, Executable("test"))
	cmd := spec.Cmd(rec{A: "value"})
	if len(cmd.Args) != 3 || cmd.Args[1] != "--input" || cmd.Args[2] != "value" {
		t.Fatalf("unexpected cmd args: %#v", cmd.Args)
	}
	if !strings.HasSuffix(cmd.Args[0], "test") {
		t.Fatalf("unexpected argv0: %q", cmd.Args[0])
	}
}

func TestDefinitionErrorMessage(t *testing.T) {
	testlog.Start(t)
	type rec struct {
		A string `arg:"flag=-a"`
	}
	_, err := Compile(rec{}, Executable("test"))
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "field=A") || !strings.Contains(msg, "record=") {
		t.Fatalf("unexpected error message: %q", msg)
	}
}
