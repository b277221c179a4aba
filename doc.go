// Package cmdspec turns annotated record types into runnable external-process
// invocations: a struct declares, once, how each of its fields maps onto the
// argument vector, and Build walks an instance in field declaration order to
// produce the executable name and the ordered argv tokens.
//
// Roles are declared with the closed `arg` struct tag grammar:
//
//	type Mongodump struct {
//		DB   string   `arg:"option=--db"`  // emits "--db", <value>
//		Gzip bool     `arg:"flag=--gzip"`  // emits "--gzip" when true
//		Out  string   `arg:""`             // bare positional token
//		Note string   // no tag: carries no command-line representation
//	}
//
//	spec := cmdspec.MustCompile(Mongodump{}, cmdspec.Executable("mongodump"))
//	program, args := spec.Build(Mongodump{DB: "edge", Gzip: true, Out: "/tmp/d"})
//
// All validation happens in Compile; Build is a pure function of the
// instance's field values and never fails. Pointer fields model optional
// values (nil renders zero tokens and suppresses the option name), slice
// fields render per element with the option name repeated, and any field type
// may take over its own rendering by implementing Arg. A rune field renders
// as its integer value; wrap it in a named Arg type for character semantics.
package cmdspec
