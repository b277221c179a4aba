package cmdspec

import (
	"fmt"
	"strings"
)

type role int

const (
	roleNone role = iota
	rolePositional
	roleOption
	roleFlag
)

// tagName is the struct tag carrying the argument grammar.
const tagName = "arg"

// parseArgTag parses the closed role grammar of the `arg` tag:
//
//	arg:""             bare positional
//	arg:"option=NAME"  named option
//	arg:"flag=NAME"    boolean flag
//
// Absent tags never reach here; they mean the field carries no role. At most
// one role key may appear, and nothing outside the grammar is accepted.
func parseArgTag(tag string) (role, string, error) {
	if strings.TrimSpace(tag) == "" {
		return rolePositional, "", nil
	}

	r := roleNone
	name := ""
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		switch key {
		case "option":
			if r != roleNone {
				return roleNone, "", fmt.Errorf("%w: %q declares a second role", ErrConflictingRoles, part)
			}
			if !hasValue {
				return roleNone, "", fmt.Errorf("%w: option requires a name value", ErrUnsupportedAttribute)
			}
			r, name = roleOption, value
		case "flag":
			if r != roleNone {
				return roleNone, "", fmt.Errorf("%w: %q declares a second role", ErrConflictingRoles, part)
			}
			if !hasValue {
				return roleNone, "", fmt.Errorf("%w: flag requires a name value", ErrUnsupportedAttribute)
			}
			r, name = roleFlag, value
		default:
			return roleNone, "", fmt.Errorf("%w: sub-key %q", ErrUnsupportedAttribute, key)
		}
	}
	if r == roleNone {
		// Only separators, e.g. arg:",". Treat like the bare marker.
		return rolePositional, "", nil
	}
	return r, name, nil
}
