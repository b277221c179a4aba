package cmdspec

// Arg renders a value as zero or more command-line tokens. Field types
// implementing Arg take precedence over the built-in renderers, so any type
// used in a command record can supply its own token form.
type Arg interface {
	// AppendArg appends the value's positional tokens to dst.
	AppendArg(dst []string) []string
}

// OptionArg customizes how a value renders under an option name. Types
// implementing only Arg get the default rendering: the option-name token
// followed by the value's positional tokens, with the name omitted entirely
// when the value renders no tokens.
type OptionArg interface {
	Arg
	// AppendOption appends the option-name token and the value's tokens to dst.
	AppendOption(dst []string, name string) []string
}

// appendArgOption applies option rendering for an Arg value, honoring an
// OptionArg override when present.
func appendArgOption(dst []string, name string, v Arg) []string {
	if o, ok := v.(OptionArg); ok {
		return o.AppendOption(dst, name)
	}
	tokens := v.AppendArg(nil)
	if len(tokens) == 0 {
		return dst
	}
	dst = append(dst, name)
	return append(dst, tokens...)
}
