package cmdspec

import (
	"context"
	"os/exec"
)

// Cmd materializes the built invocation as an *exec.Cmd, ready for the
// caller to start. Tokens pass through without shell interpretation; path
// lookup, streams and process lifecycle stay with os/exec.
func (s *Spec) Cmd(v any) *exec.Cmd {
	program, args := s.Build(v)
	return exec.Command(program, args...)
}

// CmdContext is Cmd with a context bounding the process lifetime.
func (s *Spec) CmdContext(ctx context.Context, v any) *exec.Cmd {
	program, args := s.Build(v)
	return exec.CommandContext(ctx, program, args...)
}
