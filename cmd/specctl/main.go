package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/danmuck/cmdspec/catalog"
	_ "github.com/danmuck/cmdspec/internal/builtin"
	"github.com/danmuck/cmdspec/internal/logging"
	"github.com/danmuck/cmdspec/runner"
)

type options struct {
	mode    string
	tool    string
	payload string
}

func main() {
	opts := parseFlags()
	logging.ConfigureRuntime()

	switch opts.mode {
	case "list":
		runList()
	case "build":
		if err := runBuild(opts); err != nil {
			fatalf("%v", err)
		}
	case "run":
		code, err := runTool(opts)
		if err != nil {
			fatalf("%v", err)
		}
		os.Exit(code)
	default:
		fatalf("unknown mode %q (supported: list, build, run)", opts.mode)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.mode, "mode", "list", "mode: list | build | run")
	flag.StringVar(&opts.tool, "tool", "", "tool name from the catalog")
	flag.StringVar(&opts.payload, "json", "", "tool payload as JSON; - reads stdin")
	flag.Parse()
	return opts
}

func runList() {
	entries := catalog.All()
	for _, name := range catalog.Names() {
		fmt.Printf("%-12s %s\n", name, entries[name].Description)
	}
}

func runBuild(opts options) error {
	program, args, err := buildInvocation(opts)
	if err != nil {
		return err
	}
	fmt.Println(program)
	for _, arg := range args {
		fmt.Println("  " + arg)
	}
	return nil
}

func runTool(opts options) (int, error) {
	program, args, err := buildInvocation(opts)
	if err != nil {
		return 0, err
	}

	r := runner.ExecRunner{}
	if err := r.RunStreaming(program, args, os.Stdout, os.Stderr); err != nil {
		// A non-zero tool exit becomes our own exit code; anything else is
		// a spawn failure worth reporting.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, err
	}
	return 0, nil
}

func buildInvocation(opts options) (string, []string, error) {
	if opts.tool == "" {
		return "", nil, fmt.Errorf("missing -tool (use -mode list to see the catalog)")
	}
	entry, ok := catalog.Get(opts.tool)
	if !ok {
		return "", nil, fmt.Errorf("unknown tool %q (known: %s)", opts.tool, strings.Join(catalog.Names(), ", "))
	}

	inst := entry.New()
	if err := decodePayload(opts.payload, inst); err != nil {
		return "", nil, err
	}

	program, args := entry.Spec.Build(inst)
	return program, args, nil
}

func decodePayload(payload string, inst any) error {
	if payload == "" {
		return nil
	}

	data := []byte(payload)
	if payload == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		data = raw
	}

	if err := json.Unmarshal(data, inst); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "specctl: "+format+"\n", args...)
	os.Exit(1)
}
