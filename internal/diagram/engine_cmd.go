package diagram

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner abstracts subprocess execution so tests run without a real
// PlantUML installation.
type CommandRunner interface {
	Run(stdin string, name string, args ...string) (stdout []byte, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(stdin string, name string, args ...string) ([]byte, string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.String(), err
}

// DefaultEngineCommand is the executable invoked when none is configured.
const DefaultEngineCommand = "plantuml"

// CommandEngine generates diagrams by piping wrapped source through a
// local PlantUML executable in PNG mode.
type CommandEngine struct {
	Runner  CommandRunner
	Command string
}

// Compile-time interface check.
var _ Engine = (*CommandEngine)(nil)

// NewCommandEngine creates a CommandEngine invoking the given executable,
// defaulting to DefaultEngineCommand when empty.
func NewCommandEngine(command string) *CommandEngine {
	if command == "" {
		command = DefaultEngineCommand
	}
	return &CommandEngine{Runner: ExecRunner{}, Command: command}
}

// Generate pipes the wrapped source through the engine executable.
// Stderr is informational on success and rides along in the error on
// failure. PlantUML exits nonzero on malformed input.
func (e *CommandEngine) Generate(wrapped string) ([]byte, string, error) {
	stdout, stderr, err := e.Runner.Run(wrapped, e.Command, "-pipe", "-tpng")
	if err != nil {
		return nil, "", fmt.Errorf("running %s: %s: %w", e.Command, firstLine(stderr), err)
	}

	desc := strings.TrimSpace(stderr)
	if desc == "" {
		desc = fallbackDescription
	}
	return stdout, desc, nil
}
