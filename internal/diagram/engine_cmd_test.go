package diagram

import (
	"errors"
	"strings"
	"testing"
)

// stubRunner simulates the engine subprocess.
type stubRunner struct {
	stdin  string
	name   string
	args   []string
	stdout []byte
	stderr string
	err    error
}

func (r *stubRunner) Run(stdin string, name string, args ...string) ([]byte, string, error) {
	r.stdin = stdin
	r.name = name
	r.args = args
	return r.stdout, r.stderr, r.err
}

func TestCommandEngine_Generate(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{stdout: []byte{0x89, 0x50}, stderr: "seq\n"}
	engine := &CommandEngine{Runner: runner, Command: "plantuml"}

	img, desc, err := engine.Generate("@startuml\nA->B\n@enduml\n")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if runner.stdin != "@startuml\nA->B\n@enduml\n" {
		t.Errorf("subprocess stdin = %q, want the wrapped source verbatim", runner.stdin)
	}
	if runner.name != "plantuml" {
		t.Errorf("command = %q, want plantuml", runner.name)
	}
	if got := strings.Join(runner.args, " "); got != "-pipe -tpng" {
		t.Errorf("args = %q, want -pipe -tpng", got)
	}
	if string(img) != string(runner.stdout) {
		t.Errorf("image = %v, want subprocess stdout", img)
	}
	if desc != "seq" {
		t.Errorf("description = %q, want trimmed stderr", desc)
	}
}

func TestCommandEngine_Generate_EmptyStderr(t *testing.T) {
	t.Parallel()

	engine := &CommandEngine{Runner: &stubRunner{stdout: []byte{1}}, Command: "plantuml"}

	_, desc, err := engine.Generate("@startditaa\n@endditaa\n")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if desc != fallbackDescription {
		t.Errorf("description = %q, want %q", desc, fallbackDescription)
	}
}

func TestCommandEngine_Generate_Failure(t *testing.T) {
	t.Parallel()

	runner := &stubRunner{stderr: "Syntax Error?\nat line 1", err: errors.New("exit status 1")}
	engine := &CommandEngine{Runner: runner, Command: "plantuml"}

	_, _, err := engine.Generate("@startuml\nbroken\n@enduml\n")
	if err == nil {
		t.Fatal("Generate succeeded despite subprocess failure")
	}
	if !strings.Contains(err.Error(), "Syntax Error?") {
		t.Errorf("error %q does not carry the first stderr line", err)
	}
}

func TestNewCommandEngine_DefaultCommand(t *testing.T) {
	t.Parallel()

	if got := NewCommandEngine("").Command; got != DefaultEngineCommand {
		t.Errorf("default command = %q, want %q", got, DefaultEngineCommand)
	}
}
