// Package launcher opens rendered pages through an ordered chain of
// external open strategies, first success wins.
package launcher

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/pkg/browser"
)

// ErrAllLaunchersFailed is the terminal failure: every strategy in the
// chain failed to open the page.
var ErrAllLaunchersFailed = errors.New("no launcher could open the page")

// Strategy is one way of handing a file to an external application.
// Strategies share no state; each attempt stands alone.
type Strategy interface {
	Name() string
	Open(path string) error
}

// BrowserStrategy asks the operating environment to open the file with
// its associated application.
type BrowserStrategy struct{}

// Name implements Strategy.
func (BrowserStrategy) Name() string { return "default application" }

// Open implements Strategy.
func (BrowserStrategy) Open(path string) error {
	return browser.OpenFile(path)
}

// CommandStrategy runs an external open command as a subprocess. Exit
// code zero is success; any other exit is a failure carrying the code.
type CommandStrategy struct {
	Command string
}

// Name implements Strategy.
func (s CommandStrategy) Name() string { return s.Command }

// Open implements Strategy.
func (s CommandStrategy) Open(path string) error {
	if err := exec.Command(s.Command, path).Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with code %d", s.Command, exitErr.ExitCode())
		}
		return fmt.Errorf("running %s: %w", s.Command, err)
	}
	return nil
}

// DefaultStrategies is the production chain: OS default open first, then
// a generic open command.
func DefaultStrategies() []Strategy {
	return []Strategy{
		BrowserStrategy{},
		CommandStrategy{Command: openCommand()},
	}
}

// openCommand returns the platform's generic open executable.
func openCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Launcher tries each strategy in order, stopping at the first success.
// Best-effort: Launch never returns an error. On total failure the user
// sees a single notice on Stderr; each collected cause goes to Diag.
type Launcher struct {
	strategies []Strategy
	stderr     io.Writer
	diag       io.Writer
}

// New creates a Launcher. Nil strategies select the default chain; nil
// writers discard their stream.
func New(strategies []Strategy, stderr, diag io.Writer) *Launcher {
	if strategies == nil {
		strategies = DefaultStrategies()
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if diag == nil {
		diag = io.Discard
	}
	return &Launcher{strategies: strategies, stderr: stderr, diag: diag}
}

// Launch opens path with the first strategy that succeeds.
func (l *Launcher) Launch(path string) {
	var failures []error
	for _, s := range l.strategies {
		err := s.Open(path)
		if err == nil {
			return
		}
		failures = append(failures, fmt.Errorf("%s: %w", s.Name(), err))
	}

	fmt.Fprintf(l.stderr, "%v: %s\n", ErrAllLaunchersFailed, path)
	for _, f := range failures {
		fmt.Fprintf(l.diag, "launcher: %v\n", f)
	}
}
