package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	remder "github.com/alnah/go-remder"
	"github.com/alnah/go-remder/internal/diagram"
	"github.com/alnah/go-remder/internal/launcher"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInputFile  = errors.New("no input file given")
	ErrReadDocument = errors.New("failed to read input document")
)

// stdoutPresenter implements the embedded-viewer contract by writing the
// page to standard output.
type stdoutPresenter struct {
	w io.Writer
}

// Compile-time interface check.
var _ remder.Presenter = stdoutPresenter{}

func (p stdoutPresenter) Present(html string) {
	fmt.Fprintln(p.w, html)
}

// run executes the CLI: parse flags, load config, render the document,
// and present it or hand it to a browser.
func run(args []string, env *Environment) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if flags.help {
		printHelp(env.Stdout)
		return nil
	}
	if flags.version {
		fmt.Fprintln(env.Stdout, "remder "+Version)
		return nil
	}

	cfg := DefaultConfig()
	if flags.config != "" {
		cfg, err = LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
	}

	if len(positional) != 1 {
		return fmt.Errorf("%w: usage: remder [flags] <document.md>", ErrNoInputFile)
	}

	content, err := os.ReadFile(positional[0]) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadDocument, err)
	}

	svc, err := remder.New(serviceOptions(flags, cfg, env)...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if flags.open {
		path, err := svc.RenderToBrowser(ctx, string(content))
		if err != nil {
			return err
		}
		if flags.verbose {
			fmt.Fprintf(env.Stderr, "page cached at %s\n", path)
		}
		return nil
	}

	html, err := svc.RenderPage(ctx, string(content))
	if err != nil {
		return err
	}
	stdoutPresenter{w: env.Stdout}.Present(html)
	return nil
}

// serviceOptions merges flags and config into service options.
// Flags take priority over the config file.
func serviceOptions(flags *cliFlags, cfg *Config, env *Environment) []remder.Option {
	var opts []remder.Option

	if dir := firstOf(flags.cacheDir, cfg.Cache.Dir); dir != "" {
		opts = append(opts, remder.WithCacheDir(dir))
	}
	if style := firstOf(flags.style, cfg.Style.Name); style != "" {
		opts = append(opts, remder.WithStyle(style))
	}

	timeout := flags.timeout
	if timeout == 0 && cfg.Render.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Render.TimeoutSeconds) * time.Second
	}
	if timeout > 0 {
		opts = append(opts, remder.WithTimeout(timeout))
	}

	maxRenders := flags.maxRenders
	if maxRenders == 0 {
		maxRenders = cfg.Render.MaxRenders
	}
	if maxRenders > 0 {
		opts = append(opts, remder.WithMaxRenders(maxRenders))
	}

	if url := firstOf(flags.engineURL, cfg.Engine.ServerURL); url != "" {
		opts = append(opts, remder.WithEngine(diagram.NewHTTPEngine(url)))
	} else if cmd := firstOf(flags.engineCmd, cfg.Engine.Command); cmd != "" {
		opts = append(opts, remder.WithEngine(diagram.NewCommandEngine(cmd)))
	}

	diag := io.Discard
	if flags.verbose {
		diag = env.Stderr
	}
	opts = append(opts, remder.WithDiagnostics(env.Stderr, diag))

	// A configured browser command goes to the front of the launcher chain;
	// the default strategies stay behind it as fallbacks.
	if cmd := firstOf(flags.browser, cfg.Browser.Command); cmd != "" {
		chain := append(
			[]launcher.Strategy{launcher.CommandStrategy{Command: cmd}},
			launcher.DefaultStrategies()...,
		)
		opts = append(opts, remder.WithLauncher(launcher.New(chain, env.Stderr, diag)))
	}

	return opts
}

// firstOf returns the first non-empty string.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// printHelp writes usage information.
func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: remder [flags] <document.md>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a Markdown document with embedded diagram blocks to a styled")
	fmt.Fprintln(w, "HTML page. By default the page is written to standard output; with")
	fmt.Fprintln(w, "--open it is written to the cache directory and opened in a browser.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagram dialects: plantuml, ditaa, dot, salt, gantt, mindmap")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config string       config name or file path")
	fmt.Fprintln(w, "      --cache-dir string    diagram and page cache directory")
	fmt.Fprintln(w, "      --style string        embedded page style name")
	fmt.Fprintln(w, "      --engine-url string   diagram server base URL")
	fmt.Fprintln(w, "      --engine-cmd string   diagram engine executable (default plantuml)")
	fmt.Fprintln(w, "      --browser string      open command tried before the default chain")
	fmt.Fprintln(w, "      --timeout duration    per-diagram render budget (default 3s)")
	fmt.Fprintln(w, "      --max-renders int     cap on concurrent diagram renders (default 4)")
	fmt.Fprintln(w, "  -o, --open                open the rendered page in a browser")
	fmt.Fprintln(w, "  -v, --verbose             print diagnostic detail to stderr")
	fmt.Fprintln(w, "      --version             print version and exit")
	fmt.Fprintln(w, "  -h, --help                print usage and exit")
}
