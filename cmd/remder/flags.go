package main

import (
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	config     string
	cacheDir   string
	style      string
	engineURL  string
	engineCmd  string
	browser    string
	timeout    time.Duration
	maxRenders int
	open       bool
	verbose    bool
	version    bool
	help       bool
}

// parseFlags parses args (including the program name) and returns the
// flags and remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("remder", flag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {} // help text is printed by run

	fs.StringVarP(&flags.config, "config", "c", "", "config name or file path")
	fs.StringVar(&flags.cacheDir, "cache-dir", "", "diagram and page cache directory")
	fs.StringVar(&flags.style, "style", "", "embedded page style name")
	fs.StringVar(&flags.engineURL, "engine-url", "", "diagram server base URL (overrides --engine-cmd)")
	fs.StringVar(&flags.engineCmd, "engine-cmd", "", "diagram engine executable")
	fs.StringVar(&flags.browser, "browser", "", "open command tried before the default chain")
	fs.DurationVar(&flags.timeout, "timeout", 0, "per-diagram render budget (e.g. 3s)")
	fs.IntVar(&flags.maxRenders, "max-renders", 0, "cap on concurrent diagram renders")
	fs.BoolVarP(&flags.open, "open", "o", false, "write the page to the cache and open it in a browser")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "print diagnostic detail to stderr")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")
	fs.BoolVarP(&flags.help, "help", "h", false, "print usage and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return flags, fs.Args(), nil
}
