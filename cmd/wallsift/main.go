// Package main is the entry point for wallsift, a streaming terminal
// multiplexer for log-like text: each pattern given on the command line
// gets its own screen region, and input lines matching it are shown there.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wallsift/wallsift/internal/app"
	"github.com/wallsift/wallsift/internal/config"
	"github.com/wallsift/wallsift/internal/logger"
	"github.com/wallsift/wallsift/internal/source"
	"github.com/wallsift/wallsift/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, showVersion, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if showVersion {
		fmt.Printf("wallsift %s (%s, built %s)\n", version, commit, date)
		return 0
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		return 1
	}
	if !term.IsTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal")
		return 1
	}

	if cfg.Debug {
		cfg.LogLevel = "debug"
		if cfg.LogFile == "" {
			cfg.LogFile = "wallsift.log"
		}
	}
	log, logCloser, err := logger.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	src, err := openSource(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	tty := term.NewTTY(os.Stdout)
	tty.HideCursor()
	defer func() {
		tty.ShowCursor()
		tty.Park()
	}()

	application := app.New(*cfg, log)
	application.SetSource(src)
	application.SetSurface(tty)
	defer application.Shutdown()

	// Ctrl-C or SIGTERM close the source; the dispatch loop finishes the
	// line in flight and returns.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openSource picks the input per the config: a spawned command, a followed
// file, a plain file, or stdin.
func openSource(cfg *config.Config) (source.Source, error) {
	switch {
	case cfg.Command != "":
		return source.NewCommand(cfg.Command)
	case cfg.File != "" && cfg.Follow:
		return source.NewFollow(cfg.File)
	case cfg.File != "":
		f, err := os.Open(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("unable to open %s: %w", cfg.File, err)
		}
		return source.NewReader(f), nil
	default:
		return source.NewReader(os.Stdin), nil
	}
}

// parseFlags resolves the configuration with the precedence defaults <
// config file < flags. Only flags the user actually set override the file.
func parseFlags() (*config.Config, bool, error) {
	var fl struct {
		file, cmd, configPath, logFile, logLevel string
		follow, restart, clear, debug            bool
		history                                  int
		version, help                            bool
	}

	flag.StringVar(&fl.file, "file", "", "Read input from a file instead of stdin")
	flag.StringVar(&fl.file, "f", "", "Read input from a file (shorthand)")
	flag.BoolVar(&fl.follow, "follow", false, "With -file: keep reading as the file grows")
	flag.BoolVar(&fl.follow, "F", false, "Keep reading as the file grows (shorthand)")
	flag.StringVar(&fl.cmd, "cmd", "", "Run a command under a pty and use its output as input")
	flag.BoolVar(&fl.restart, "restart-on-find", false, "Restart a space each time its pattern is found again, without waiting for the region to fill")
	flag.BoolVar(&fl.restart, "r", false, "Restart a space on every match (shorthand)")
	flag.BoolVar(&fl.clear, "clear-on-restart", false, "Blank a space's region when it restarts")
	flag.IntVar(&fl.history, "history", 0, "Recent lines replayed into a space when it activates")
	flag.IntVar(&fl.history, "n", 0, "Recent lines replayed on activation (shorthand)")
	flag.StringVar(&fl.configPath, "config", "", "Path to TOML configuration file")
	flag.BoolVar(&fl.debug, "debug", false, "Enable debug logging")
	flag.StringVar(&fl.logFile, "log-file", "", "Log file path")
	flag.StringVar(&fl.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&fl.version, "version", false, "Show version information")
	flag.BoolVar(&fl.version, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&fl.help, "help", false, "Show help message")
	flag.BoolVar(&fl.help, "h", false, "Show help message (shorthand)")

	flag.Usage = usage
	flag.Parse()

	if fl.help {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.Default()

	configPath := fl.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	if configPath != "" {
		if err := config.LoadFile(&cfg, configPath); err != nil {
			return nil, false, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file", "f":
			cfg.File = fl.file
		case "follow", "F":
			cfg.Follow = fl.follow
		case "cmd":
			cfg.Command = fl.cmd
		case "restart-on-find", "r":
			cfg.RestartOnFind = fl.restart
		case "clear-on-restart":
			cfg.ClearOnRestart = fl.clear
		case "history", "n":
			cfg.HistoryLines = fl.history
		case "debug":
			cfg.Debug = fl.debug
		case "log-file":
			cfg.LogFile = fl.logFile
		case "log-level":
			cfg.LogLevel = fl.logLevel
		}
	})

	cfg.Patterns = flag.Args()
	return &cfg, fl.version, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "wallsift - human-friendly wall-of-text handler\n\n")
	fmt.Fprintf(os.Stderr, "Usage: wallsift [options] REGEX [REGEX...]\n\n")
	fmt.Fprintf(os.Stderr, "Each REGEX is given its own screen region. When a line matches, it and\n")
	fmt.Fprintf(os.Stderr, "the lines after it are shown in that region until the region fills.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  tail -f app.log | wallsift ERROR WARN\n")
	fmt.Fprintf(os.Stderr, "  wallsift -f app.log -F -n 5 'panic|fatal'\n")
	fmt.Fprintf(os.Stderr, "  wallsift -cmd 'make test' -r FAIL PASS\n")
}
