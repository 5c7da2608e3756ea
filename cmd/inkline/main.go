// Package main is a small interactive demo of the inkline engine:
// type into an edit buffer and watch the incremental renderer repaint
// only what changed.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/inkline/internal/app"
	"github.com/dshills/inkline/internal/config"
	"github.com/dshills/inkline/internal/editbuf"
	"github.com/dshills/inkline/internal/render"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath, logLevel := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger := app.NullLogger
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = app.NewLogger(app.ParseLogLevel(cfg.Logging.Level), f)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: stdin is not a terminal")
		return 1
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: entering raw mode: %v\n", err)
		return 1
	}
	defer term.Restore(fd, oldState)

	width, height, err := term.GetSize(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading terminal size: %v\n", err)
		return 1
	}
	if height > 8 {
		height = 8
	}

	session, err := app.NewSession(render.NewTermSink(os.Stdout), width, height, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGWINCH)

	input := make(chan byte, 64)
	go readInput(os.Stdin, input)

	logger.Info("session started %dx%d", width, height)

	for {
		if _, err := session.Render(); err != nil {
			logger.Error("render: %v", err)
			session.ForceRedraw()
		}

		select {
		case sig := <-signals:
			if sig == syscall.SIGWINCH {
				if w, h, err := term.GetSize(fd); err == nil {
					if h > 8 {
						h = 8
					}
					session.Resize(w, h)
				}
				continue
			}
			fmt.Print("\r\n")
			return 0
		case b, ok := <-input:
			if !ok {
				return 0
			}
			if quit := handleKey(session, b, input); quit {
				fmt.Print("\r\n")
				return 0
			}
		}
	}
}

// handleKey applies one key to the buffer. Returns true on quit.
func handleKey(session *app.Session, b byte, input <-chan byte) bool {
	buf := session.Buffer()
	switch b {
	case 0x03, 0x04: // Ctrl-C, Ctrl-D
		return true
	case 0x1a: // Ctrl-Z
		buf.MoveInHistory(false)
	case 0x19: // Ctrl-Y
		buf.MoveInHistory(true)
	case 0x7f, 0x08: // Backspace
		if cursor := buf.Cursor(); cursor > 0 {
			buf.SetCursor(cursor - 1)
			buf.SpliceAtCursor(nil, 1)
		}
	case '\r':
		buf.SpliceAtCursor([]byte("\n"), 0)
	case 0x1b:
		handleEscape(buf, input)
	default:
		buf.SpliceAtCursor([]byte{b}, 0)
	}
	return false
}

// handleEscape consumes a CSI arrow sequence and moves the cursor.
func handleEscape(buf *editbuf.Buffer, input <-chan byte) {
	if b, ok := <-input; !ok || b != '[' {
		return
	}
	b, ok := <-input
	if !ok {
		return
	}
	switch b {
	case 'C':
		buf.SetCursor(buf.Cursor() + 1)
	case 'D':
		buf.SetCursor(buf.Cursor() - 1)
	}
}

func readInput(r io.Reader, out chan<- byte) {
	defer close(out)
	one := make([]byte, 1)
	for {
		n, err := r.Read(one)
		if n == 1 {
			out <- one[0]
		}
		if err != nil {
			return
		}
	}
}

func parseFlags() (configPath, logLevel string) {
	var showVersion bool

	flag.StringVar(&configPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&configPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Inkline - incremental terminal text engine demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkline [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: type to edit, Enter for newline, Backspace to delete,\n")
		fmt.Fprintf(os.Stderr, "arrows to move, Ctrl-Z/Ctrl-Y undo/redo, Ctrl-C to quit.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Inkline %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	switch logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", logLevel)
		os.Exit(1)
	}

	return configPath, logLevel
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "inkline.toml"
	}
	return filepath.Join(dir, "inkline", "inkline.toml")
}
