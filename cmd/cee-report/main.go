package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/webcomponents/custom-elements-everywhere/internal/preview"
	"github.com/webcomponents/custom-elements-everywhere/internal/scorecard"
)

const (
	exitOK    = 0
	exitError = 2
)

type libraryList []string

func (s *libraryList) String() string { return strings.Join(*s, ",") }
func (s *libraryList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run parses args (args[0] is the program name) and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)

	var libraries libraryList
	var root string
	var librariesPath string
	var templatePath string
	var outHTML string
	var outJSON string
	var checksumsPath string
	var runLogPath string
	var quiet bool
	var serveAddr string

	fs.StringVar(&root, "root", "docs", "Directory containing libraries/<key>/ fixtures")
	fs.StringVar(&librariesPath, "libraries", "", "Path to libraries YAML (default: built-in catalog)")
	fs.Var(&libraries, "library", "Library key to include (repeatable or comma separated; default: all)")
	fs.StringVar(&templatePath, "template", "", "Path to page template (default: embedded)")
	fs.StringVar(&outHTML, "out", "-", "Output HTML path, - for stdout")
	fs.StringVar(&outJSON, "out-json", "", "Output JSON report path")
	fs.StringVar(&checksumsPath, "checksums", "", "Output checksums.sha256 path (default next to out-json)")
	fs.StringVar(&runLogPath, "run-log", "", "Output run log path (default next to out-json)")
	fs.BoolVar(&quiet, "quiet", false, "Suppress the score summary on stderr")
	fs.StringVar(&serveAddr, "serve", "", "Serve a live preview on this address instead of writing files")
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	console := stderr
	if quiet {
		console = nil
	}
	cfg := scorecard.Config{
		Root:          root,
		LibrariesPath: librariesPath,
		Libraries:     libraries,
		TemplatePath:  templatePath,
		OutHTMLPath:   outHTML,
		OutJSONPath:   outJSON,
		ChecksumsPath: checksumsPath,
		RunLogPath:    runLogPath,
		Stdout:        stdout,
		Console:       console,
		Args:          args,
	}

	if serveAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ready := make(chan string, 1)
		go func() {
			if addr, ok := <-ready; ok && console != nil {
				fmt.Fprintf(console, "preview listening on http://%s/\n", addr)
			}
		}()
		if err := preview.ListenAndServe(ctx, serveAddr, preview.NewServer(cfg, console), ready); err != nil {
			scorecard.PrintError(stderr, err)
			return exitError
		}
		return exitOK
	}

	if _, err := scorecard.Run(cfg); err != nil {
		scorecard.PrintError(stderr, err)
		return exitError
	}
	return exitOK
}
