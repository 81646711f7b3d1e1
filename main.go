package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/olehluchkiv/vdispatch/internal/dispatch"
	"github.com/olehluchkiv/vdispatch/internal/logging"
	"github.com/olehluchkiv/vdispatch/internal/vtable"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitInspect = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args and executes the selected mode. With no arguments it
// runs the dispatch demo.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vdispatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	logFile := fs.String("log-file", "", "log file path (default: stderr only)")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	vtableDir := fs.String("vtable", "", "print dispatch tables of the Go module at this path instead of running the demo")
	format := fs.String("format", "text", "vtable output format (text, mermaid)")
	filter := fs.String("filter", "", "vtable package path prefix filter")
	includeStdlib := fs.Bool("include-stdlib", false, "vtable: include standard library interfaces")
	includeUnexported := fs.Bool("include-unexported", false, "vtable: include unexported types and interfaces")
	showFlag := fs.String("show", "all", "vtable: relations to show (all, inherited, overrides)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Unexpected arguments: %v\n", fs.Args())
		fs.PrintDefaults()
		return exitUsage
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid log level %q: %v\n", *logLevel, err)
		return exitUsage
	}

	logger, logCleanup, err := logging.Setup(stderr, *logFile, level)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to setup logging: %v\n", err)
		return exitUsage
	}
	defer logCleanup()

	if *vtableDir == "" {
		dispatch.Run(stdout, logger)
		return exitOK
	}

	if *format != "text" && *format != "mermaid" {
		fmt.Fprintf(stderr, "Invalid format %q (valid: text, mermaid)\n", *format)
		return exitUsage
	}

	show, err := vtable.ParseShow(*showFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid show mode %q: %v\n", *showFlag, err)
		return exitUsage
	}

	opts := vtable.Options{
		Filter:            *filter,
		IncludeStdlib:     *includeStdlib,
		IncludeUnexported: *includeUnexported,
		Show:              show,
	}
	if err := inspect(ctx, *vtableDir, *format, opts, stdout, logger); err != nil {
		logger.Error("inspection failed", "error", err)
		fmt.Fprintf(stderr, "Error inspecting %s: %v\n", *vtableDir, err)
		return exitInspect
	}
	return exitOK
}

func inspect(ctx context.Context, input, format string, opts vtable.Options, stdout io.Writer, logger *slog.Logger) error {
	dir, err := vtable.Resolve(input, logger)
	if err != nil {
		return err
	}

	result, err := vtable.Load(ctx, dir, opts, logger)
	if err != nil {
		return err
	}
	result = vtable.Filter(result, opts)

	if format == "mermaid" {
		_, err = io.WriteString(stdout, vtable.Mermaid(result))
		return err
	}
	return vtable.Render(stdout, result)
}
