package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/driftfs/driftfs/internal/logger"
	"github.com/driftfs/driftfs/pkg/config"
	"github.com/driftfs/driftfs/pkg/store"
)

const usage = `driftfs - uniform file store CLI

Usage:
  driftfs [flags] <command> [args]

Commands:
  ls <dir>             List files and directories under <dir>
  cat <file>           Write the contents of <file> to stdout
  put <file>           Store stdin under <file>
  rm <file>            Delete <file>
  mkdir <dir>          Create <dir> and any missing parents
  rmdir [-r] <dir>     Delete <dir> (-r deletes contents too)
  stat <file>          Print the size of <file>

Flags:
  -config <path>       Config file (default: $XDG_CONFIG_HOME/driftfs/config.yaml)
  -log-level <level>   Log level: DEBUG, INFO, WARN, ERROR
`

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "driftfs: %v\n", err)
		os.Exit(1)
	}

	// CLI flag wins over the configured level.
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger.SetLevel(cfg.Logging.Level)
	if cfg.Logging.Output == "stderr" {
		logger.SetOutput(os.Stderr)
	}

	// Cancel on SIGINT/SIGTERM so long transfers abort cleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bundle, err := config.Build(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "driftfs: %v\n", err)
		os.Exit(1)
	}
	if bundle.Cache != nil {
		defer bundle.Cache.Close()
	}

	logger.Debug("store ready: %s (%s)", bundle.Store.Name(), bundle.Store.ID())

	if err := run(ctx, bundle, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "driftfs: %s: %v\n", args[0], err)
		os.Exit(1)
	}
}

// run dispatches a single command against the configured store.
func run(ctx context.Context, bundle store.Configuration, command string, args []string) error {
	s := bundle.Store

	switch command {
	case "ls":
		return runLs(ctx, bundle, args)

	case "cat":
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one file argument")
		}
		return s.CopyTo(ctx, args[0], os.Stdout)

	case "put":
		path := bundle.ResolveFilePath(argOrEmpty(args))
		if err := s.CopyFrom(ctx, path, os.Stdin); err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one file argument")
		}
		return s.DeleteFile(ctx, args[0])

	case "mkdir":
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one directory argument")
		}
		return s.CreateDirectory(ctx, args[0])

	case "rmdir":
		return runRmdir(ctx, s, args)

	case "stat":
		if len(args) != 1 {
			return fmt.Errorf("expected exactly one file argument")
		}
		size, err := s.FileSize(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%d\n", args[0], size)
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// runLs lists directories first, then files, one entry per line.
func runLs(ctx context.Context, bundle store.Configuration, args []string) error {
	dir := bundle.ResolveDirectory(argOrEmpty(args))
	s := bundle.Store

	dirs, err := s.EnumerateDirectories(ctx, dir)
	if err != nil {
		return err
	}
	files, err := s.EnumerateFiles(ctx, dir)
	if err != nil {
		return err
	}

	w := io.Writer(os.Stdout)
	for _, d := range dirs {
		fmt.Fprintf(w, "%s/\n", d)
	}
	for _, f := range files {
		fmt.Fprintln(w, f)
	}
	return nil
}

func runRmdir(ctx context.Context, s store.FileStore, args []string) error {
	fs := flag.NewFlagSet("rmdir", flag.ContinueOnError)
	recursive := fs.Bool("r", false, "delete directory contents too")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one directory argument")
	}
	return s.DeleteDirectory(ctx, fs.Arg(0), *recursive)
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
