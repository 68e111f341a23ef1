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

	service "github.com/okian/crux/internal/app"
	"github.com/okian/crux/internal/cli"
	"github.com/okian/crux/internal/config"
	"github.com/okian/crux/pkg/logger"
	"github.com/okian/crux/pkg/metrics"
)

// Subcommands.
const (
	cmdFetch = "fetch"
	cmdBuild = "build"
	cmdQuery = "query"
	cmdAll   = "all"
)

const usage = `crux - cross-reference climbing competition participants

Usage:
  crux <command> [options]

Commands:
  fetch   download competition documents linked from the calendar
  build   build and persist the participant index
  query   aggregate the queried names and write per-discipline CSV files
  all     fetch, build and query

Options:
  -names string
        comma separated "Firstname:Lastname" list
  -names-file string
        file with one "Firstname Lastname" per line
  -interactive
        prompt for names on the terminal
  -help
        show this help message

Configuration is read from the YAML file named by CRUX_CONFIG and from
CRUX_* environment variables.
`

var errUsage = errors.New("usage")

type options struct {
	command     string
	names       string
	namesFile   string
	interactive bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		if len(args) > 0 && (args[0] == "-help" || args[0] == "-h" || args[0] == "--help") {
			return opts, flag.ErrHelp
		}
		return opts, fmt.Errorf("%w: missing command", errUsage)
	}
	opts.command = args[0]
	switch opts.command {
	case cmdFetch, cmdBuild, cmdQuery, cmdAll:
	default:
		return opts, fmt.Errorf("%w: unknown command %q", errUsage, opts.command)
	}

	fs := flag.NewFlagSet("crux "+opts.command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	fs.StringVar(&opts.names, "names", "", "comma separated Firstname:Lastname list")
	fs.StringVar(&opts.namesFile, "names-file", "", "file with one Firstname Lastname per line")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for names")
	if err := fs.Parse(args[1:]); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		_, _ = io.WriteString(stdout, usage)
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n\n%s", err, usage)
		return 1
	}

	if err := logger.InitWithWriter(stderr); err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := service.NewFromConfig(cfg)
	log = log.With(logger.String("run_id", svc.RunID()), logger.String("command", opts.command))

	err = execute(ctx, svc, cfg, opts, stdin, stdout)

	if cfg.MetricsFile != "" {
		if merr := metrics.WriteTextfile(cfg.MetricsFile); merr != nil {
			log.Warn(ctx, "unable to write metrics", logger.String("path", cfg.MetricsFile), logger.Error(merr))
		}
	}

	if err != nil {
		log.Error(ctx, "command failed", logger.Error(err))
		return 1
	}
	return 0
}

func execute(ctx context.Context, svc *service.Service, cfg *config.Config, opts options, stdin io.Reader, stdout io.Writer) error {
	if opts.command == cmdFetch || opts.command == cmdAll {
		if err := os.MkdirAll(cfg.CompetitionsDir, 0o755); err != nil {
			return fmt.Errorf("create competitions dir: %w", err)
		}
		if _, err := svc.Fetch(ctx); err != nil {
			return err
		}
	}
	if opts.command == cmdBuild || opts.command == cmdAll {
		if _, err := svc.BuildIndex(ctx); err != nil {
			return err
		}
	}
	if opts.command == cmdQuery || opts.command == cmdAll {
		names, err := collectNames(cfg, opts, stdin, stdout)
		if err != nil {
			return err
		}
		return query(ctx, svc, names, stdout)
	}
	return nil
}

// collectNames picks the first non-empty source: names file, -names, prompt, config.
func collectNames(cfg *config.Config, opts options, stdin io.Reader, stdout io.Writer) ([]string, error) {
	switch {
	case opts.namesFile != "":
		f, err := os.Open(opts.namesFile)
		if err != nil {
			return nil, fmt.Errorf("open names file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return cli.ReadNames(f)
	case opts.names != "":
		return cli.ParseList(opts.names), nil
	case opts.interactive:
		return cli.Prompt(stdin, stdout)
	default:
		return cfg.Names, nil
	}
}

func query(ctx context.Context, svc *service.Service, names []string, stdout io.Writer) error {
	res, err := svc.Query(ctx, names)
	if err != nil {
		return err
	}
	for _, name := range res.Missing {
		if hints, ok := res.Suggestions[name]; ok {
			_, _ = fmt.Fprintf(stdout, "unknown name %s, did you mean: %s\n", name, strings.Join(hints, ", "))
			continue
		}
		_, _ = fmt.Fprintf(stdout, "unknown name %s\n", name)
	}
	paths, err := svc.Report(ctx, res)
	if err != nil {
		return err
	}
	for _, p := range paths {
		_, _ = fmt.Fprintln(stdout, p)
	}
	return nil
}
