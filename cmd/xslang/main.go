package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"xslang/interpreter-go/pkg/driver"
)

const cliToolVersion = "xslang 0.1.0-dev"

// errRunFailed is returned after the failing programs have already been
// reported, so run does not print it again.
var errRunFailed = errors.New("programs failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "xslang",
		Short: "xslang evaluates x-slang programs given as ESTree JSON",
		Long: `xslang runs programs of the x-slang Swift subset. Each program is an
ESTree-shaped JSON document; programs given together share one global scope.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newRunCommand(stdout, stderr), newVersionCommand(stdout))
	return root
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the xslang version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, cliToolVersion)
		},
	}
}

type runOptions struct {
	configPath string
	envFile    string
	lazy       bool
	maxDepth   int
	maxSteps   int
	trace      bool
	noColor    bool
}

func newRunCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run [program.json...]",
		Short: "Evaluate programs in order and print their results",
		Long: `Evaluates each program in one session. Definitions made by a program stay
visible to the programs after it, and a failing program does not stop the
rest. Without arguments the programs listed in the config file are run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runPrograms(cmd.Context(), cfg, args, stdout, stderr)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to an xslang.yml config file")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file with XSLANG_* overrides (default .env)")
	flags.BoolVar(&opts.lazy, "lazy", false, "pass non-literal arguments as thunks")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum evaluation depth (0 selects the default)")
	flags.IntVar(&opts.maxSteps, "max-steps", 0, "interrupt a program after this many steps (0 disables)")
	flags.BoolVar(&opts.trace, "trace", false, "log every evaluated node")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	return cmd
}

// resolveConfig layers the config file, the environment and explicit flags,
// in that order.
func resolveConfig(cmd *cobra.Command, opts runOptions) (*driver.Config, error) {
	if err := driver.LoadDotEnv(opts.envFile); err != nil {
		return nil, err
	}
	cfg := driver.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := driver.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("lazy") {
		cfg.Lazy = opts.lazy
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = opts.maxSteps
	}
	if opts.trace {
		cfg.LogLevel = "debug"
	}
	if opts.noColor {
		cfg.Color = driver.ColorNever
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPrograms(ctx context.Context, cfg *driver.Config, paths []string, stdout, stderr io.Writer) error {
	if len(paths) == 0 {
		paths = cfg.Programs
	}
	if len(paths) == 0 {
		return errors.New("no programs to run; pass files or list them under programs: in a config file")
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	session := driver.NewSession(cfg, driver.SessionOptions{Stdout: stdout, Logger: logger})
	printer := driver.NewPrinter(stdout, stderr, cfg.Color)

	failed := 0
	for _, path := range paths {
		result := session.RunFile(ctx, path)
		printer.Print(result)
		if result.Failed() {
			failed++
		}
		if ctx.Err() != nil {
			break
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errRunFailed, failed, len(paths))
	}
	return nil
}
