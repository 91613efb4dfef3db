// Package cmd implements the fin command line application to keep personal
// ledgers of incomes and expenses.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&registerCmd{}, "accounts")
	c.Register(&passwdCmd{}, "accounts")
	c.Register(&deleteCmd{}, "accounts")
	c.Register(&usersCmd{}, "accounts")

	c.Register(&addIncomeCmd{}, "transactions")
	c.Register(&addExpenseCmd{}, "transactions")
	c.Register(&removeCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&balanceCmd{}, "transactions")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&categoryCmd{}, "reports")

	c.Register(&completionCmd{}, "")
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to the configuration file. Defaults to fin.yaml in the working directory or in $HOME/.config/fin.")
	dataDir    = flag.String("data-dir", "", "Folder of the users index and the account records. Overrides the configuration.")
	reportsDir = flag.String("reports-dir", "", "Folder where report files are saved. Overrides the configuration.")
	Verbose    = flag.Bool("v", false, "Print debug traces on stderr.")
	raw        = flag.Bool("raw", false, "Print markdown as is, without rendering it for the terminal.")
)

// outputs, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// app is the environment of a single command run.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	session *finance.Session
}

// newApp loads the configuration, overridden by the global flags, and opens
// the data folder.
func newApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *reportsDir != "" {
		cfg.ReportsDir = *reportsDir
	}
	if *Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	logger := newLogger(cfg.LogLevel, stderr)
	logger.Debug("configuration loaded", "file", cfg.File, "data_dir", cfg.DataDir, "reports_dir", cfg.ReportsDir)

	session, err := finance.OpenSession(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("users index opened", "path", session.Directory().Path(), "users", session.Directory().Len())
	return &app{cfg: cfg, log: logger, session: session}, nil
}

// newLogger creates a text logger at level, debug traces carry their source.
func newLogger(level string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     l,
		AddSource: l == slog.LevelDebug,
	}))
}

// close ends the session, saving the open account. A save failure only
// matters if the command itself succeeded.
func (a *app) close(err error) error {
	if cerr := a.session.Close(); cerr != nil {
		a.log.Warn("account could not be saved on exit", "error", cerr)
		if err == nil {
			return cerr
		}
	}
	return err
}

// exit prints err, if any, and returns the matching exit status.
func exit(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var indexErr *finance.IndexError
	if errors.Is(err, finance.ErrValidation) || errors.As(err, &indexErr) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// usage prints a usage error.
func usage(format string, a ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: "+format+"\n", a...)
	return subcommands.ExitUsageError
}

// printMarkdown renders md for the terminal, or prints it as is when it
// cannot be rendered.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
