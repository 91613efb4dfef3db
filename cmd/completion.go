package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/install"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the fin command line for shell completion.
//
// A main package calls Completion().Complete(name) before parsing flags: it
// only acts when invoked by the shell.
func Completion() *complete.Command {
	withAccount := func(flags map[string]complete.Predictor) *complete.Command {
		if flags == nil {
			flags = make(map[string]complete.Predictor)
		}
		flags["u"] = predictUsers
		flags["p"] = predict.Nothing
		return &complete.Command{Flags: flags}
	}
	entry := map[string]complete.Predictor{
		"a":    predict.Something,
		"desc": predict.Something,
		"d":    predict.Something,
	}
	expense := map[string]complete.Predictor{"c": predict.Something}
	for k, v := range entry {
		expense[k] = v
	}
	formats := predict.Set{string(renderer.Text), string(renderer.Markdown), string(renderer.HTML)}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"register":    withAccount(nil),
			"passwd":      withAccount(map[string]complete.Predictor{"new": predict.Nothing}),
			"delete":      withAccount(nil),
			"users":       {},
			"add-income":  withAccount(entry),
			"add-expense": withAccount(expense),
			"remove":      withAccount(map[string]complete.Predictor{"i": predict.Something}),
			"tx": withAccount(map[string]complete.Predictor{
				"type": predict.Set{"income", "expense"},
				"c":    predict.Something,
				"s":    predict.Something,
				"e":    predict.Something,
			}),
			"balance": withAccount(nil),
			"summary": withAccount(map[string]complete.Predictor{
				"period": predict.Set{"month", "quarter", "year"},
				"d":      predict.Something,
				"s":      predict.Something,
				"e":      predict.Something,
				"o":      formats,
			}),
			"category": withAccount(map[string]complete.Predictor{
				"c": predict.Something,
				"o": formats,
			}),
			"completion": {Flags: map[string]complete.Predictor{"uninstall": predict.Nothing}},
			"help":       {},
			"flags":      {},
		},
		Flags: map[string]complete.Predictor{
			"config":      predict.Files("*"),
			"data-dir":    predict.Dirs("*"),
			"reports-dir": predict.Dirs("*"),
			"v":           predict.Nothing,
			"raw":         predict.Nothing,
		},
	}
}

// predictUsers predicts the registered usernames.
var predictUsers = complete.PredictFunc(func(prefix string) []string {
	cfg, err := config.Load("")
	if err != nil {
		return nil
	}
	session, err := finance.OpenSession(cfg.DataDir)
	if err != nil {
		return nil
	}
	return session.Directory().Users()
})

type completionCmd struct {
	uninstall bool
}

func (*completionCmd) Name() string     { return "completion" }
func (*completionCmd) Synopsis() string { return "install shell completion for fin" }
func (*completionCmd) Usage() string {
	return `fin completion [-uninstall]

  Installs, or uninstalls, the completion of fin subcommands and flags in the
  configuration of the current shell.
`
}

func (c *completionCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.uninstall, "uninstall", false, "Uninstall the completion instead.")
}

func (c *completionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.uninstall {
		if err := install.Uninstall("fin"); err != nil {
			return exit(err)
		}
		fmt.Fprintln(stdout, "Completion uninstalled.")
		return subcommands.ExitSuccess
	}
	if err := install.Install("fin"); err != nil {
		return exit(err)
	}
	fmt.Fprintln(stdout, "Completion installed, restart your shell.")
	return subcommands.ExitSuccess
}
