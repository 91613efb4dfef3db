package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

// reportFlags holds the flags common to report commands.
type reportFlags struct {
	account
	output string
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) {
	r.account.SetFlags(f)
	f.StringVar(&r.output, "o", "", "Also save the report in the reports folder, as txt, md or html.")
}

// format returns the report file format, ok is false if no file is requested.
func (r *reportFlags) format() (f renderer.Format, ok bool, err error) {
	if r.output == "" {
		return "", false, nil
	}
	f, err = renderer.ParseFormat(r.output)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", finance.ErrValidation, err)
	}
	return f, true, nil
}

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	reportFlags
	period string
	date   string
	start  string
	end    string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the incomes, expenses and net savings over a period" }
func (*summaryCmd) Usage() string {
	return `fin summary -u <username> -p <password> [-period <period> [-d <date>] | -s <start_date> [-e <end_date>]] [-o txt|md|html]

  Displays the total incomes, total expenses and net savings of the
  transactions dated within a period. Dates are compared day, month and year
  independently.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.period, "period", "month", "Predefined period (month, quarter, year).")
	f.StringVar(&c.date, "d", "", "A date within the period. Defaults to today.")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -period.")
	f.StringVar(&c.end, "e", "", "The end date for a custom range. Defaults to no end.")
}

// dates returns the range of the report.
func (c *summaryCmd) dates() (date.Range, error) {
	if c.start != "" {
		return parseRange(c.start, c.end)
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		return date.Range{}, fmt.Errorf("%w: %w", finance.ErrValidation, err)
	}
	on := date.Today()
	if c.date != "" {
		if on, err = date.Parse(c.date); err != nil {
			return date.Range{}, fmt.Errorf("%w: %w", finance.ErrValidation, err)
		}
	}
	return date.NewRange(on, period), nil
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.dates()
	if err != nil {
		return exit(err)
	}
	format, save, err := c.format()
	if err != nil {
		return exit(err)
	}
	return c.run(func(ap *app, l *finance.Ledger) error {
		report := l.SummaryReport(r.From, r.To)
		printMarkdown(renderer.Summary(report))
		if !save {
			return nil
		}
		path, err := renderer.SaveSummary(ap.cfg.ReportsDir, report, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Report saved to %s\n", path)
		return nil
	})
}

type categoryCmd struct {
	reportFlags
	category string
}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "display the total expenses of a category" }
func (*categoryCmd) Usage() string {
	return `fin category -u <username> -p <password> -c <category> [-o txt|md|html]

  Displays the total of the expenses filed under a category, case sensitive.
  Without -c, every category is listed.
`
}

func (c *categoryCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.category, "c", "", "The expense category.")
}

func (c *categoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, save, err := c.format()
	if err != nil {
		return exit(err)
	}
	return c.run(func(ap *app, l *finance.Ledger) error {
		categories := []string{c.category}
		if c.category == "" {
			categories = l.Categories()
		}
		for _, name := range categories {
			report := l.CategoryReport(name)
			printMarkdown(renderer.Category(report))
			if !save {
				continue
			}
			path, err := renderer.SaveCategory(ap.cfg.ReportsDir, report, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Report saved to %s\n", path)
		}
		return nil
	})
}
