package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

// entryFlags holds the flags common to add-income and add-expense.
type entryFlags struct {
	account
	amount      string
	description string
	date        string
}

func (e *entryFlags) SetFlags(f *flag.FlagSet) {
	e.account.SetFlags(f)
	f.StringVar(&e.amount, "a", "", "Amount, a non negative decimal number.")
	f.StringVar(&e.description, "desc", "", "Description of the transaction.")
	f.StringVar(&e.date, "d", "", "Date of the transaction, as dd/mm/yyyy. Defaults to today.")
}

// parse returns the amount and date flags.
func (e *entryFlags) parse() (finance.Money, date.Date, error) {
	amount, err := finance.ParseMoney(strings.TrimSpace(e.amount))
	if err != nil {
		return finance.Money{}, date.Date{}, fmt.Errorf("%w: %w", finance.ErrValidation, err)
	}
	on := date.Today()
	if e.date != "" {
		if on, err = date.Parse(e.date); err != nil {
			return finance.Money{}, date.Date{}, fmt.Errorf("%w: %w", finance.ErrValidation, err)
		}
	}
	return amount, on, nil
}

// add records e.
func add(ap *app, l *finance.Ledger, e finance.Entry) error {
	if err := l.AddEntry(e); err != nil {
		if !errors.Is(err, finance.ErrValidation) {
			ap.log.Warn("entry kept in memory but the record could not be saved", "error", err)
		}
		return err
	}
	ap.log.Debug("entry added", "entry", e.String())
	fmt.Fprintf(stdout, "%s added, balance is %s.\n", e.Kind(), l.Balance())
	return nil
}

type addIncomeCmd struct {
	entryFlags
}

func (*addIncomeCmd) Name() string     { return "add-income" }
func (*addIncomeCmd) Synopsis() string { return "record an income" }
func (*addIncomeCmd) Usage() string {
	return `fin add-income -u <username> -p <password> -a <amount> [-desc <description>] [-d <date>]

  Records an income and updates the balance.
`
}

func (c *addIncomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, on, err := c.parse()
	if err != nil {
		return exit(err)
	}
	return c.run(func(ap *app, l *finance.Ledger) error {
		return add(ap, l, finance.NewIncome(amount, c.description, on))
	})
}

type addExpenseCmd struct {
	entryFlags
	category string
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record an expense" }
func (*addExpenseCmd) Usage() string {
	return `fin add-expense -u <username> -p <password> -a <amount> -c <category> [-desc <description>] [-d <date>]

  Records an expense under a category and updates the balance.
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	c.entryFlags.SetFlags(f)
	f.StringVar(&c.category, "c", "", "Category of the expense, e.g. Food.")
}

func (c *addExpenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, on, err := c.parse()
	if err != nil {
		return exit(err)
	}
	return c.run(func(ap *app, l *finance.Ledger) error {
		return add(ap, l, finance.NewExpense(amount, c.description, on, c.category))
	})
}

type removeCmd struct {
	account
	index int
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a transaction" }
func (*removeCmd) Usage() string {
	return `fin remove -u <username> -p <password> -i <index>

  Removes the transaction at index, as listed by 'fin tx', and reverses its
  effect on the balance. Following transactions shift down by one.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	c.account.SetFlags(f)
	f.IntVar(&c.index, "i", -1, "Index of the transaction to remove.")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(func(ap *app, l *finance.Ledger) error {
		e, err := l.Entry(c.index)
		if err != nil {
			return err
		}
		if err := l.RemoveEntry(c.index); err != nil {
			return err
		}
		ap.log.Debug("entry removed", "index", c.index, "entry", e.String())
		fmt.Fprintf(stdout, "%s removed, balance is %s.\n", e.Kind(), l.Balance())
		return nil
	})
}

type txCmd struct {
	account
	kind     string
	category string
	start    string
	end      string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of an account" }
func (*txCmd) Usage() string {
	return `fin tx -u <username> -p <password> [-type income|expense] [-c <category>] [-s <start_date> -e <end_date>]

  Lists the transactions with their index, and the balance. Filters combine.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	c.account.SetFlags(f)
	f.StringVar(&c.kind, "type", "", "Only list transactions of this type (income, expense).")
	f.StringVar(&c.category, "c", "", "Only list expenses of this category.")
	f.StringVar(&c.start, "s", "", "Only list transactions from this date.")
	f.StringVar(&c.end, "e", "", "Only list transactions up to this date.")
}

// filters returns the filters set by the flags.
func (c *txCmd) filters() ([]func(finance.Entry) bool, error) {
	var filters []func(finance.Entry) bool
	switch strings.ToLower(c.kind) {
	case "":
	case "income":
		filters = append(filters, finance.Incomes)
	case "expense":
		filters = append(filters, finance.Expenses)
	default:
		return nil, fmt.Errorf("%w: unknown type %q, want income or expense", finance.ErrValidation, c.kind)
	}
	if c.category != "" {
		filters = append(filters, finance.InCategory(c.category))
	}
	if c.start != "" || c.end != "" {
		r, err := parseRange(c.start, c.end)
		if err != nil {
			return nil, err
		}
		filters = append(filters, finance.During(r.From, r.To))
	}
	return filters, nil
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filters, err := c.filters()
	if err != nil {
		return exit(err)
	}
	return c.run(func(ap *app, l *finance.Ledger) error {
		printMarkdown(renderer.Entries(l, filters...))
		return nil
	})
}

type balanceCmd struct {
	account
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the balance of an account" }
func (*balanceCmd) Usage() string {
	return `fin balance -u <username> -p <password>

  Displays the current balance, incomes minus expenses.
`
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(func(ap *app, l *finance.Ledger) error {
		printMarkdown(renderer.Balance(l))
		return nil
	})
}

// openEnd bounds a range with no end date. Ranges compare day, month and year
// independently, so each field is at its largest.
var openEnd = date.New(31, 12, 9999)

// parseRange parses the boundaries of a custom range. An empty start is the
// zero date, an empty end is openEnd.
func parseRange(start, end string) (date.Range, error) {
	r := date.Range{To: openEnd}
	var err error
	if start != "" {
		if r.From, err = date.Parse(start); err != nil {
			return r, fmt.Errorf("%w: start date: %w", finance.ErrValidation, err)
		}
	}
	if end != "" {
		if r.To, err = date.Parse(end); err != nil {
			return r, fmt.Errorf("%w: end date: %w", finance.ErrValidation, err)
		}
	}
	return r, nil
}
