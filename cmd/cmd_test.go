package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fin runs the command line args against a temporary data folder.
type fin struct {
	t       *testing.T
	data    string
	reports string
}

func newFin(t *testing.T) *fin {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvPassword, "")
	root := t.TempDir()
	f := &fin{t: t, data: filepath.Join(root, "data"), reports: filepath.Join(root, "reports")}

	oldData, oldReports, oldRaw := *dataDir, *reportsDir, *raw
	oldOut, oldErr := stdout, stderr
	t.Cleanup(func() {
		*dataDir, *reportsDir, *raw = oldData, oldReports, oldRaw
		stdout, stderr = oldOut, oldErr
	})
	*dataDir, *reportsDir, *raw = f.data, f.reports, true
	return f
}

func (f *fin) run(args ...string) (string, string, subcommands.ExitStatus) {
	f.t.Helper()
	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut

	flags := flag.NewFlagSet("fin", flag.ContinueOnError)
	commander := subcommands.NewCommander(flags, "fin")
	commander.Output, commander.Error = &out, &errOut
	Register(commander)
	require.NoError(f.t, flags.Parse(args))
	status := commander.Execute(context.Background())
	return out.String(), errOut.String(), status
}

// ok runs args and requires success.
func (f *fin) ok(args ...string) string {
	f.t.Helper()
	out, errOut, status := f.run(args...)
	require.Equal(f.t, subcommands.ExitSuccess, status, "fin %s: %s", strings.Join(args, " "), errOut)
	return out
}

func TestFin_Session(t *testing.T) {
	f := newFin(t)
	alice := []string{"-u", "alice", "-p", "secret"}
	with := func(cmd string, args ...string) []string {
		return append(append([]string{cmd}, alice...), args...)
	}

	f.ok(with("register")...)
	assert.FileExists(t, filepath.Join(f.data, "alice.txt"))
	assert.Equal(t, "alice\n", f.ok("users"))

	f.ok(with("add-income", "-a", "1000", "-desc", "Salary", "-d", "1/1/2024")...)
	out := f.ok(with("add-expense", "-a", "200", "-desc", "Lunch", "-c", "Food", "-d", "2/1/2024")...)
	assert.Contains(t, out, "Expense added, balance is "+finance.M(800).String())

	out = f.ok(with("balance")...)
	assert.Contains(t, out, finance.M(800).String())

	out = f.ok(with("tx")...)
	assert.Contains(t, out, "| 0 | 1/1/2024 | Income | Salary |")
	assert.Contains(t, out, "| 1 | 2/1/2024 | Expense | Lunch | Food |")

	out = f.ok(with("tx", "-type", "expense")...)
	assert.NotContains(t, out, "Salary")
	assert.Contains(t, out, "Lunch")

	out = f.ok(with("category", "-c", "Food")...)
	assert.Contains(t, out, "# Category Report: Food")
	assert.Contains(t, out, finance.M(200).String())

	f.ok(with("remove", "-i", "0")...)
	out = f.ok(with("balance")...)
	assert.Contains(t, out, finance.M(-200).String())

	f.ok(with("passwd", "-new", "changed")...)
	_, errOut, status := f.run(with("balance")...)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "Error: ")

	f.ok("delete", "-u", "alice", "-p", "changed")
	assert.NoFileExists(t, filepath.Join(f.data, "alice.txt"))
	assert.Equal(t, "", f.ok("users"))
}

func TestFin_Summary(t *testing.T) {
	f := newFin(t)
	alice := []string{"-u", "alice", "-p", "secret"}
	f.ok(append([]string{"register"}, alice...)...)
	f.ok(append([]string{"add-income"}, append(alice, "-a", "1000", "-d", "5/2/2024")...)...)
	f.ok(append([]string{"add-expense"}, append(alice, "-a", "250.5", "-c", "Rent", "-d", "6/2/2024")...)...)

	out := f.ok(append([]string{"summary"}, append(alice, "-period", "month", "-d", "20/2/2024", "-o", "txt")...)...)
	assert.Contains(t, out, "*alice*, from 1/2/2024 to 29/2/2024")
	assert.Contains(t, out, finance.M(749.5).String())

	path := filepath.Join(f.reports, "alice_summary_report_1_2_2024_29_2_2024.txt")
	assert.Contains(t, out, "Report saved to "+path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Net Savings: 749.5 BDT")

	// Without -e the range has no end, whatever the date today.
	out = f.ok(append([]string{"summary"}, append(alice, "-s", "1/1/2024")...)...)
	assert.Contains(t, out, "*alice*, from 1/1/2024 to 31/12/9999")
	assert.Contains(t, out, finance.M(749.5).String())

	out = f.ok(append([]string{"tx"}, append(alice, "-s", "1/1/2024", "-type", "income")...)...)
	assert.Contains(t, out, "| 0 | 5/2/2024 | Income |")
	assert.NotContains(t, out, "Rent")

	f.ok(append([]string{"category"}, append(alice, "-o", "html")...)...)
	assert.FileExists(t, filepath.Join(f.reports, "alice_Rent_report.html"))
}

func TestFin_Errors(t *testing.T) {
	f := newFin(t)
	alice := []string{"-u", "alice", "-p", "secret"}
	f.ok(append([]string{"register"}, alice...)...)

	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"duplicate user", append([]string{"register"}, alice...), subcommands.ExitFailure},
		{"unknown user", []string{"balance", "-u", "bob", "-p", "x"}, subcommands.ExitFailure},
		{"wrong password", []string{"balance", "-u", "alice", "-p", "x"}, subcommands.ExitFailure},
		{"missing credentials", []string{"balance"}, subcommands.ExitUsageError},
		{"reserved username", []string{"register", "-u", "users", "-p", "x"}, subcommands.ExitUsageError},
		{"negative amount", append([]string{"add-income", "-a", "-5"}, alice...), subcommands.ExitUsageError},
		{"bad amount", append([]string{"add-income", "-a", "five"}, alice...), subcommands.ExitUsageError},
		{"bad date", append([]string{"add-income", "-a", "5", "-d", "30/2/2023"}, alice...), subcommands.ExitUsageError},
		{"bad index", append([]string{"remove", "-i", "3"}, alice...), subcommands.ExitUsageError},
		{"bad type", append([]string{"tx", "-type", "transfer"}, alice...), subcommands.ExitUsageError},
		{"bad format", append([]string{"summary", "-o", "pdf"}, alice...), subcommands.ExitUsageError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, errOut, status := f.run(tc.args...)
			assert.Equal(t, tc.want, status)
			assert.True(t, strings.HasPrefix(errOut, "Error: "), errOut)
		})
	}

	// Failed commands left the ledger untouched.
	out := f.ok(append([]string{"tx"}, alice...)...)
	assert.Contains(t, out, "No transactions.")
}

func TestFin_PasswordFromEnv(t *testing.T) {
	f := newFin(t)
	f.ok("register", "-u", "alice", "-p", "secret")

	t.Setenv(EnvPassword, "secret")
	out := f.ok("balance", "-u", "alice")
	assert.Contains(t, out, "**alice**")
}

func TestCompletion_CoversCommands(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("fin", flag.ContinueOnError), "fin")
	Register(commander)
	c := Completion()

	var names []string
	commander.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		names = append(names, cmd.Name())
		assert.Contains(t, c.Sub, cmd.Name())
	})
	assert.Len(t, c.Sub, len(names))

	flag.CommandLine.VisitAll(func(fl *flag.Flag) {
		if strings.HasPrefix(fl.Name, "test.") {
			return
		}
		assert.Contains(t, c.Flags, fl.Name)
	})
}

func TestPrintMarkdown(t *testing.T) {
	newFin(t)
	var out bytes.Buffer
	stdout = &out

	*raw = false
	printMarkdown("# Hello\n")
	assert.Contains(t, out.String(), "Hello")

	out.Reset()
	*raw = true
	printMarkdown("# Hello\n")
	assert.Equal(t, "# Hello\n", out.String())
}

func TestParseRange(t *testing.T) {
	r, err := parseRange("1/1/2024", "")
	require.NoError(t, err)
	assert.True(t, r.Contains(date.New(25, 3, 2024)))
	assert.True(t, r.Contains(date.New(31, 12, 2030)))
	assert.False(t, r.Contains(date.New(31, 12, 2023)))

	r, err = parseRange("", "30/6/2024")
	require.NoError(t, err)
	assert.True(t, r.Contains(date.New(1, 1, 2020)))
	assert.False(t, r.Contains(date.New(1, 7, 2024)))

	_, err = parseRange("31/2/2024", "")
	assert.ErrorIs(t, err, finance.ErrValidation)
}

func TestFin_AmountsAlwaysInTaka(t *testing.T) {
	f := newFin(t)
	t.Setenv("FIN_CURRENCY", "USD")
	assert.Nil(t, flag.Lookup("currency"))

	f.ok("register", "-u", "alice", "-p", "secret")
	f.ok("add-income", "-u", "alice", "-p", "secret", "-a", "1000", "-d", "1/1/2024")
	out := f.ok("balance", "-u", "alice", "-p", "secret")
	assert.Equal(t, "**alice**: "+finance.M(1000).String()+"\n", out)
	assert.NotContains(t, out, "$")

	f.ok("summary", "-u", "alice", "-p", "secret", "-s", "1/1/2024", "-o", "txt")
	content, err := os.ReadFile(filepath.Join(f.reports, "alice_summary_report_1_1_2024_31_12_9999.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Total Income: 1000 BDT")
}
