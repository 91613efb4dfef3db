package renderer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger(t *testing.T) *finance.Ledger {
	t.Helper()
	l := finance.NewLedger("alice", "pw")
	require.NoError(t, l.AddEntry(finance.NewIncome(finance.M(1000), "Salary", date.New(1, 1, 2024))))
	require.NoError(t, l.AddEntry(finance.NewExpense(finance.M(200), "Rent", date.New(2, 1, 2024), "Housing")))
	require.NoError(t, l.AddEntry(finance.NewExpense(finance.M(50), "Lunch", date.New(3, 1, 2024), "Food")))
	return l
}

func TestSummary(t *testing.T) {
	l := sampleLedger(t)
	r := l.SummaryReport(date.New(1, 1, 2024), date.New(31, 12, 2024))

	md := Summary(r)
	assert.True(t, strings.HasPrefix(md, "# Summary Report\n"), md)
	assert.Contains(t, md, "*alice*, from 1/1/2024 to 31/12/2024")
	assert.Contains(t, md, "| Total Income | "+finance.M(1000).String()+" |")
	assert.Contains(t, md, "| Total Expenses | "+finance.M(250).String()+" |")
	assert.Contains(t, md, "| **Net Savings** | **"+finance.M(750).String()+"** |")
	assert.NotContains(t, md, "error")
}

func TestSummaryText(t *testing.T) {
	l := sampleLedger(t)
	r := l.SummaryReport(date.New(1, 1, 2024), date.New(31, 12, 2024))

	txt := SummaryText(r)
	lines := strings.Split(strings.TrimSpace(txt), "\n")
	require.Len(t, lines, 6, txt)
	assert.Equal(t, "Summary Report from 1/1/2024 to 31/12/2024", lines[0])
	assert.Equal(t, "Total Income: 1000 BDT", lines[2])
	assert.Equal(t, "Total Expenses: 250 BDT", lines[3])
	assert.Equal(t, "Net Savings: 750 BDT", lines[4])
	assert.Equal(t, lines[1], lines[5])
}

func TestCategory(t *testing.T) {
	l := sampleLedger(t)
	r := l.CategoryReport("Food")

	md := Category(r)
	assert.Contains(t, md, "# Category Report: Food")
	assert.Contains(t, md, "| Total Expenses in Category | "+finance.M(50).String()+" |")

	txt := CategoryText(r)
	assert.Contains(t, txt, "Category Report: Food\n")
	assert.Contains(t, txt, "Total Expenses in Category: 50 BDT\n")
}

func TestEntries(t *testing.T) {
	l := sampleLedger(t)

	md := Entries(l)
	assert.Contains(t, md, "# Transactions of alice")
	assert.Contains(t, md, "| 0 | 1/1/2024 | Income | Salary |  | +"+finance.M(1000).String()+" |")
	assert.Contains(t, md, "| 1 | 2/1/2024 | Expense | Rent | Housing | "+finance.M(-200).String()+" |")
	assert.Contains(t, md, "**Balance: "+finance.M(750).String()+"**")

	// Filtered rows keep their ledger index.
	md = Entries(l, finance.InCategory("Food"))
	assert.Contains(t, md, "| 2 | 3/1/2024 | Expense | Lunch | Food |")
	assert.NotContains(t, md, "Salary")

	md = Entries(finance.NewLedger("bob", "pw"))
	assert.Contains(t, md, "No transactions.")
	assert.NotContains(t, md, "| # |")
}

func TestBalance(t *testing.T) {
	l := sampleLedger(t)
	assert.Equal(t, "**alice**: "+finance.M(750).String()+"\n", Balance(l))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"txt": Text, "MD": Markdown, "html": HTML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestFileNames(t *testing.T) {
	l := sampleLedger(t)
	s := l.SummaryReport(date.New(1, 1, 2024), date.New(31, 3, 2024))
	assert.Equal(t, "alice_summary_report_1_1_2024_31_3_2024.txt", SummaryFileName(s, Text))

	c := l.CategoryReport("Food/Drinks")
	assert.Equal(t, "alice_Food_Drinks_report.html", CategoryFileName(c, HTML))
}

func TestSaveSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	l := sampleLedger(t)
	r := l.SummaryReport(date.New(1, 1, 2024), date.New(31, 12, 2024))

	path, err := SaveSummary(dir, r, Text)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "alice_summary_report_1_1_2024_31_12_2024.txt"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SummaryText(r), string(content))

	// Saving again replaces the report.
	_, err = SaveSummary(dir, r, Text)
	require.NoError(t, err)
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestSaveCategory(t *testing.T) {
	dir := t.TempDir()
	l := sampleLedger(t)
	r := l.CategoryReport("Housing")

	path, err := SaveCategory(dir, r, HTML)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<h1>Category Report: Housing</h1>")
	assert.Contains(t, string(content), "<table>")

	path, err = SaveCategory(dir, r, Markdown)
	require.NoError(t, err)
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Category(r), string(content))
}
