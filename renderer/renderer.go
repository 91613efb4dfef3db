// Package renderer turns ledgers and reports into markdown for the terminal,
// and into report files.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/finance"
)

//go:embed templates/*
var templates embed.FS

// data is what every template receives. Amounts are always in finance.Currency.
type data[T any] struct {
	Report   T
	Currency string
}

func newData[T any](r T) data[T] { return data[T]{Report: r, Currency: finance.Currency} }

// Summary renders a summary report to markdown.
func Summary(r finance.SummaryReport) string {
	partials := map[string]string{
		"report_title": "report_title.md",
	}
	return renderTemplate("summary", "summary.md", partials, newData(r))
}

// Category renders a category report to markdown.
func Category(r finance.CategoryReport) string {
	return renderTemplate("category", "category.md", nil, newData(r))
}

// SummaryText renders a summary report to plain text.
func SummaryText(r finance.SummaryReport) string {
	return renderTemplate("summaryText", "summary.txt", nil, newData(r))
}

// CategoryText renders a category report to plain text.
func CategoryText(r finance.CategoryReport) string {
	return renderTemplate("categoryText", "category.txt", nil, newData(r))
}

// row is one line of the transactions table.
type row struct {
	Index int
	finance.Entry
}

// Entries renders the entries of l, with their index, and its balance.
// Filters combine as in finance.Ledger.All.
func Entries(l *finance.Ledger, filters ...func(finance.Entry) bool) string {
	d := struct {
		Username string
		Rows     []row
		Balance  finance.Money
	}{Username: l.Username(), Balance: l.Balance()}
	for i, e := range l.All(filters...) {
		d.Rows = append(d.Rows, row{Index: i, Entry: e})
	}
	return renderTemplate("entries", "entries.md", nil, d)
}

// Balance renders the balance of l.
func Balance(l *finance.Ledger) string {
	return fmt.Sprintf("**%s**: %s\n", l.Username(), l.Balance())
}

var funcs = template.FuncMap{
	"money":  finance.Money.String,
	"signed": finance.Money.SignedString,
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, d any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, d); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
