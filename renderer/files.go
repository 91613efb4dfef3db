package renderer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/finance"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format is the format of a report file, its value is the file extension.
type Format string

const (
	Text     Format = "txt"
	Markdown Format = "md"
	HTML     Format = "html"
)

// ParseFormat parses a report file format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Text, Markdown, HTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q, want txt, md or html", s)
	}
}

// SummaryFileName returns the file name of a summary report:
// <user>_summary_report_<d>_<m>_<y>_<d>_<m>_<y>.<ext>
func SummaryFileName(r finance.SummaryReport, f Format) string {
	return fileName(r.Username + "_summary_report_" + r.Period.Identifier() + "." + string(f))
}

// CategoryFileName returns the file name of a category report:
// <user>_<category>_report.<ext>
func CategoryFileName(r finance.CategoryReport, f Format) string {
	return fileName(r.Username + "_" + r.Category + "_report." + string(f))
}

// fileName replaces characters that cannot appear in a file name.
func fileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, s)
}

// SaveSummary writes a summary report file in dir and returns its path.
func SaveSummary(dir string, r finance.SummaryReport, f Format) (string, error) {
	return save(filepath.Join(dir, SummaryFileName(r, f)), f, SummaryText(r), Summary(r))
}

// SaveCategory writes a category report file in dir and returns its path.
func SaveCategory(dir string, r finance.CategoryReport, f Format) (string, error) {
	return save(filepath.Join(dir, CategoryFileName(r, f)), f, CategoryText(r), Category(r))
}

// save writes the text or the markdown to path, according to f. The file is
// written aside then renamed, an existing report is replaced at once.
func save(path string, f Format, text, md string) (string, error) {
	var content []byte
	switch f {
	case Text:
		content = []byte(text)
	case Markdown:
		content = []byte(md)
	case HTML:
		var err error
		if content, err = ToHTML(md); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown report format %q", f)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating reports folder %q: %w", dir, err)
	}
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return "", fmt.Errorf("error creating report file %q: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("error creating report file %q: %w", path, err)
	}
	return path, nil
}

// ToHTML converts markdown, including tables, to a standalone HTML page.
func ToHTML(md string) ([]byte, error) {
	var body bytes.Buffer
	converter := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := converter.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("error converting report to html: %w", err)
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"></head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
