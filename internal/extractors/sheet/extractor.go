// Package sheet extracts text from XLSX spreadsheets.
package sheet

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
)

// Extractor handles XLSX workbooks. Cell values are rendered row by row,
// space-separated, one line per row.
type Extractor struct{}

// New creates a new spreadsheet extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the handled filename extensions.
func (e *Extractor) Extensions() []string {
	return []string{"xlsx"}
}

// Extract renders every worksheet's cells as plain text.
func (e *Extractor) Extract(_ context.Context, item *domain.SourceItem) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(item.Content), int64(len(item.Content)))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}

	shared, err := readSharedStrings(reader)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, file := range reader.File {
		if !strings.HasPrefix(file.Name, "xl/worksheets/sheet") || !strings.HasSuffix(file.Name, ".xml") {
			continue
		}
		sheetLines, err := readWorksheet(file, shared)
		if err != nil {
			return "", err
		}
		lines = append(lines, sheetLines...)
	}

	return strings.Join(lines, "\n"), nil
}

// sharedStringsXML represents xl/sharedStrings.xml.
type sharedStringsXML struct {
	Items []sharedString `xml:"si"`
}

type sharedString struct {
	Text string      `xml:"t"`
	Runs []stringRun `xml:"r"`
}

type stringRun struct {
	Text string `xml:"t"`
}

func (s sharedString) value() string {
	if len(s.Runs) == 0 {
		return s.Text
	}
	var b strings.Builder
	for _, r := range s.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func readSharedStrings(reader *zip.Reader) ([]string, error) {
	for _, file := range reader.File {
		if file.Name != "xl/sharedStrings.xml" {
			continue
		}
		content, err := readZipFile(file)
		if err != nil {
			return nil, err
		}
		var parsed sharedStringsXML
		if err := xml.Unmarshal(content, &parsed); err != nil {
			return nil, fmt.Errorf("parse shared strings: %w", err)
		}
		values := make([]string, len(parsed.Items))
		for i, item := range parsed.Items {
			values[i] = item.value()
		}
		return values, nil
	}
	return nil, nil
}

// worksheetXML represents xl/worksheets/sheetN.xml.
type worksheetXML struct {
	Rows []worksheetRow `xml:"sheetData>row"`
}

type worksheetRow struct {
	Cells []worksheetCell `xml:"c"`
}

type worksheetCell struct {
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline string `xml:"is>t"`
}

func readWorksheet(file *zip.File, shared []string) ([]string, error) {
	content, err := readZipFile(file)
	if err != nil {
		return nil, err
	}

	var parsed worksheetXML
	if err := xml.Unmarshal(content, &parsed); err != nil {
		return nil, fmt.Errorf("parse worksheet %s: %w", file.Name, err)
	}

	var lines []string
	for _, row := range parsed.Rows {
		var cells []string
		for _, cell := range row.Cells {
			if v := cellValue(cell, shared); v != "" {
				cells = append(cells, v)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " "))
		}
	}
	return lines, nil
}

func cellValue(cell worksheetCell, shared []string) string {
	switch cell.Type {
	case "s":
		idx, err := strconv.Atoi(cell.Value)
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	case "inlineStr":
		return cell.Inline
	default:
		return cell.Value
	}
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Name, err)
	}
	return content, nil
}
