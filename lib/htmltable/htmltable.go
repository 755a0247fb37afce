// Package htmltable locates data tables inside third-party markup and
// exposes them as label-addressable grids. Operator report pages carry
// no usable ids or classes, so tables are found by a textual anchor plus
// an explicit ordinal among the anchor's matches.
package htmltable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableNotFoundError reports that no table (or no Ordinal-th table)
// matched the anchor, which usually means the source markup changed.
type TableNotFoundError struct {
	Anchor  string
	Ordinal int
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("no table match %d for anchor %q", e.Ordinal, e.Anchor)
}

// RowNotFoundError reports a referenced row label absent from a table
// that did match its anchor.
type RowNotFoundError struct {
	Anchor string
	Row    string
}

func (e *RowNotFoundError) Error() string {
	return fmt.Sprintf("table %q has no row labelled %q", e.Anchor, e.Row)
}

// ColumnNotFoundError reports a referenced column absent from a table
// that did match its anchor.
type ColumnNotFoundError struct {
	Anchor string
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("table %q has no column %q", e.Anchor, e.Column)
}

// Options control how a table is located and shaped.
type Options struct {
	// Anchor is a case-sensitive substring matched against each table's
	// text content.
	Anchor string
	// Ordinal selects among anchor-matching tables in document order,
	// 0-based. Report pages routinely repeat the anchor in a summary
	// table before the real data grid, so the disambiguation is explicit
	// per call rather than assumed.
	Ordinal int
	// SkipRows drops leading banner/title rows that are not part of the
	// data grid.
	SkipRows int
	// HeaderRow treats the first row after SkipRows as column labels.
	HeaderRow bool
	// IndexColumn is the position of the column whose cells become row
	// labels.
	IndexColumn int
}

// Table is a field-by-row view of one HTML table, keyed by the labels of
// its index column and, when present, its header row.
type Table struct {
	anchor  string
	headers []string
	rows    map[string][]string
	order   []string
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func cleanText(s string) string {
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

// tableRows yields the direct rows of sel, leaving rows of any nested
// tables alone.
func tableRows(sel *goquery.Selection) *goquery.Selection {
	direct := sel.ChildrenFiltered("tr")
	sectioned := sel.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr")
	return direct.AddSelection(sectioned)
}

// Find locates the Ordinal-th table whose text contains opts.Anchor and
// shapes it into a Table.
func Find(doc *goquery.Document, opts Options) (*Table, error) {
	var matches []*goquery.Selection
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		if strings.Contains(sel.Text(), opts.Anchor) {
			matches = append(matches, sel)
		}
	})
	if opts.Ordinal < 0 || opts.Ordinal >= len(matches) {
		return nil, &TableNotFoundError{Anchor: opts.Anchor, Ordinal: opts.Ordinal}
	}

	var grid [][]string
	tableRows(matches[opts.Ordinal]).Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cleanText(cell.Text()))
		})
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	})

	if opts.SkipRows < len(grid) {
		grid = grid[opts.SkipRows:]
	} else {
		grid = nil
	}

	t := &Table{anchor: opts.Anchor, rows: map[string][]string{}}
	if opts.HeaderRow {
		if len(grid) == 0 {
			return nil, &TableNotFoundError{Anchor: opts.Anchor, Ordinal: opts.Ordinal}
		}
		t.headers = grid[0]
		grid = grid[1:]
	}

	for _, cells := range grid {
		if opts.IndexColumn >= len(cells) {
			continue
		}
		label := cells[opts.IndexColumn]
		if _, seen := t.rows[label]; seen {
			continue
		}
		t.rows[label] = cells
		t.order = append(t.order, label)
	}

	return t, nil
}

// Rows returns the row labels in document order.
func (t *Table) Rows() []string {
	return t.order
}

// Cell addresses a cell by row label and header-row column label.
func (t *Table) Cell(row, col string) (string, error) {
	cells, ok := t.rows[row]
	if !ok {
		return "", &RowNotFoundError{Anchor: t.anchor, Row: row}
	}
	for i, h := range t.headers {
		if h != col {
			continue
		}
		if i >= len(cells) {
			break
		}
		return cells[i], nil
	}
	return "", &ColumnNotFoundError{Anchor: t.anchor, Column: col}
}

// CellAt addresses a cell by position for header-less tables. The index
// counts from the start of the row, index column included.
func (t *Table) CellAt(row string, col int) (string, error) {
	cells, ok := t.rows[row]
	if !ok {
		return "", &RowNotFoundError{Anchor: t.anchor, Row: row}
	}
	if col < 0 || col >= len(cells) {
		return "", &ColumnNotFoundError{Anchor: t.anchor, Column: strconv.Itoa(col)}
	}
	return cells[col], nil
}

// Column maps every row label to its cell under the named header-row
// column.
func (t *Table) Column(col string) (map[string]string, error) {
	out := make(map[string]string, len(t.order))
	for _, row := range t.order {
		cell, err := t.Cell(row, col)
		if err != nil {
			return nil, err
		}
		out[row] = cell
	}
	return out, nil
}

// LabelledValue extracts a degenerate one-cell value of the form
// "<label><delim><value>", e.g. "Last Update : Apr 21, 2017 13:22".
// The returned value is trimmed of surrounding whitespace.
func LabelledValue(doc *goquery.Document, anchor, delim string) (string, error) {
	var value string
	found := false
	doc.Find("th, td").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := cleanText(sel.Text())
		if !strings.Contains(text, anchor) {
			return true
		}
		_, after, split := strings.Cut(text, delim)
		if !split {
			return true
		}
		value = strings.TrimSpace(after)
		found = true
		return false
	})
	if !found {
		return "", &TableNotFoundError{Anchor: anchor}
	}
	return value, nil
}
