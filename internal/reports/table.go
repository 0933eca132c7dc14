package reports

import "strconv"

// Column fixes one table column: its localized header and whether totals
// should sum it.
type Column struct {
	Header  string
	Numeric bool
}

// Cell is one table value. Numeric cells carry the raw value so totals sum
// numbers, not strings.
type Cell struct {
	Text    string
	Value   float64
	Numeric bool
}

// TextCell builds a non-numeric cell.
func TextCell(text string) Cell {
	return Cell{Text: text}
}

// NumberCell builds a numeric cell rendered without trailing zeros.
func NumberCell(value float64) Cell {
	return Cell{Text: formatNumber(value), Value: value, Numeric: true}
}

// MoneyCell builds a numeric cell rendered with two decimals.
func MoneyCell(value float64) Cell {
	return Cell{Text: strconv.FormatFloat(value, 'f', 2, 64), Value: value, Numeric: true}
}

// PercentCell builds a numeric cell rendered with one decimal.
func PercentCell(value float64) Cell {
	return Cell{Text: strconv.FormatFloat(value, 'f', 1, 64), Value: value, Numeric: true}
}

// TableBuilder assembles a TableData from a fixed ordered column schema. The
// header slice defines the column order consumers must respect; rows are
// header-to-cell maps so exports can look cells up by name.
type TableBuilder struct {
	columns    []Column
	rows       []Row
	totals     []float64
	totalLabel string
}

// NewTable starts a builder over the given schema.
func NewTable(columns ...Column) *TableBuilder {
	return &TableBuilder{
		columns: columns,
		totals:  make([]float64, len(columns)),
	}
}

// WithTotalLabel marks the totals row for emission, placing the label into
// the first non-numeric column.
func (b *TableBuilder) WithTotalLabel(label string) *TableBuilder {
	b.totalLabel = label
	return b
}

// AddRow appends one row. Extra cells are dropped, missing cells stay empty.
func (b *TableBuilder) AddRow(cells ...Cell) *TableBuilder {
	row := make(Row, len(b.columns))
	for i, col := range b.columns {
		if i >= len(cells) {
			break
		}
		row[col.Header] = cells[i].Text
		if col.Numeric && cells[i].Numeric {
			b.totals[i] += cells[i].Value
		}
	}
	b.rows = append(b.rows, row)
	return b
}

// Build produces the immutable table projection. Totals sum numeric columns
// only; non-numeric columns stay empty except the designated label column.
func (b *TableBuilder) Build() TableData {
	headers := make([]string, len(b.columns))
	for i, col := range b.columns {
		headers[i] = col.Header
	}
	table := TableData{Headers: headers, Rows: b.rows}
	if table.Rows == nil {
		table.Rows = []Row{}
	}

	if b.totalLabel != "" && len(b.rows) > 0 {
		totals := make(Row, len(b.columns))
		labelPlaced := false
		for i, col := range b.columns {
			switch {
			case col.Numeric:
				totals[col.Header] = formatNumber(b.totals[i])
			case !labelPlaced:
				totals[col.Header] = b.totalLabel
				labelPlaced = true
			default:
				totals[col.Header] = ""
			}
		}
		table.Totals = totals
	}
	return table
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
