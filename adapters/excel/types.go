package excel

// ExcelData represents a raw sheet: a header row and the data rows below it
type ExcelData struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows, ragged as read
}

// Column returns the trimmed, non-empty cells of column idx in row order
func (d *ExcelData) Column(idx int) []string {
	var values []string
	for _, row := range d.Rows {
		if idx >= len(row) {
			continue
		}
		if cell := trimCell(row[idx]); cell != "" {
			values = append(values, cell)
		}
	}
	return values
}
