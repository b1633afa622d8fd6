package report

// Cell is a primitive spreadsheet value: string, int, int64 or float64.
type Cell = any

// Table is a header row followed by data rows.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// Sheet is a named page holding one or more tables laid out top to bottom.
type Sheet struct {
	Name   string  `json:"name"`
	Tables []Table `json:"tables"`
}

// TableGap is the number of blank rows a writer leaves between tables on one sheet.
const TableGap = 2

// Document is the assembled report. It is built once and treated as read-only.
type Document struct {
	Sheets []Sheet `json:"sheets"`
}

// SheetNames returns the sheet names in order.
func (d *Document) SheetNames() []string {
	names := make([]string, len(d.Sheets))
	for i, s := range d.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet looks a sheet up by exact name.
func (d *Document) Sheet(name string) (*Sheet, bool) {
	for i := range d.Sheets {
		if d.Sheets[i].Name == name {
			return &d.Sheets[i], true
		}
	}
	return nil, false
}
