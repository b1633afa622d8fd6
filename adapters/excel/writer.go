package excel

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopairs/domain/core"
	"gopairs/domain/report"
	"gopairs/internal"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Writer renders report documents as xlsx workbooks
type Writer struct {
	config WriterConfig
	logger *internal.Logger
}

// NewWriter creates a workbook writer
func NewWriter(config WriterConfig) *Writer {
	return &Writer{
		config: config,
		logger: internal.DefaultLogger.Named("ExcelWriter"),
	}
}

// Write implements ports.SheetWriter. Every failure wraps core.ErrReportWriteFailed.
func (w *Writer) Write(ctx context.Context, doc *report.Document, out io.Writer) error {
	f, err := w.build(ctx, doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return core.NewReportWriteError("write workbook", err)
	}
	return nil
}

// WriteFile writes the workbook to path, replacing any existing file.
func (w *Writer) WriteFile(ctx context.Context, doc *report.Document, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return core.NewReportWriteError("create file", err)
	}
	if err := w.Write(ctx, doc, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return core.NewReportWriteError("close file", err)
	}
	w.logger.Info("Report written to %s", path)
	return nil
}

func (w *Writer) build(ctx context.Context, doc *report.Document) (*excelize.File, error) {
	if doc == nil || len(doc.Sheets) == 0 {
		return nil, core.NewReportWriteError("build workbook", fmt.Errorf("document has no sheets"))
	}

	f := excelize.NewFile()
	headerStyle, err := w.headerStyle(f)
	if err != nil {
		f.Close()
		return nil, core.NewReportWriteError("create header style", err)
	}

	for i, sheet := range doc.Sheets {
		if err := ctx.Err(); err != nil {
			f.Close()
			return nil, core.NewReportWriteError("build workbook", err)
		}
		if i == 0 {
			err = f.SetSheetName(defaultSheet, sheet.Name)
		} else {
			_, err = f.NewSheet(sheet.Name)
		}
		if err != nil {
			f.Close()
			return nil, core.NewReportWriteError(fmt.Sprintf("create sheet %q", sheet.Name), err)
		}
		if err := w.writeSheet(f, sheet, headerStyle); err != nil {
			f.Close()
			return nil, core.NewReportWriteError(fmt.Sprintf("fill sheet %q", sheet.Name), err)
		}
	}
	f.SetActiveSheet(0)

	w.logger.Debug("Workbook built with %d sheets", len(doc.Sheets))
	return f, nil
}

func (w *Writer) headerStyle(f *excelize.File) (int, error) {
	if !w.config.BoldHeader {
		return 0, nil
	}
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
}

// writeSheet lays tables out top to bottom with report.TableGap blank rows
// between them.
func (w *Writer) writeSheet(f *excelize.File, sheet report.Sheet, headerStyle int) error {
	widths := map[int]int{}
	row := 1
	for t, table := range sheet.Tables {
		if t > 0 {
			row += report.TableGap
		}

		header := make([]interface{}, len(table.Columns))
		for i, c := range table.Columns {
			header[i] = c
			trackWidth(widths, i, c)
		}
		if err := setRow(f, sheet.Name, row, header); err != nil {
			return err
		}
		if headerStyle != 0 && len(header) > 0 {
			if err := styleRow(f, sheet.Name, row, len(header), headerStyle); err != nil {
				return err
			}
		}
		row++

		for _, cells := range table.Rows {
			values := make([]interface{}, len(cells))
			for i, c := range cells {
				values[i] = c
				trackWidth(widths, i, fmt.Sprint(c))
			}
			if err := setRow(f, sheet.Name, row, values); err != nil {
				return err
			}
			row++
		}
	}

	if w.config.FreezeHeader && len(sheet.Tables) == 1 {
		if err := f.SetPanes(sheet.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}
	return w.applyWidths(f, sheet.Name, widths)
}

func (w *Writer) applyWidths(f *excelize.File, sheet string, widths map[int]int) error {
	for col, chars := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		width := float64(chars) + 2
		if width < w.config.MinColumnWidth {
			width = w.config.MinColumnWidth
		}
		if w.config.MaxColumnWidth > 0 && width > w.config.MaxColumnWidth {
			width = w.config.MaxColumnWidth
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

// trackWidth records the display width of s, counting wide runes twice.
func trackWidth(widths map[int]int, col int, s string) {
	n := 0
	for _, r := range s {
		if r >= 0x1100 && utf8.RuneLen(r) >= 3 {
			n += 2
		} else {
			n++
		}
	}
	if n > widths[col] {
		widths[col] = n
	}
}
