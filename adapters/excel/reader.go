package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopairs/domain/factor"
	"gopairs/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader reads factor models from Excel and CSV files. The header row
// holds the factor names and each column lists that factor's values.
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ReaderConfig) *DataReader {
	return &DataReader{
		config: config,
		logger: internal.DefaultLogger.Named("DataReader"),
	}
}

// ReadModel implements ports.ModelReader
func (r *DataReader) ReadModel(ctx context.Context, path string) (factor.Model, error) {
	data, err := r.ReadData(ctx, path)
	if err != nil {
		return factor.Model{}, err
	}
	return ToModel(data)
}

// ReadData reads the raw header and rows of an Excel or CSV file
func (r *DataReader) ReadData(ctx context.Context, path string) (*ExcelData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fileType := fileTypeOf(path)
	r.logger.Debug("Reading %s file: %s", fileType, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(fileType), path)
	}

	switch fileType {
	case "csv":
		return r.readCSVData(path)
	case "xlsx":
		return r.readExcelData(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}

func (r *DataReader) readExcelData(path string) (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.logger.Debug("Sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return processRows(rows)
}

func (r *DataReader) readCSVData(path string) (*ExcelData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return processRows(rows)
}

func processRows(rows [][]string) (*ExcelData, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file must have a header row of factor names")
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = trimCell(header)
	}
	return &ExcelData{Headers: headers, Rows: rows[1:]}, nil
}

// ToModel turns columns into factors. Columns with a blank header and no
// values are skipped; a blank header over values is kept so that validation
// reports it.
func ToModel(data *ExcelData) (factor.Model, error) {
	var factors []factor.Factor
	for idx, name := range data.Headers {
		values := data.Column(idx)
		if name == "" && len(values) == 0 {
			continue
		}
		factors = append(factors, factor.Factor{Name: name, Values: values})
	}

	model := factor.New(factors...)
	if err := factor.Validate(model); err != nil {
		return factor.Model{}, err
	}
	return model, nil
}

func fileTypeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".xlsx", ".xlsm":
		return "xlsx"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}

func trimCell(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}
