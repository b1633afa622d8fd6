package excel

// WriterConfig holds layout settings for workbook output
type WriterConfig struct {
	BoldHeader     bool    `json:"bold_header"`
	MinColumnWidth float64 `json:"min_column_width"`
	MaxColumnWidth float64 `json:"max_column_width"`
	FreezeHeader   bool    `json:"freeze_header"`
}

// DefaultWriterConfig returns sensible defaults for workbook output
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BoldHeader:     true,
		MinColumnWidth: 8,
		MaxColumnWidth: 60,
		FreezeHeader:   true,
	}
}

// ReaderConfig holds settings for model import
type ReaderConfig struct {
	// Sheet names the sheet to read. Empty means the first sheet.
	Sheet string `json:"sheet"`
}

// DefaultReaderConfig returns sensible defaults for model import
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{}
}
