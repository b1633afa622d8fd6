package ports

import (
	"context"
	"io"

	"gopairs/domain/factor"
	"gopairs/domain/report"
)

// SheetWriter serializes an assembled report document into a workbook
type SheetWriter interface {
	Write(ctx context.Context, doc *report.Document, w io.Writer) error
}

// PreviewRenderer renders a report document for on-screen display
type PreviewRenderer interface {
	Markdown(doc *report.Document) []byte
	HTML(doc *report.Document) []byte
}

// ModelReader loads a factor model from an external file
type ModelReader interface {
	ReadModel(ctx context.Context, path string) (factor.Model, error)
}
