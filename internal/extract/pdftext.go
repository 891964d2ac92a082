package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	pdfcpuapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFExtractor decodes PDF binaries with pdfcpu. Extraction works through
// temp files because pdfcpu's content extraction is file-based.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// Extract returns the text content of a PDF document, or an
// ErrorSentinel-prefixed message when the document cannot be decoded.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) string {
	text, err := e.extract(ctx, data)
	if err != nil {
		e.logger.Warn("pdf text extraction failed", "error", err)
		return fmt.Sprintf("%s Failed to read PDF: %s", ErrorSentinel, err)
	}
	return text
}

func (e *PDFExtractor) extract(ctx context.Context, data []byte) (string, error) {
	if _, err := pdfcpuapi.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration()); err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmpIn, err := os.CreateTemp("", "courier-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpIn.Name())
	defer tmpIn.Close()

	if _, err := tmpIn.Write(data); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}

	outDir, err := os.MkdirTemp("", "courier-pdf")
	if err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := pdfcpuapi.ExtractContentFile(
		tmpIn.Name(),
		outDir,
		nil,
		model.NewDefaultConfiguration(),
	); err != nil {
		return "", fmt.Errorf("extract content: %w", err)
	}

	var b strings.Builder
	err = filepath.Walk(outDir, func(path string, _ os.FileInfo, _ error) error {
		if filepath.Ext(path) == ".txt" {
			if d, err := os.ReadFile(path); err == nil {
				b.Write(d)
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("collect content: %w", err)
	}

	return b.String(), nil
}
