// Package docload turns source documents into raw text. Digital PDFs go
// through pdftotext; scanned PDFs fall back to rasterize-and-OCR.
package docload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/insurelens/policy-parser/constants"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit

	// MinTextLen is the scanned-PDF trigger: when pdftotext yields fewer
	// significant characters than this, the document is treated as an image
	// scan and OCR runs instead. Default 50.
	MinTextLen int
}

type Result struct {
	Text       string
	Pages      int
	SourceType string // constants.FileTypes entry: "PDF" | "TXT"
	Method     string // "txt" | "pdf-text" | "pdf-ocr"
	Duration   time.Duration
	Warnings   []string
}

type Loader struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewLoader(cfg Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MinTextLen <= 0 {
		cfg.MinTextLen = 50
	}
	return &Loader{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Load picks a strategy based on file extension.
func (l *Loader) Load(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	l.logger.Debug("loading document", "path", path, "ext", ext)
	switch ext {
	case "txt":
		raw, err := os.ReadFile(path)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Text:       string(raw),
			Pages:      1,
			SourceType: "TXT",
			Method:     "txt",
			Duration:   time.Since(start),
		}, nil
	case "pdf":
		res, err := l.loadPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	default:
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}
}

func (l *Loader) loadPDF(ctx context.Context, path string) (Result, error) {
	text, pages, warns, err := l.pdfToText(ctx, path)
	if err != nil {
		return Result{SourceType: "PDF", Warnings: warns}, err
	}
	if len(strings.TrimSpace(text)) >= l.cfg.MinTextLen {
		return Result{Text: text, Pages: pages, SourceType: "PDF", Method: "pdf-text", Warnings: warns}, nil
	}

	l.logger.Info("little or no embedded text, falling back to OCR", "path", path, "text_len", len(strings.TrimSpace(text)))
	ocrText, ocrPages, ocrWarns, err := l.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		return Result{SourceType: "PDF", Warnings: warns}, err
	}
	return Result{Text: ocrText, Pages: ocrPages, SourceType: "PDF", Method: "pdf-ocr", Warnings: warns}, nil
}

func (l *Loader) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := l.runner.Run(ctx, l.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = 1 + strings.Count(text, "\f")
	return text, pages, nil, nil
}

func (l *Loader) pdfToOCR(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "pp-ocr-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			l.logger.Warn("failed to remove temp dir", "path", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := l.runner.Run(ctx, l.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", l.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if l.cfg.MaxPages > 0 && len(matches) > l.cfg.MaxPages {
		matches = matches[:l.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := l.tesseractOCR(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
		warns = append(warns, w...)
	}
	pages = len(matches)
	return b.String(), pages, warns, nil
}

func (l *Loader) tesseractOCR(ctx context.Context, imgPath string) (string, []string, error) {
	// tesseract <img> stdout -l eng
	out, errb, err := l.runner.Run(ctx, l.cfg.Tesseract, imgPath, "stdout", "-l", l.cfg.TesseractLang)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract on %s: %w", filepath.Base(imgPath), err)
	}
	return string(out), nil, nil
}
