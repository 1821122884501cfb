package fixer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/blackwell-systems/pkginfo/internal/scanner"
)

// WriterOptions configures a Writer.
type WriterOptions struct {
	// MarkerFile is the file name written into each package directory.
	MarkerFile string

	// DryRun counts targets without touching the filesystem.
	DryRun bool

	// Logger receives a debug line per target. Nil discards.
	Logger *log.Logger
}

// Writer renders a template into package directories.
type Writer struct {
	tmpl       *Template
	markerFile string
	dryRun     bool
	logger     *log.Logger
}

// NewWriter returns a Writer that renders tmpl.
func NewWriter(tmpl *Template, opts WriterOptions) *Writer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Writer{
		tmpl:       tmpl,
		markerFile: opts.MarkerFile,
		dryRun:     opts.DryRun,
		logger:     logger,
	}
}

// Targets returns the items WriteAll would write: every package holding
// sources.
func Targets(items []scanner.Item) []scanner.Item {
	return scanner.Sources(items)
}

// MissingTargets returns the items WriteMissing would write: packages
// holding sources but no marker yet.
func MissingTargets(items []scanner.Item) []scanner.Item {
	return scanner.Missing(items)
}

// WriteAll writes a marker into every package holding sources, replacing
// any existing one, and returns the number of files written.
func (w *Writer) WriteAll(items []scanner.Item) (int, error) {
	return w.write(Targets(items))
}

// WriteMissing writes a marker only where one is missing and returns the
// number of files written. Existing markers are left untouched.
func (w *Writer) WriteMissing(items []scanner.Item) (int, error) {
	return w.write(MissingTargets(items))
}

// MarkerPath returns where the marker for item lives.
func (w *Writer) MarkerPath(item scanner.Item) string {
	return filepath.Join(item.Path, w.markerFile)
}

func (w *Writer) write(targets []scanner.Item) (int, error) {
	count := 0
	for _, item := range targets {
		path := w.MarkerPath(item)
		if w.dryRun {
			w.logger.Debug("would write marker", "package", item.Package, "path", path)
			count++
			continue
		}

		content := w.tmpl.Render(item.Package)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return count, fmt.Errorf("writing %s: %w", path, err)
		}
		w.logger.Debug("wrote marker", "package", item.Package, "path", path)
		count++
	}
	return count, nil
}
