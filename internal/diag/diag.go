// Package diag collects and renders source diagnostics produced while
// scanning shader sources.
//
// Diagnostics are plain hcl.Diagnostic values whose Subject points into the
// text that was being scanned. A Reporter keeps the text of every file it has
// seen so that diagnostics can be rendered with the offending line and a
// caret under the reported column.
package diag

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Format selects how a Reporter renders diagnostics.
type Format string

const (
	// FormatCaret renders `path:line:col error: msg` followed by the source
	// line and a caret.
	FormatCaret Format = "caret"
	// FormatHCL renders through hcl.NewDiagnosticTextWriter.
	FormatHCL Format = "hcl"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCaret, FormatHCL:
		return f, nil
	default:
		return "", fmt.Errorf("unknown diagnostic format %q: must be 'caret' or 'hcl'", s)
	}
}

// Reporter receives diagnostics, writes them as they arrive and keeps them
// for later inspection.
type Reporter struct {
	w       io.Writer
	format  Format
	logger  *slog.Logger
	sources map[string][]byte
	diags   hcl.Diagnostics
}

// NewReporter creates a Reporter writing to w. A nil logger falls back to
// slog.Default.
func NewReporter(w io.Writer, format Format, logger *slog.Logger) *Reporter {
	if w == nil {
		w = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	if format == "" {
		format = FormatCaret
	}
	return &Reporter{
		w:       w,
		format:  format,
		logger:  logger,
		sources: make(map[string][]byte),
	}
}

// SetSource records the text that subsequent diagnostics for filename point
// into. Calling it again replaces the previous text.
func (r *Reporter) SetSource(filename, text string) {
	r.sources[filename] = []byte(text)
}

// Report records and renders diagnostics. Render failures are logged and
// otherwise ignored.
func (r *Reporter) Report(diags ...*hcl.Diagnostic) {
	for _, d := range diags {
		if d == nil {
			continue
		}
		r.diags = append(r.diags, d)
		r.logger.Debug("Diagnostic reported.", "severity", severityName(d.Severity), "summary", d.Summary, "subject", subjectString(d))
		if err := r.write(d); err != nil {
			r.logger.Warn("Failed to render diagnostic.", "error", err)
		}
	}
}

func (r *Reporter) write(d *hcl.Diagnostic) error {
	switch r.format {
	case FormatHCL:
		files := make(map[string]*hcl.File, len(r.sources))
		for name, src := range r.sources {
			files[name] = &hcl.File{Bytes: src}
		}
		return hcl.NewDiagnosticTextWriter(r.w, files, 0, false).WriteDiagnostic(d)
	default:
		var src []byte
		if d.Subject != nil {
			src = r.sources[d.Subject.Filename]
		}
		return WriteCaret(r.w, string(src), d)
	}
}

// Diagnostics returns every diagnostic reported so far.
func (r *Reporter) Diagnostics() hcl.Diagnostics { return r.diags }

// ErrorCount returns the number of error diagnostics reported so far.
func (r *Reporter) ErrorCount() int { return r.count(hcl.DiagError) }

// WarningCount returns the number of warning diagnostics reported so far.
func (r *Reporter) WarningCount() int { return r.count(hcl.DiagWarning) }

func (r *Reporter) count(sev hcl.DiagnosticSeverity) int {
	n := 0
	for _, d := range r.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Errorf builds an error diagnostic pointing at pos in filename. length is
// the number of bytes the subject spans on its line, at least one.
func Errorf(filename string, pos hcl.Pos, length int, format string, args ...any) *hcl.Diagnostic {
	return newDiagnostic(hcl.DiagError, filename, pos, length, fmt.Sprintf(format, args...))
}

// Warningf builds a warning diagnostic pointing at pos in filename.
func Warningf(filename string, pos hcl.Pos, length int, format string, args ...any) *hcl.Diagnostic {
	return newDiagnostic(hcl.DiagWarning, filename, pos, length, fmt.Sprintf(format, args...))
}

func newDiagnostic(sev hcl.DiagnosticSeverity, filename string, pos hcl.Pos, length int, summary string) *hcl.Diagnostic {
	if length < 1 {
		length = 1
	}
	end := pos
	end.Column += length
	end.Byte += length
	return &hcl.Diagnostic{
		Severity: sev,
		Summary:  summary,
		Subject: &hcl.Range{
			Filename: filename,
			Start:    pos,
			End:      end,
		},
	}
}

func severityName(sev hcl.DiagnosticSeverity) string {
	switch sev {
	case hcl.DiagError:
		return "error"
	case hcl.DiagWarning:
		return "warning"
	default:
		return "invalid"
	}
}

func subjectString(d *hcl.Diagnostic) string {
	if d.Subject == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", d.Subject.Filename, d.Subject.Start.Line, d.Subject.Start.Column)
}
