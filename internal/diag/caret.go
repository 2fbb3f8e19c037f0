package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// WriteCaret writes d in the compact compiler style:
//
//	path/to/file.glsl:12:5 error: Dependency not found
//	   12 | #pragma REQUIRE(missing.glsl)
//	      |     ^
//
// src is the text the diagnostic subject points into. When src is empty or
// the subject is missing, only the header line is written.
func WriteCaret(w io.Writer, src string, d *hcl.Diagnostic) error {
	var sb strings.Builder
	sev := severityName(d.Severity)
	if d.Subject == nil {
		fmt.Fprintf(&sb, "%s: %s\n", sev, d.Summary)
		_, err := io.WriteString(w, sb.String())
		return err
	}

	start := d.Subject.Start
	fmt.Fprintf(&sb, "%s:%d:%d %s: %s\n", d.Subject.Filename, start.Line, start.Column, sev, d.Summary)
	if d.Detail != "" {
		fmt.Fprintf(&sb, "      | %s\n", d.Detail)
	}
	if line, ok := lineAt(src, start.Byte); ok {
		col := start.Column
		if col < 1 {
			col = 1
		}
		if col > len(line)+1 {
			col = len(line) + 1
		}
		fmt.Fprintf(&sb, "%5d | %s\n", start.Line, line)
		fmt.Fprintf(&sb, "      | %s^\n", strings.Repeat(" ", col-1))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// lineAt returns the full line of src containing the byte offset.
func lineAt(src string, offset int) (string, bool) {
	if src == "" || offset < 0 || offset > len(src) {
		return "", false
	}
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	lineEnd := strings.IndexByte(src[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(src)
	} else {
		lineEnd += offset
	}
	return strings.TrimSuffix(src[lineStart:lineEnd], "\r"), true
}
