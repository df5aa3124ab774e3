// package formatter exports the session log to CSV, Markdown, plain text, JSON and YAML,
// and formats clock and completion times for display.
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported export format.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON, FormatYAML}

// ParseFormat accepts a format name or a common alias ("md", "txt", "yml").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, name)
	}
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// Export renders sessions in format f.
func Export(f Format, sessions []models.Session) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(sessions)
	case FormatMarkdown:
		return ExportToMarkdown(sessions)
	case FormatText:
		return ExportToText(sessions)
	case FormatJSON:
		return ExportToJSON(sessions)
	case FormatYAML:
		return ExportToYAML(sessions)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, f)
	}
}

// ExportToCSV converts sessions to CSV with columns: ID, Duration, Completed At
func ExportToCSV(sessions []models.Session) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Duration", "Completed At"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range sessions {
		record := []string{
			s.ID,
			strconv.Itoa(s.Duration),
			s.CompletedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts sessions to a Markdown report with totals and one "ash pile" per session.
func ExportToMarkdown(sessions []models.Session) ([]byte, error) {
	var buf bytes.Buffer
	count, minutes := totals(sessions)

	buf.WriteString("# Incense Sessions\n\n")
	fmt.Fprintf(&buf, "**Sessions**: %d\n", count)
	fmt.Fprintf(&buf, "**Minutes focused**: %d\n\n", minutes)

	buf.WriteString("## Ash Piles\n\n")
	if len(sessions) == 0 {
		buf.WriteString("_No incense burned yet..._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Duration | Completed |\n")
	buf.WriteString("|---|---|---|\n")
	for i, s := range sessions {
		fmt.Fprintf(&buf, "| %d | %s | %s |\n", i+1, FormatMinutes(s.Duration), FormatCompletedAt(s.CompletedAt, nil))
	}

	return buf.Bytes(), nil
}

// ExportToText converts sessions to plain text format
func ExportToText(sessions []models.Session) ([]byte, error) {
	var buf bytes.Buffer
	count, minutes := totals(sessions)

	fmt.Fprintf(&buf, "Sessions: %d\n", count)
	fmt.Fprintf(&buf, "Minutes focused: %d\n\n", minutes)

	for i, s := range sessions {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, FormatAshPile(s, nil))
	}

	return buf.Bytes(), nil
}

// ExportToJSON writes sessions in the stored wire format, indented.
func ExportToJSON(sessions []models.Session) ([]byte, error) {
	if sessions == nil {
		sessions = []models.Session{}
	}
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToYAML writes sessions as a YAML sequence.
func ExportToYAML(sessions []models.Session) ([]byte, error) {
	if sessions == nil {
		sessions = []models.Session{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sessions); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteExport renders sessions in format f and writes them to path, creating parent directories.
//
// Defaults to incense-sessions{ext} in the working directory.
func WriteExport(f Format, sessions []models.Session, path string) (string, error) {
	if path == "" {
		path = models.SessionsKey + f.Ext()
	}

	data, err := Export(f, sessions)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// FormatClock formats seconds as MM:SS. Minutes are not wrapped into hours.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatMinutes renders a duration the way the ash piles label it, e.g. "25分".
func FormatMinutes(minutes int) string {
	return strconv.Itoa(minutes) + "分"
}

// FormatCompletedAt formats t as "Jan 2, 15:04" in loc (local time when nil).
func FormatCompletedAt(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("Jan 2, 15:04")
}

// FormatAshPile is the one-line label for a session, e.g. "25分 · Oct 19, 09:41".
func FormatAshPile(s models.Session, loc *time.Location) string {
	return FormatMinutes(s.Duration) + " · " + FormatCompletedAt(s.CompletedAt, loc)
}

// RenderMarkdown renders markdown for the terminal using glamour.
//
// Falls back to the raw content when the renderer fails.
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

func totals(sessions []models.Session) (count, minutes int) {
	for _, s := range sessions {
		minutes += s.Duration
	}
	return len(sessions), minutes
}
