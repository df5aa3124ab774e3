package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/shared"
	th "github.com/desertthunder/incense/internal/testing"
	"gopkg.in/yaml.v3"
)

func testSessions() []models.Session {
	return []models.Session{
		models.NewSession("0192a1f0-0000-7000-8000-000000000002", 45, time.Date(2026, 10, 19, 9, 41, 0, 0, time.UTC)),
		models.NewSession("0192a1f0-0000-7000-8000-000000000001", 25, time.Date(2026, 10, 18, 21, 5, 0, 0, time.UTC)),
	}
}

func TestExporters(t *testing.T) {
	sessions := testSessions()

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sessions)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d: %s", len(lines), data)
		}
		if lines[0] != "ID,Duration,Completed At" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != "0192a1f0-0000-7000-8000-000000000002,45,2026-10-19T09:41:00Z" {
			t.Errorf("unexpected first record: %s", lines[1])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sessions)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"# Incense Sessions", "**Sessions**: 2", "**Minutes focused**: 70", "## Ash Piles", "| 1 | 45分 |", "| 2 | 25分 |"} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown empty", func(t *testing.T) {
		data, _ := ExportToMarkdown(nil)
		if !strings.Contains(string(data), "No incense burned yet...") {
			t.Errorf("expected empty state, got: %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sessions)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Sessions: 2") || !strings.Contains(output, "Minutes focused: 70") {
			t.Errorf("Text missing totals, got: %s", output)
		}
		if !strings.Contains(output, "1. 45分 · ") || !strings.Contains(output, "2. 25分 · ") {
			t.Errorf("Text missing sessions, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sessions)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(decoded))
		}
		if decoded[0]["completedAt"] != "2026-10-19T09:41:00Z" {
			t.Errorf("expected completedAt key in wire format, got %v", decoded[0])
		}

		empty, _ := ExportToJSON(nil)
		if strings.TrimSpace(string(empty)) != "[]" {
			t.Errorf("expected [], got %s", empty)
		}
	})

	t.Run("ExportToYAML", func(t *testing.T) {
		data, err := ExportToYAML(sessions)
		if err != nil {
			t.Fatalf("ExportToYAML failed: %v", err)
		}

		var decoded []models.Session
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if len(decoded) != 2 || decoded[1].Duration != 25 {
			t.Errorf("unexpected decode: %+v", decoded)
		}
		if !strings.Contains(string(data), "completedAt:") {
			t.Errorf("expected completedAt key, got: %s", data)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tt := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: "MD", want: FormatMarkdown},
		{in: "txt", want: FormatText},
		{in: " json ", want: FormatJSON},
		{in: "yml", want: FormatYAML},
		{in: "xlsx", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				if !errors.Is(err, shared.ErrInvalidFlag) {
					t.Errorf("expected ErrInvalidFlag, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("expected %s, got %s (%v)", tc.want, got, err)
			}
		})
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("writes every format", func(t *testing.T) {
		dir := t.TempDir()
		for _, f := range Formats {
			path := filepath.Join(dir, "nested", "sessions"+f.Ext())
			got, err := WriteExport(f, testSessions(), path)
			if err != nil {
				t.Fatalf("%s: WriteExport failed: %v", f, err)
			}
			if got != path {
				t.Errorf("expected %s, got %s", path, got)
			}
			th.AssertFileExists(t, path)
		}
	})

	t.Run("default filename", func(t *testing.T) {
		t.Chdir(t.TempDir())

		path, err := WriteExport(FormatMarkdown, testSessions(), "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if path != "incense-sessions.md" {
			t.Errorf("expected incense-sessions.md, got %s", path)
		}
		if !strings.Contains(th.MustReadFile(t, path), "# Incense Sessions") {
			t.Error("expected markdown content")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := WriteExport(Format("xml"), nil, filepath.Join(t.TempDir(), "x")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestFormatters(t *testing.T) {
	t.Run("FormatClock", func(t *testing.T) {
		tt := []struct {
			seconds int
			want    string
		}{
			{1500, "25:00"},
			{2700, "45:00"},
			{599, "09:59"},
			{1, "00:01"},
			{0, "00:00"},
			{-5, "00:00"},
		}
		for _, tc := range tt {
			if got := FormatClock(tc.seconds); got != tc.want {
				t.Errorf("FormatClock(%d): expected %s, got %s", tc.seconds, tc.want, got)
			}
		}
	})

	t.Run("FormatAshPile", func(t *testing.T) {
		got := FormatAshPile(testSessions()[0], time.UTC)
		if got != "45分 · Oct 19, 09:41" {
			t.Errorf("expected 45分 · Oct 19, 09:41, got %s", got)
		}

		tokyo := time.FixedZone("JST", 9*60*60)
		if got := FormatCompletedAt(testSessions()[1].CompletedAt, tokyo); got != "Oct 19, 06:05" {
			t.Errorf("expected Oct 19, 06:05, got %s", got)
		}
	})

	t.Run("RenderMarkdown", func(t *testing.T) {
		if got := RenderMarkdown("   ", 40); got != "" {
			t.Errorf("expected empty output, got %q", got)
		}

		got := RenderMarkdown("# Incense Sessions\n\n**Sessions**: 2\n", 40)
		if !strings.Contains(got, "Incense Sessions") || !strings.Contains(got, "Sessions") {
			t.Errorf("expected rendered content, got %q", got)
		}
	})
}
