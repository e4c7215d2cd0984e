package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const doc = `[{"id":"g1","name":"Emergency fund","description":"","type":"financial","startDate":"2026-01-01",
"deadline":"2030-12-31","checkInPerson":"","checkInEmail":"","status":"in-progress",
"targetAmount":1000,"currentAmount":250,"category":"financial","createdAt":"2026-01-01T00:00:00Z"}]`

func fileStorage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "goals.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("STORAGE_PATH", path)
	return dir
}

func TestListCmd(t *testing.T) {
	fileStorage(t)

	cmd := ListCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--status", "in-progress"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Emergency fund", "$250.00", "25.0%", "Showing 1 of 1 goals"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestBoardCmd(t *testing.T) {
	fileStorage(t)

	cmd := BoardCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "in-progress (1)") || !strings.Contains(out.String(), "to-do (0)") {
		t.Errorf("board output:\n%s", out.String())
	}
}

func TestExportCmdWritesFile(t *testing.T) {
	dir := fileStorage(t)
	target := filepath.Join(dir, "export.json")

	cmd := ExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "json", "--out", target})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"name":"Emergency fund"`) {
		t.Errorf("export = %s", data)
	}
}

func TestExportCmdRejectsUnknownFormat(t *testing.T) {
	fileStorage(t)

	cmd := ExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "csv"})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil for csv")
	}
}

func TestMigrateRequiresSQLDriver(t *testing.T) {
	fileStorage(t)

	cmd := MigrateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"up"})

	if err := cmd.Execute(); err == nil {
		t.Error("migrate with file driver should fail")
	}
}
