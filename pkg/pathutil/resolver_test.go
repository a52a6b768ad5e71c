package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	p := New(Config{DataDir: "/data"})

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"database", p.GetDatabasePath(), filepath.Join("/data", "financas.db")},
		{"legacy", p.GetLegacyFile(), filepath.Join("/data", "financas.json")},
		{"export", p.GetExportDir(), filepath.Join("/data", "beancount")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, expected %q", tt.got, tt.expected)
			}
		})
	}
}

func TestNewOverrides(t *testing.T) {
	p := New(Config{
		DatabasePath: "/tmp/x.db",
		LegacyFile:   "/tmp/old.json",
		ExportDir:    "/tmp/out",
	})

	if p.GetDataDir() != "." {
		t.Errorf("GetDataDir() = %q, expected .", p.GetDataDir())
	}
	if p.GetDatabasePath() != "/tmp/x.db" {
		t.Errorf("GetDatabasePath() = %q", p.GetDatabasePath())
	}
	if p.GetLegacyFile() != "/tmp/old.json" {
		t.Errorf("GetLegacyFile() = %q", p.GetLegacyFile())
	}
	if p.GetExportDir() != "/tmp/out" {
		t.Errorf("GetExportDir() = %q", p.GetExportDir())
	}
}

func TestGetMonthFilePath(t *testing.T) {
	p := New(Config{ExportDir: "/out"})

	path, err := p.GetMonthFilePath("2024-01")
	if err != nil {
		t.Fatalf("GetMonthFilePath() error = %v", err)
	}
	expected := filepath.Join("/out", "2024", "2024-01.beancount")
	if path != expected {
		t.Errorf("GetMonthFilePath() = %q, expected %q", path, expected)
	}

	for _, invalid := range []string{"2024", "2024-1", "24-01", "2024-01-05"} {
		if _, err := p.GetMonthFilePath(invalid); err == nil {
			t.Errorf("GetMonthFilePath(%q) expected error", invalid)
		}
	}
}

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	p := New(Config{DataDir: root})

	file := filepath.Join(root, "a", "b", "file.txt")
	if err := p.EnsureParentDir(file); err != nil {
		t.Fatalf("EnsureParentDir() error = %v", err)
	}
	if p.FileExists(file) {
		t.Error("FileExists() = true before the file was written")
	}
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !p.FileExists(file) {
		t.Error("FileExists() = false after the file was written")
	}
}
