package atomicfile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	if err := Save(path, []byte("hello"), 0o600); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("content = %q", data)
	}
	if runtime.GOOS != "windows" {
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("mode = %v", info.Mode().Perm())
		}
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := Save(path, []byte("one"), 0); err != nil {
		t.Fatalf("first Save() error: %v", err)
	}
	if err := Save(path, []byte("two"), 0); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "two" {
		t.Fatalf("content = %q", data)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := Save(path, []byte("x"), 0); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.json" {
		t.Fatalf("unexpected dir contents: %v", entries)
	}
}

func TestSaveRequiresPath(t *testing.T) {
	if err := Save("", []byte("x"), 0); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
