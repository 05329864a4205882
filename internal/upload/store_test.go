package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveKeepsExtensionAndContents(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	path, err := store.Save(strings.NewReader("audio bytes"), "recording.webm")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Ext(path) != ".webm" {
		t.Errorf("ext = %q, want .webm", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "audio bytes" {
		t.Errorf("contents = %q", data)
	}
}

func TestSaveUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		path, err := store.Save(strings.NewReader("x"), "clip.mp3")
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate path %s", path)
		}
		seen[path] = true
	}
}

func TestRemoveIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	path, err := store.Save(strings.NewReader("x"), "clip.mp3")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after remove")
	}
	// A second remove of the same file is not an error.
	if err := store.Remove(path); err != nil {
		t.Errorf("second remove: %v", err)
	}
	if err := store.Remove(""); err != nil {
		t.Errorf("remove empty path: %v", err)
	}
}

func TestNewStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if _, err := NewStore(dir); err != nil {
		t.Fatalf("new store: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("dir not created: %v", err)
	}
}
