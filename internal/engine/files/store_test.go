package files

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateName(t *testing.T) {
	name := GenerateName("scan results.PDF")
	if !strings.HasSuffix(name, ".PDF") {
		t.Errorf("Expected original extension kept, got %s", name)
	}
	if strings.Contains(name, "scan") {
		t.Errorf("Expected user-supplied name discarded, got %s", name)
	}
	if name == GenerateName("scan results.PDF") {
		t.Error("Expected distinct names per call")
	}

	if GenerateName("no-extension") == "" {
		t.Error("Expected a name even without an extension")
	}
}

func TestStore_SaveOpenRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	path, size, err := store.Save("mtg1", "abc123.pdf", strings.NewReader("file contents"))
	if err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if size != int64(len("file contents")) {
		t.Errorf("Expected size %d, got %d", len("file contents"), size)
	}
	if filepath.Base(filepath.Dir(path)) != "mtg1" {
		t.Errorf("Expected meeting-id subdirectory, got %s", path)
	}

	f, err := store.Open(path)
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil || string(data) != "file contents" {
		t.Errorf("Unexpected content %q, err %v", data, err)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected file gone after remove")
	}
}
