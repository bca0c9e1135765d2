package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/braillegrid/internal/braille"
)

func testCanvas(t *testing.T) *braille.Canvas {
	t.Helper()
	c, err := braille.New(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	c.Set(0, 0)
	c.Set(1, 0)
	c.Set(5, 6)
	return c
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	c := testCanvas(t)
	id, err := st.Save("test", "unit", c)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Error("expected non-empty snapshot id")
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "test" || meta.Source != "unit" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.CellWidth != 4 || meta.CellHeight != 2 {
		t.Errorf("expected 4x2 cells, got %dx%d", meta.CellWidth, meta.CellHeight)
	}
	if meta.Lit != 3 || meta.Cells != c.Len() {
		t.Errorf("expected 3 lit of %d cells, got %d of %d", c.Len(), meta.Lit, meta.Cells)
	}

	restored, err := st.Canvas(id)
	if err != nil {
		t.Fatalf("canvas failed: %v", err)
	}
	if !bytes.Equal(restored.Cells(), c.Cells()) {
		t.Errorf("expected cells %v, got %v", c.Cells(), restored.Cells())
	}
	if restored.String() != c.String() {
		t.Errorf("rendering differs after restore")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	snaps, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("expected 0 snapshots, got %d", len(snaps))
	}

	for _, name := range []string{"first", "second"} {
		if _, err := st.Save(name, "", testCanvas(t)); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	snaps, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Name != "first" {
		t.Errorf("expected oldest first, got %s", snaps[0].Name)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	snaps, err := st.List()
	if err != nil || len(snaps) != 0 {
		t.Errorf("expected empty list, got %v, %v", snaps, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	id, err := st.Save("my canvas/1", "", testCanvas(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	dir := filepath.Join(tmpDir, id)
	if filepath.Dir(dir) != tmpDir {
		t.Fatalf("snapshot escaped base dir: %s", dir)
	}
	for _, name := range []string{metadataFile, cellsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.Canvas("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreCorruptCells(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	id, err := st.Save("bad", "", testCanvas(t))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmpDir, id, cellsFile)
	if err := os.WriteFile(path, []byte("index,mask\n0,999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Canvas(id); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	st := New(t.TempDir())
	id, err := st.Save("gone", "", testCanvas(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := st.Load(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreSaveFailureLeavesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	fixed := time.Unix(0, 42)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	// an existing snapshot with the same id blocks the final rename
	taken := filepath.Join(tmpDir, "clash_42")
	if err := os.MkdirAll(taken, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(taken, "keep"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save("clash", "", testCanvas(t)); err == nil {
		t.Fatal("expected save onto an existing snapshot to fail")
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "clash_42" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the existing snapshot to remain, got %v", names)
	}
	if _, err := os.Stat(filepath.Join(taken, "keep")); err != nil {
		t.Errorf("existing snapshot was modified: %v", err)
	}
}

func TestStoreListSkipsStaging(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if _, err := st.Save("real", "", testCanvas(t)); err != nil {
		t.Fatal(err)
	}

	staging := filepath.Join(tmpDir, ".half_1-123")
	if err := os.MkdirAll(staging, 0755); err != nil {
		t.Fatal(err)
	}
	meta := []byte(`{"id":"half_1","name":"half","cell_width":4}`)
	if err := os.WriteFile(filepath.Join(staging, metadataFile), meta, 0644); err != nil {
		t.Fatal(err)
	}

	snaps, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].Name != "real" {
		t.Errorf("expected only the finished snapshot, got %+v", snaps)
	}
}
