package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/braillegrid/internal/braille"
)

var (
	// ErrNotFound indicates an unknown snapshot id.
	ErrNotFound = errors.New("storage: snapshot not found")

	// ErrCorrupt indicates a snapshot whose files disagree or cannot be parsed.
	ErrCorrupt = errors.New("storage: corrupt snapshot")
)

const (
	metadataFile = "metadata.json"
	cellsFile    = "cells.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Snapshot describes one saved canvas.
type Snapshot struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	CellWidth  int       `json:"cell_width"`
	CellHeight int       `json:"cell_height"`
	Cells      int       `json:"cells"`
	Lit        int       `json:"lit"`
}

// now is the snapshot clock.
var now = time.Now

// Save writes the canvas masks and their metadata under a new id. The files
// are staged in a hidden directory that is renamed into place once complete,
// so a failed save leaves nothing behind.
func (s *Store) Save(name, source string, c *braille.Canvas) (id string, err error) {
	ts := now()
	id = fmt.Sprintf("%s_%d", sanitize(name), ts.UnixNano())

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	tmp, err := os.MkdirTemp(s.baseDir, "."+id+"-")
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(tmp)
		}
	}()

	meta := Snapshot{
		ID:         id,
		Name:       name,
		Source:     source,
		Timestamp:  ts,
		CellWidth:  c.Width(),
		CellHeight: c.Height(),
		Cells:      c.Len(),
		Lit:        c.Lit(),
	}
	if err := writeMetadata(filepath.Join(tmp, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCells(filepath.Join(tmp, cellsFile), c.Cells()); err != nil {
		return "", err
	}

	if err := os.Rename(tmp, filepath.Join(s.baseDir, id)); err != nil {
		return "", err
	}
	return id, nil
}

func writeMetadata(path string, meta Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCells(path string, cells []uint8) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"index", "mask"}); err != nil {
		f.Close()
		return err
	}
	for i, m := range cells {
		if err := w.Write([]string{strconv.Itoa(i), strconv.Itoa(int(m))}); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, err
	}

	snaps := make([]Snapshot, 0)
	for _, entry := range entries {
		// hidden entries are saves still being staged
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.Before(snaps[j].Timestamp) })
	return snaps, nil
}

func (s *Store) Load(id string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Snapshot
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}

	return &meta, nil
}

// Canvas rebuilds the saved canvas of snapshot id.
func (s *Store) Canvas(id string) (*braille.Canvas, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, id, cellsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	if len(records) > 0 {
		records = records[1:]
	}

	cells := make([]uint8, meta.Cells)
	for _, record := range records {
		i, err := strconv.Atoi(record[0])
		if err != nil || i < 0 || i >= len(cells) {
			return nil, fmt.Errorf("%w: %s: bad index %q", ErrCorrupt, id, record[0])
		}
		m, err := strconv.ParseUint(record[1], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad mask %q", ErrCorrupt, id, record[1])
		}
		cells[i] = uint8(m)
	}

	c, err := braille.Restore(meta.CellWidth, meta.CellHeight, cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	return c, nil
}

// Delete removes snapshot id from disk.
func (s *Store) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, id))
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "canvas"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
}
