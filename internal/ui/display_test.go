package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDisplayContextForFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d := NewDisplayContext(f)
	if d.IsTTY {
		t.Error("regular file reported as terminal")
	}
	if d.TermWidth != DefaultTermWidth {
		t.Errorf("TermWidth = %d, want %d", d.TermWidth, DefaultTermWidth)
	}
}

func TestAvailableWidth(t *testing.T) {
	d := &DisplayContext{TermWidth: 80}
	if got := d.AvailableWidth(MarkdownRenderMargin); got != 78 {
		t.Errorf("AvailableWidth = %d", got)
	}
	if got := d.AvailableWidth(100); got != 1 {
		t.Errorf("AvailableWidth with oversized margin = %d", got)
	}
}

func TestProgressSilentOffTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "progress.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	p := NewProgress(f, "Checking", 3)
	p.Increment()
	p.Done()
	if info, _ := f.Stat(); info.Size() != 0 {
		t.Errorf("progress wrote %d bytes to a regular file", info.Size())
	}
}

func TestProgressSilentOnBuffer(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "Checking", 3)
	p.Increment()
	p.Done()
	if buf.Len() != 0 {
		t.Errorf("progress wrote %q to a buffer", buf.String())
	}
}
