package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phanxgames/skillmap"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startWatcher(t *testing.T, path string) <-chan *skillmap.Document {
	t.Helper()
	docs := make(chan *skillmap.Document, 8)
	w, err := New(path, Options{
		OnChange: func(d *skillmap.Document) { docs <- d },
		Debounce: 20 * time.Millisecond,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Close()
	})
	return docs
}

func waitDoc(t *testing.T, docs <-chan *skillmap.Document) *skillmap.Document {
	t.Helper()
	select {
	case d := <-docs:
		return d
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
		return nil
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewRequiresCallback(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "skills.json"), Options{}); err == nil {
		t.Error("expected error without OnChange")
	}
}

func TestNewResolvesAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	w, err := New(path, Options{OnChange: func(*skillmap.Document) {}, Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if !filepath.IsAbs(w.Path()) {
		t.Errorf("Path() = %q, want absolute", w.Path())
	}
}

func TestReloadOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	write(t, path, `{"A": {"skills": {"x": {}}}}`)
	docs := startWatcher(t, path)

	write(t, path, `{"A": {"skills": {"x": {}}}, "B": {"skills": {"y": {}}}}`)

	doc := waitDoc(t, docs)
	if len(doc.Islands) != 2 || doc.Islands[1].Name != "B" {
		t.Errorf("reloaded islands = %+v", doc.Islands)
	}
}

func TestMalformedWriteIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	write(t, path, `{"A": {"skills": {}}}`)
	docs := startWatcher(t, path)

	write(t, path, `{"A": [`)
	select {
	case d := <-docs:
		t.Fatalf("malformed document delivered: %+v", d)
	case <-time.After(200 * time.Millisecond):
	}

	write(t, path, `{"C": {"skills": {"z": {}}}}`)
	doc := waitDoc(t, docs)
	if len(doc.Islands) != 1 || doc.Islands[0].Name != "C" {
		t.Errorf("reloaded islands = %+v", doc.Islands)
	}
}

func TestOtherFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.json")
	write(t, path, `{"A": {"skills": {}}}`)
	docs := startWatcher(t, path)

	write(t, filepath.Join(dir, "notes.txt"), "hello")
	select {
	case d := <-docs:
		t.Fatalf("unrelated file triggered reload: %+v", d)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.yaml")
	write(t, path, "A:\n  skills: {}\n")
	docs := startWatcher(t, path)

	tmp := filepath.Join(dir, ".skills.yaml.tmp")
	write(t, tmp, "Renamed:\n  skills:\n    s: {}\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	doc := waitDoc(t, docs)
	if len(doc.Islands) != 1 || doc.Islands[0].Name != "Renamed" {
		t.Errorf("reloaded islands = %+v", doc.Islands)
	}
}
