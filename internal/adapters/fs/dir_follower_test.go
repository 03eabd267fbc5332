package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a followed file")
		return ""
	}
}

func TestDirFollower_ExistingThenNew(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "run1_ls0002.raw", nil)
	writeFile(t, dir, "run1_ls0001.raw", nil)
	writeFile(t, dir, "notes.txt", nil)

	f, err := NewDirFollower(dir, "", nil)
	if err != nil {
		t.Fatalf("NewDirFollower: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan string)
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx, out) }()

	if got := receive(t, out); filepath.Base(got) != "run1_ls0001.raw" {
		t.Errorf("first = %s", got)
	}
	if got := receive(t, out); filepath.Base(got) != "run1_ls0002.raw" {
		t.Errorf("second = %s", got)
	}

	// Written under a temporary name, then renamed into place.
	tmp := writeFile(t, dir, "run1_ls0003.raw.part", []byte{1})
	if err := os.Rename(tmp, filepath.Join(dir, "run1_ls0003.raw")); err != nil {
		t.Fatal(err)
	}
	if got := receive(t, out); filepath.Base(got) != "run1_ls0003.raw" {
		t.Errorf("third = %s", got)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestDirFollower_BadPattern(t *testing.T) {
	if _, err := NewDirFollower(t.TempDir(), "[", nil); err == nil {
		t.Error("NewDirFollower accepted a malformed pattern")
	}
}

func TestDirFollower_MissingDir(t *testing.T) {
	f, err := NewDirFollower(filepath.Join(t.TempDir(), "missing"), "", nil)
	if err != nil {
		t.Fatalf("NewDirFollower: %v", err)
	}
	if err := f.Run(context.Background(), make(chan string)); err == nil {
		t.Error("Run on a missing directory succeeded")
	}
}
