package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/reusee/taipas/cmds"
)

func TestFileCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pas", "b.pas", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("program P; begin end."), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "d.pas"), 0755); err != nil {
		t.Fatal(err)
	}

	files = nil
	defer func() {
		files = nil
	}()
	if err := cmds.Execute([]string{
		"-file", filepath.Join(dir, "*.pas"),
		"-f", filepath.Join(dir, "missing.pas"),
	}); err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.pas"),
		filepath.Join(dir, "b.pas"),
		filepath.Join(dir, "missing.pas"),
	}
	if !slices.Equal(files, want) {
		t.Fatalf("got %v", files)
	}
}
