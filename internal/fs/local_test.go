package fs

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
}

func TestLocalFS_ReadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a\n", 0o644)
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "b\n", 0o644)

	l := NewLocalFS(dir)
	entries, err := l.ReadDir("")
	if err != nil {
		t.Fatalf("ReadDir('') failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byName := make(map[string]DirEntry)
	for _, e := range entries {
		byName[e.Name] = e
	}
	if !byName["a.txt"].IsRegular() || byName["a.txt"].IsDir {
		t.Errorf("expected a.txt to be a regular file: %+v", byName["a.txt"])
	}
	if !byName["sub"].IsDir {
		t.Errorf("expected sub to be a directory: %+v", byName["sub"])
	}
}

func TestLocalFS_EmptyRootUsesPathAsGiven(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.txt")
	writeFile(t, path, "hello", 0o644)

	l := NewLocalFS("")
	info, err := l.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size != 5 || !info.IsRegular() {
		t.Errorf("unexpected info: %+v", info)
	}

	rc, err := l.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("expected hello, got %q", data)
	}
}

func TestLocalFS_WriteFileReplacesContentAndKeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	writeFile(t, path, "echo hi\r\n", 0o755)

	l := NewLocalFS("")
	if err := l.WriteFile(path, []byte("echo hi\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "echo hi\n" {
		t.Errorf("unexpected content %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("expected mode 0755, got %v", info.Mode().Perm())
	}

	// No temp files may be left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file in %s, got %d entries", dir, len(entries))
	}
}

func TestLocalFS_WriteFileThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	link := filepath.Join(dir, "link.txt")
	writeFile(t, target, "a\r\n", 0o644)
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	l := NewLocalFS("")
	if err := l.WriteFile(link, []byte("a\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fi, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		t.Error("expected link.txt to remain a symlink")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\n" {
		t.Errorf("unexpected target content %q", data)
	}
}

func TestLocalFS_WriteFileMissing(t *testing.T) {
	l := NewLocalFS(t.TempDir())
	if err := l.WriteFile("nope.txt", []byte("x")); err == nil {
		t.Error("expected error writing a file that does not exist")
	}
}
