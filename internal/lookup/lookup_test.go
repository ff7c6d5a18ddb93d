package lookup

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeScript installs an executable shell script into dir.
func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatalf("Failed to write script %s: %v", name, err)
	}
}

func TestParseNeeded(t *testing.T) {
	out := "/srv/a.txt: \"/srv/.zfs/snapshot/s1/a.txt\"\n" +
		"\n" +
		"/srv/b.txt: no snapshot\n"

	got := parseNeeded(out)
	want := []string{"/srv/a.txt", "/srv/b.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseNeededEmpty(t *testing.T) {
	if got := parseNeeded(""); got != nil {
		t.Errorf("Expected nil for empty output, got %v", got)
	}
	if got := parseNeeded("\n   \n"); got != nil {
		t.Errorf("Expected nil for blank output, got %v", got)
	}
}

func TestParseNeededVeryLongLine(t *testing.T) {
	// A line well past any buffered-scanner token limit must not stop the
	// parse or drop the lines after it.
	long := "/srv/" + strings.Repeat("x", 128*1024)
	out := long + ": huge annotation\n/srv/after.txt: needs snapshot\n"

	got := parseNeeded(out)
	want := []string{long, "/srv/after.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %d paths ending in %q, got %d", len(want), want[1], len(got))
	}
}

func TestParseNeededNoColon(t *testing.T) {
	// A line without a colon is still a path.
	got := parseNeeded("/srv/plain\n")
	want := []string{"/srv/plain"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNeedsSnapshot(t *testing.T) {
	tmpDir := t.TempDir()
	writeScript(t, tmpDir, "fakehttm", `
[ "$1" = "--last-snap=no-ditto" ] || exit 2
[ "$2" = "--not-so-pretty" ] || exit 2
shift 2
for p in "$@"; do
  printf '%s: needs snapshot\n' "$p"
done
`)
	t.Setenv("PATH", tmpDir)

	client := NewClient("fakehttm")
	got, err := client.NeedsSnapshot([]string{"/srv/a.txt", "/srv/a.txt", "/srv/b.txt"})
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}

	// Duplicates pass through; output order is preserved.
	want := []string{"/srv/a.txt", "/srv/a.txt", "/srv/b.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNeedsSnapshotToolFailure(t *testing.T) {
	tmpDir := t.TempDir()
	writeScript(t, tmpDir, "fakehttm", `
echo "mount table unreadable" >&2
exit 1
`)
	t.Setenv("PATH", tmpDir)

	client := NewClient("fakehttm")
	_, err := client.NeedsSnapshot([]string{"/srv/a.txt"})
	if err == nil {
		t.Fatal("Expected error for non-zero tool exit, got nil")
	}
}

func TestNeedsSnapshotEmptyPathSet(t *testing.T) {
	tmpDir := t.TempDir()
	marker := filepath.Join(tmpDir, "invoked")
	writeScript(t, tmpDir, "fakehttm", fmt.Sprintf(": > %s\n", marker))
	t.Setenv("PATH", tmpDir)

	client := NewClient("fakehttm")
	got, err := client.NeedsSnapshot(nil)
	if err != nil {
		t.Fatalf("Failed on empty path set: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
	if _, err := os.Stat(marker); err == nil {
		t.Error("Lookup tool must not be invoked for an empty path set")
	}
}
