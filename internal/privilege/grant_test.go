package privilege

import (
	"bytes"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"
)

func TestGrantRefusesRoot(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("not running as root")
	}

	tmpDir := t.TempDir()
	marker := filepath.Join(tmpDir, "invoked")
	script := filepath.Join(tmpDir, "sudo")
	body := fmt.Sprintf("#!/bin/sh\n: > %s\nexit 0\n", marker)
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatalf("Failed to write fake sudo: %v", err)
	}
	t.Setenv("PATH", tmpDir)

	var out bytes.Buffer
	if err := Grant(&out); err == nil {
		t.Fatal("Expected error when run as root, got nil")
	}
	if _, err := os.Stat(marker); err == nil {
		t.Error("No pool enumeration may happen when the flow is refused")
	}
}

func TestGrantAllPools(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root; grant flow refuses root by design")
	}

	current, err := user.Current()
	if err != nil {
		t.Fatalf("Failed to get current user: %v", err)
	}

	tmpDir := t.TempDir()
	allowLog := filepath.Join(tmpDir, "allow.log")
	script := filepath.Join(tmpDir, "sudo")
	body := fmt.Sprintf(`#!/bin/sh
if [ "$2" = "list" ]; then
  echo NAME
  echo tank
  echo backup
  exit 0
fi
echo "$@" >> %s
exit 0
`, allowLog)
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatalf("Failed to write fake sudo: %v", err)
	}
	t.Setenv("PATH", tmpDir)

	var out bytes.Buffer
	if err := Grant(&out); err != nil {
		t.Fatalf("Failed to grant: %v", err)
	}

	data, err := os.ReadFile(allowLog)
	if err != nil {
		t.Fatalf("Failed to read allow log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 grants, got %d: %v", len(lines), lines)
	}
	wantFirst := fmt.Sprintf("zfs allow %s mount,snapshot tank", current.Username)
	if lines[0] != wantFirst {
		t.Errorf("Expected %q, got %q", wantFirst, lines[0])
	}

	if !strings.Contains(out.String(), "tank") || !strings.Contains(out.String(), "backup") {
		t.Errorf("Expected pool report, got: %q", out.String())
	}
}

func TestGrantPoolFailureIsFatal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root; grant flow refuses root by design")
	}

	tmpDir := t.TempDir()
	script := filepath.Join(tmpDir, "sudo")
	body := `#!/bin/sh
if [ "$2" = "list" ]; then
  echo NAME
  echo tank
  exit 0
fi
echo "permission denied" >&2
exit 1
`
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatalf("Failed to write fake sudo: %v", err)
	}
	t.Setenv("PATH", tmpDir)

	var out bytes.Buffer
	if err := Grant(&out); err == nil {
		t.Fatal("Expected error when a pool grant fails, got nil")
	}
}
