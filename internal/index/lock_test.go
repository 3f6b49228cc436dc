// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func lockFixture(t *testing.T, content string) (indexPath, lockPath string) {
	t.Helper()
	indexPath = filepath.Join(t.TempDir(), "index.db")
	lockPath = indexPath + ".lock"
	if err := os.WriteFile(lockPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return indexPath, lockPath
}

// exitedPID returns the PID of a child that has already been reaped, so
// it is guaranteed not to name a running process.
func exitedPID(t *testing.T) int {
	t.Helper()
	cmd := exec.Command("true")
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	return cmd.Process.Pid
}

func TestBuildLockReclaimsDeadOwner(t *testing.T) {
	indexPath, lockPath := lockFixture(t, strconv.Itoa(exitedPID(t)))

	release, err := acquireBuildLock(indexPath)
	if err != nil {
		t.Fatalf("acquireBuildLock over dead owner: %v", err)
	}

	data, err := os.ReadFile(lockPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != strconv.Itoa(os.Getpid()) {
		t.Errorf("reclaimed lock records pid %s, want ours", got)
	}

	release()
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Errorf("lock file still present after release: %v", err)
	}
}

func TestBuildLockBlocksLiveOwner(t *testing.T) {
	indexPath, lockPath := lockFixture(t, strconv.Itoa(os.Getpid()))

	_, err := acquireBuildLock(indexPath)
	if err == nil {
		t.Fatal("expected error while a live process holds the lock")
	}
	if !strings.Contains(err.Error(), lockPath) {
		t.Errorf("error does not name the lock file: %v", err)
	}
	if !strings.Contains(err.Error(), "remove the file") {
		t.Errorf("error does not name the recovery step: %v", err)
	}
}

func TestBuildLockKeepsUnreadableOwner(t *testing.T) {
	// A lock caught mid-write or with garbage contents must not be stolen.
	indexPath, _ := lockFixture(t, "not-a-pid")

	if _, err := acquireBuildLock(indexPath); err == nil {
		t.Fatal("expected error when lock contents cannot identify the owner")
	}
}
