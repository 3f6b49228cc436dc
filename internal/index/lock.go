// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// acquireBuildLock takes an exclusive lock scoped to the index location so
// that two builds cannot interleave writes to the same persisted index.
// The lock file records the owning PID; a lock left behind by a dead
// process is reclaimed instead of blocking every future build. The
// returned release function removes the lock.
func acquireBuildLock(indexPath string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	lockPath := indexPath + ".lock"
	for attempt := 0; ; attempt++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			f.WriteString(strconv.Itoa(os.Getpid()))
			f.Close()
			return func() { os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("acquiring build lock: %w", err)
		}
		if attempt == 0 && lockOwnerDead(lockPath) {
			os.Remove(lockPath)
			continue
		}
		return nil, fmt.Errorf("index build already in progress (lock held at %s; remove the file if its owning process is gone)", lockPath)
	}
}

// lockOwnerDead reports whether the PID recorded in the lock file no
// longer names a running process. Unreadable or malformed contents are
// treated as a live owner so a mid-write lock is never stolen.
func lockOwnerDead(lockPath string) bool {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return true
	}
	// Signal 0 checks for existence without delivering anything.
	return proc.Signal(syscall.Signal(0)) != nil
}
