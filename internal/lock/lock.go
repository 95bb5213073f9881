// Package lock keeps two weeklit sessions from writing the same store.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/weeklit/internal/constants"
	"github.com/julianstephens/weeklit/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live weeklit process holds the lock.
var ErrLocked = errors.New("another weeklit session is running")

type Lock struct {
	path string
}

// Path returns the lockfile location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Acquire creates the lockfile in dir holding the current pid. The file is
// created exclusively, so of two sessions starting together only one wins.
// A lockfile left by a process that has exited is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	path := Path(dir)
	self := getpidFunc()
	for range 2 {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(self) + "\n")
			if cerr := f.Close(); werr == nil {
				werr = cerr
			}
			if werr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", werr)
			}
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		// An empty file belongs to a session that has not written its pid yet.
		if content, err := os.ReadFile(path); err == nil && len(strings.TrimSpace(string(content))) == 0 {
			return nil, fmt.Errorf("%w (lockfile being written)", ErrLocked)
		}
		pid, held := Holder(dir)
		if held && pid == self {
			return &Lock{path: path}, nil
		}
		if held {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		logger.Debug("Removing stale lockfile", "path", path)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w (lockfile recreated during acquire)", ErrLocked)
}

// Holder reports the pid of the live weeklit process holding the lock in dir.
func Holder(dir string) (int, bool) {
	content, err := os.ReadFile(Path(dir))
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		logger.Warn("Ignoring malformed lockfile", "path", Path(dir))
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, false
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return 0, false
	}

	return pid, true
}

// Release removes the lockfile. Releasing twice is harmless.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
