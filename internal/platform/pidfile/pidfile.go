package pidfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	apperrors "dwell/internal/platform/errors"
)

// File guards single-instance operation of the tracking daemon.
type File struct {
	path string
}

func New(dataDir string) *File {
	return &File{path: filepath.Join(dataDir, "dwell.pid")}
}

func (f *File) Path() string { return f.path }

// Acquire writes the current pid. It fails with ErrDaemonRunning when a live
// process already holds the file; a stale file from a dead process is replaced.
func (f *File) Acquire() error {
	if pid, err := f.Read(); err == nil && processAlive(pid) {
		return fmt.Errorf("%w: pid %d", apperrors.ErrDaemonRunning, pid)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	return nil
}

func (f *File) Read() (int, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, apperrors.ErrDaemonNotRunning
		}
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("decode pid file: %w", err)
	}
	return pid, nil
}

func (f *File) Release() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove pid file: %w", err)
	}
	return nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
