// Package pidfile guards against two long-running probe servers sharing
// the same PID file.
package pidfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type PIDFile struct {
	path string
	fd   int
}

func New(path string) *PIDFile {
	return &PIDFile{
		path: path,
		fd:   -1,
	}
}

// Acquire creates the PID file exclusively. A stale file left behind by a
// process that is no longer running is replaced. An empty path is a no-op.
func (f *PIDFile) Acquire() error {
	if f.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create pid file directory %q", filepath.Dir(f.path))
	}

	fd, err := syscall.Open(f.path, syscall.O_CREAT|syscall.O_EXCL|syscall.O_WRONLY, 0o644)
	switch err {
	case syscall.EEXIST:
		if err := f.removeIfStale(); err != nil {
			return err
		}

		return f.Acquire()
	case nil:
		if _, err := syscall.Write(fd, []byte(strconv.Itoa(os.Getpid()))); err != nil {
			_ = syscall.Close(fd)
			return errors.Wrapf(err, "failed to write pid to pid file %q", f.path)
		}
	default:
		return errors.Wrapf(err, "failed to open pid file %q", f.path)
	}

	f.fd = fd
	log.WithField("path", f.path).Info("acquired pid file")
	return nil
}

func (f *PIDFile) removeIfStale() error {
	contents, err := os.ReadFile(f.path)
	if err != nil {
		return errors.Wrapf(err, "failed to read pid file %q", f.path)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil {
		return errors.Wrapf(err, "failed to parse pid file %q", f.path)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return errors.Wrapf(err, "failed to find process with pid %d", pid)
	}

	if err := process.Signal(syscall.Signal(0)); err == nil {
		return fmt.Errorf("pid file %q already exists and contains the PID of a running process", f.path)
	}

	log.WithFields(log.Fields{"path": f.path, "pid": pid}).Info("pid file belongs to a process that is not running; removing it")

	if err := os.Remove(f.path); err != nil {
		return errors.Wrapf(err, "failed to remove pid file %q", f.path)
	}

	return nil
}

func (f *PIDFile) Release() error {
	if f.path == "" || f.fd < 0 {
		return nil
	}

	if err := syscall.Close(f.fd); err != nil {
		return errors.Wrapf(err, "failed to close pid file %q", f.path)
	}
	f.fd = -1

	if err := os.Remove(f.path); err != nil {
		return errors.Wrapf(err, "failed to remove pid file %q", f.path)
	}

	log.WithField("path", f.path).Info("released pid file")
	return nil
}
