package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/mindcalm/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	pingFunc        = Ping

	ErrAlreadyRunning = errors.New("a mindcalm server is already running")
)

// Lockfile records the port and pid of a running server as "port|pid".
type Lockfile struct {
	path string
}

// LockfileIn places the lockfile in dir, normally the config directory.
func LockfileIn(dir string) *Lockfile {
	return &Lockfile{path: filepath.Join(dir, constants.ServerLockfileName)}
}

func (l *Lockfile) Path() string { return l.path }

// Running reports the port of a live server owning the lockfile. A missing,
// malformed or stale lockfile yields an error.
func (l *Lockfile) Running() (int, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return 0, errors.New("mindcalm server is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.New("invalid process ID in lockfile")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, errors.New("mindcalm server process not running")
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return 0, fmt.Errorf("process with PID %d is not mindcalm (is %s)", pid, process.Executable())
	}

	return port, nil
}

// Acquire claims the lockfile for this process. It fails while another live
// server owns it and answers its health endpoint; stale lockfiles are
// overwritten.
func (l *Lockfile) Acquire(ctx context.Context, port int) error {
	if running, err := l.Running(); err == nil {
		if err := pingFunc(ctx, running); err == nil {
			return fmt.Errorf("%w on port %d", ErrAlreadyRunning, running)
		}
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	content := fmt.Sprintf("%d|%d", port, getpidFunc())
	if err := os.WriteFile(l.path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}

// Release removes the lockfile if this process still owns it.
func (l *Lockfile) Release() error {
	content, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) == 2 && parts[1] == strconv.Itoa(getpidFunc()) {
		return os.Remove(l.path)
	}
	return nil
}

// Ping checks that the server on port answers its health endpoint.
func Ping(ctx context.Context, port int) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/health", port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("health check failed with status %d: %s", res.StatusCode, string(body))
}
