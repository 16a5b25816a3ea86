package executor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Launcher creates child processes.
type Launcher interface {
	// Start launches argv[0] with argv[1:] as arguments. The child inherits
	// the caller's environment and standard streams.
	Start(argv []string) (Process, error)
}

// Process is a started child owned by a single Runner until Wait returns.
type Process interface {
	Pid() int
	Signal(sig os.Signal) error
	// Wait blocks until the child exits and returns its exit code. A non-nil
	// error means the status could not be collected; the code is then a best
	// effort value.
	Wait() (int, error)
}

// OSLauncher starts real processes via os/exec.
type OSLauncher struct{}

func (OSLauncher) Start(argv []string) (Process, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &osProcess{cmd: cmd}, nil
}

type osProcess struct {
	cmd *exec.Cmd
}

func (p *osProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *osProcess) Signal(sig os.Signal) error {
	return p.cmd.Process.Signal(sig)
}

func (p *osProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// A signalled child reports 128+signal, as shells do. This departs from
		// the subprocess_join behaviour of reporting a generic failure code of 1.
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal()), nil
		}
		return exitErr.ExitCode(), nil
	}

	code := 0
	if st := p.cmd.ProcessState; st != nil && st.ExitCode() > 0 {
		code = st.ExitCode()
	}
	return code, fmt.Errorf("wait: %w", err)
}
