//go:build unix

package executor

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no errno", &os.PathError{Op: "exec", Path: "game", Err: os.ErrNotExist}, ""},
		{"lookup miss", &exec.Error{Name: "game", Err: exec.ErrNotFound}, "ENOENT"},
		{"permission", &os.PathError{Op: "fork/exec", Path: "/game", Err: syscall.EACCES}, "EACCES"},
		{"plain", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resultCode(tt.err))
		})
	}
}

func TestOSLauncher_MissingExecutableResultCode(t *testing.T) {
	r, buf := newRunner(OSLauncher{}, false)
	r.Run([]string{"/nonexistent/xyzen-inhibit-test-binary"})
	assert.Contains(t, buf.String(), "(res=ENOENT)")
}

// Signals sent to this process while the child runs must reach the child,
// and the child's own exit code must be forwarded.
func TestRun_RelaysSignalsToChild(t *testing.T) {
	requireShell(t)

	for _, sig := range []syscall.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT} {
		t.Run(sig.String(), func(t *testing.T) {
			ready := filepath.Join(t.TempDir(), "ready")
			script := `trap 'exit 7' HUP INT TERM QUIT; : > "$1"; sleep 5 & wait`

			r, _ := newRunner(OSLauncher{}, false)
			result := make(chan Outcome, 1)
			go func() {
				result <- r.Run([]string{"sh", "-c", script, "sh", ready})
			}()

			require.Eventually(t, func() bool {
				_, err := os.Stat(ready)
				return err == nil
			}, 5*time.Second, 10*time.Millisecond)
			require.NoError(t, syscall.Kill(os.Getpid(), sig))

			select {
			case out := <-result:
				require.NoError(t, out.JoinErr)
				assert.Equal(t, 7, out.ExitCode)
			case <-time.After(10 * time.Second):
				t.Fatal("child did not exit after relayed signal")
			}
		})
	}
}
