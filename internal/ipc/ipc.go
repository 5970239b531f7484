// Package ipc locates the control socket of a running "clipring watch" so the
// list/restore/clear sub-commands can reach it.
//
// The control channel is plain gRPC served over a Unix domain socket. The
// monitor listens on the socket; the CLI sub-commands check for it before
// dialing.
package ipc

import (
	"net"
	"os"
	"path/filepath"
	"time"
)

const socketName = "clipring.sock"

// SocketPath returns the path of the control socket.
//
//   - $CLIPRING_SOCKET if set
//   - $XDG_RUNTIME_DIR/clipring.sock on Linux desktops
//   - $TMPDIR/clipring.sock otherwise
func SocketPath() string {
	if s := os.Getenv("CLIPRING_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, socketName)
	}
	return filepath.Join(os.TempDir(), socketName)
}

// IsRunning reports whether a monitor appears to be listening on the socket.
// It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.DialTimeout("unix", SocketPath(), time.Second)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates a listener on the socket path, removing any stale socket
// file first. The socket file is removed again when the listener is closed.
func Listen() (net.Listener, error) {
	path := SocketPath()
	// Remove stale socket from a previous (crashed) run.
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	// Owner-only: anyone who can connect can read the history.
	_ = os.Chmod(path, 0o600)
	return ln, nil
}

// Target returns the gRPC dial target for the socket.
func Target() string {
	return "unix://" + SocketPath()
}
