package power

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

// SessionBus is a Caller backed by a private session bus connection. A
// SessionBus that failed to connect still satisfies Caller: every call
// returns the connection error, so each inhibitor reports it on its own.
type SessionBus struct {
	conn    *dbus.Conn
	err     error
	timeout time.Duration
	logger  *slog.Logger
}

// ConnectSessionBus opens a new connection to the session bus. It never
// returns nil; if the connection failed, every Call returns that error.
func ConnectSessionBus(timeout time.Duration, logger *slog.Logger) *SessionBus {
	b := &SessionBus{timeout: timeout, logger: logger}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		b.err = fmt.Errorf("connect to session bus: %w", err)
		logger.Debug("session_bus_unavailable", "error", err)
		return b
	}
	b.conn = conn
	logger.Debug("session_bus_connected", "names", conn.Names())
	return b
}

// Call invokes m with args and discards the reply.
func (b *SessionBus) Call(ctx context.Context, m Method, args ...any) error {
	if b.err != nil {
		return b.err
	}
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	start := time.Now()
	obj := b.conn.Object(m.Destination, dbus.ObjectPath(m.Path))
	call := obj.CallWithContext(ctx, m.FullName(), 0, args...)
	b.logger.Debug("bus_call",
		"destination", m.Destination,
		"method", m.FullName(),
		"duration", time.Since(start),
		"error", call.Err,
	)
	return call.Err
}

// Close drops the connection, which also releases any inhibition taken
// through it.
func (b *SessionBus) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}

// DescribeError renders D-Bus errors as "<name> with message: <text>" and
// anything else with its plain message.
func DescribeError(err error) string {
	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) {
		return describeDBusError(dbusErr)
	}
	var dbusErrPtr *dbus.Error
	if errors.As(err, &dbusErrPtr) && dbusErrPtr != nil {
		return describeDBusError(*dbusErrPtr)
	}
	return err.Error()
}

func describeDBusError(e dbus.Error) string {
	msg := make([]string, 0, len(e.Body))
	for _, v := range e.Body {
		if s, ok := v.(string); ok {
			msg = append(msg, s)
		}
	}
	return fmt.Sprintf("%s with message: %s", e.Name, strings.Join(msg, "; "))
}
