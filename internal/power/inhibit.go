// Package power asks the desktop session to hold off idle, screensaver and
// suspend while a wrapped command runs.
package power

import "context"

// InhibitFlags selects what a portal inhibition suppresses.
type InhibitFlags uint32

// Flag values understood by org.freedesktop.portal.Inhibit.
const (
	FlagLogout     InhibitFlags = 1
	FlagUserSwitch InhibitFlags = 2
	FlagSuspend    InhibitFlags = 4
	FlagIdle       InhibitFlags = 8
)

// Request describes a single inhibition. It is built once per run and never
// mutated.
type Request struct {
	Reason      string
	Application string
	Flags       InhibitFlags
}

// NewRequest returns an idle inhibition for application.
func NewRequest(reason, application string) Request {
	return Request{Reason: reason, Application: application, Flags: FlagIdle}
}

// Method identifies a D-Bus method on a remote object.
type Method struct {
	Destination string
	Path        string
	Interface   string
	Member      string
}

// FullName returns "interface.member", the form used to call the method.
func (m Method) FullName() string {
	return m.Interface + "." + m.Member
}

// Caller invokes methods on the session bus. Replies are discarded; only
// success or failure is reported.
type Caller interface {
	Call(ctx context.Context, m Method, args ...any) error
}

// Inhibitor is one inhibition mechanism exposed by the desktop.
type Inhibitor interface {
	// Name is a short human-readable label used in diagnostics.
	Name() string

	// Inhibit asks the service to suppress idle behaviour. No cookie is
	// kept: the inhibition ends when the bus connection goes away.
	Inhibit(ctx context.Context, c Caller, req Request) error
}
