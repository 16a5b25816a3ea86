package power

import (
	"context"

	"github.com/godbus/dbus/v5"
)

var (
	PortalInhibit = Method{
		Destination: "org.freedesktop.portal.Desktop",
		Path:        "/org/freedesktop/portal/desktop",
		Interface:   "org.freedesktop.portal.Inhibit",
		Member:      "Inhibit",
	}
	ScreenSaverInhibit = Method{
		Destination: "org.freedesktop.ScreenSaver",
		Path:        "/org/freedesktop/ScreenSaver",
		Interface:   "org.freedesktop.ScreenSaver",
		Member:      "Inhibit",
	}
	PowerManagementInhibit = Method{
		Destination: "org.freedesktop.PowerManagement.Inhibit",
		Path:        "/org/freedesktop/PowerManagement/Inhibit",
		Interface:   "org.freedesktop.PowerManagement.Inhibit",
		Member:      "Inhibit",
	}
)

// Default returns the inhibitors in the order they are tried: portal,
// screensaver, power management.
func Default() []Inhibitor {
	return []Inhibitor{Portal{}, ScreenSaver{}, PowerManagement{}}
}

// Portal uses the xdg-desktop-portal Inhibit interface.
type Portal struct{}

func (Portal) Name() string { return "inhibit portal" }

func (Portal) Inhibit(ctx context.Context, c Caller, req Request) error {
	options := map[string]dbus.Variant{
		"reason": dbus.MakeVariant(req.Reason),
	}
	// Empty window id: the portal falls back to the parent window.
	return c.Call(ctx, PortalInhibit, "", uint32(req.Flags), options)
}

// ScreenSaver uses the legacy org.freedesktop.ScreenSaver service.
type ScreenSaver struct{}

func (ScreenSaver) Name() string { return "screensaver" }

// Arguments are sent as (reason, application).
func (ScreenSaver) Inhibit(ctx context.Context, c Caller, req Request) error {
	return c.Call(ctx, ScreenSaverInhibit, req.Reason, req.Application)
}

// PowerManagement uses the legacy org.freedesktop.PowerManagement service.
type PowerManagement struct{}

func (PowerManagement) Name() string { return "power management" }

func (PowerManagement) Inhibit(ctx context.Context, c Caller, req Request) error {
	return c.Call(ctx, PowerManagementInhibit, req.Reason, req.Application)
}
