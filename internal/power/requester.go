package power

import (
	"context"
	"log/slog"

	"github.com/scienceol/xyzen/inhibit/internal/ui"
)

// Result is the outcome of one inhibition attempt.
type Result struct {
	Inhibitor string
	Err       error
}

// Requester tries every inhibitor once, in order, and never stops early.
type Requester struct {
	caller     Caller
	inhibitors []Inhibitor
	out        *ui.Printer
	logger     *slog.Logger
}

// NewRequester creates a Requester. A nil inhibitors list means Default().
func NewRequester(caller Caller, inhibitors []Inhibitor, out *ui.Printer, logger *slog.Logger) *Requester {
	if inhibitors == nil {
		inhibitors = Default()
	}
	return &Requester{caller: caller, inhibitors: inhibitors, out: out, logger: logger}
}

// InhibitAll issues req to each inhibitor. Failures are reported and
// returned but do not affect the remaining attempts.
func (r *Requester) InhibitAll(ctx context.Context, req Request) []Result {
	results := make([]Result, 0, len(r.inhibitors))
	for _, in := range r.inhibitors {
		results = append(results, r.attempt(ctx, in, req))
	}
	return results
}

func (r *Requester) attempt(ctx context.Context, in Inhibitor, req Request) Result {
	r.out.Debug("Trying to inhibit idle via %s", in.Name())
	err := in.Inhibit(ctx, r.caller, req)
	if err != nil {
		r.out.Error("Failed to inhibit idle via %s: %s", in.Name(), DescribeError(err))
		r.logger.Debug("inhibit_failed", "inhibitor", in.Name(), "error", err)
		return Result{Inhibitor: in.Name(), Err: err}
	}
	r.out.Debug("Inhibited idle via %s", in.Name())
	return Result{Inhibitor: in.Name()}
}
