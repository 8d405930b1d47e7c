// Package responder wires identity state, the dispatcher, the outgoing
// queue, and a transport together behind the single cooperative entry
// point of spec §5: HandlePeriodic. It is the top-level package a consumer
// (examples/linuxraw, cmd/dcpsim) imports; none of the core packages
// import it back.
package responder

import (
	"errors"
	"log/slog"

	"github.com/soypat/pndcp"
	"github.com/soypat/pndcp/dispatch"
	"github.com/soypat/pndcp/frame"
	"github.com/soypat/pndcp/identity"
	"github.com/soypat/pndcp/internal"
	"github.com/soypat/pndcp/scheduler"
)

// Hooks are optional observability callbacks a caller may set to count
// events without the core packages depending on any particular metrics
// library (cmd/dcpsim wires these to Prometheus counters). Any hook left
// nil is simply skipped.
type Hooks struct {
	OnIdentify     func()
	OnGet          func()
	OnSet          func()
	OnResponseSent func()
	OnQueueFull    func()
}

// Responder owns no goroutines and performs no I/O beyond calls to its
// Transport. There is exactly one per device.
type Responder struct {
	Identity  *identity.State
	Dispatch  dispatch.Dispatcher
	Queue     scheduler.Queue
	Transport scheduler.Transport
	Log       *slog.Logger
	Hooks     Hooks

	req, resp frame.Frame
}

// New wires id and t behind a Responder, defaulting log to [slog.Default]
// if nil.
func New(id *identity.State, t scheduler.Transport, log *slog.Logger) *Responder {
	if log == nil {
		log = slog.Default()
	}
	r := &Responder{
		Identity:  id,
		Transport: t,
		Log:       log,
	}
	r.Dispatch = dispatch.Dispatcher{Identity: id, Notify: transportNotifier{t}}
	return r
}

// transportNotifier adapts a scheduler.Transport to dispatch.IPNotifier
// without giving the dispatcher a reference to the transport itself (spec
// §9 "pass the transport an explicit notify capability").
type transportNotifier struct{ t scheduler.Transport }

func (n transportNotifier) UpdateInterface(ip, mask, gateway [4]byte) error {
	return n.t.UpdateInterface(ip, mask, gateway)
}

// HandlePeriodic is the single cooperative entry point of spec §5: it
// polls the transport once for a pending frame, dispatches it if one
// arrived, and drains the outgoing queue against now. Called from a timer
// tick or interrupt bottom half; never blocks, never allocates.
func (r *Responder) HandlePeriodic(now uint64) {
	r.pollOnce(now)
	if err := r.Queue.Drain(r.Transport, now); err != nil {
		r.Log.Debug("drain failed", slog.Any("err", err))
	}
}

func (r *Responder) pollOnce(now uint64) {
	raw, err := r.Transport.RecvNext()
	if err != nil {
		if !errors.Is(err, pndcp.ErrRxWouldBlock) {
			r.Log.Debug("recv error", slog.Any("err", err))
		}
		return
	}
	req, err := frame.Parse(raw)
	if err != nil {
		r.Log.Debug("parse error, dropping frame", slog.Any("err", err))
		return
	}
	r.req = req
	r.Log.Debug("frame received", internal.SlogAddr6("src", &req.SourceMAC), slog.String("service_id", req.Header.ServiceID.String()))
	r.countRequest()
	outcome, err := r.Dispatch.Handle(&r.req, &r.resp)
	if err != nil {
		r.Log.Debug("dispatch error, dropping frame", slog.Any("err", err))
		return
	}
	if outcome == dispatch.OutcomeMutatedOnly {
		ip, _, _ := r.Identity.IP()
		r.Log.Debug("identity state mutated by set request", internal.SlogAddr4("ip", &ip))
		return
	}
	if outcome != dispatch.OutcomeResponse {
		return
	}
	r.scheduleResponse(now)
}

func (r *Responder) countRequest() {
	switch r.req.Header.ServiceID {
	case pndcp.ServiceIDIdentify:
		if r.Hooks.OnIdentify != nil {
			r.Hooks.OnIdentify()
		}
	case pndcp.ServiceIDGet:
		if r.Hooks.OnGet != nil {
			r.Hooks.OnGet()
		}
	case pndcp.ServiceIDSet:
		if r.Hooks.OnSet != nil {
			r.Hooks.OnSet()
		}
	}
}

func (r *Responder) scheduleResponse(now uint64) {
	var buf [pndcp.MaxFrameSize]byte
	n, err := r.resp.Build(buf[:])
	if err != nil {
		r.Log.Debug("response build error", slog.Any("err", err))
		return
	}
	delay := scheduler.Delay(r.req.Header.ResponseDelayFactor)
	if err := r.Queue.Enqueue(buf[:n], now+delay); err != nil {
		r.Log.Debug("response dropped", slog.Any("err", err))
		if r.Hooks.OnQueueFull != nil {
			r.Hooks.OnQueueFull()
		}
		return
	}
	if r.Hooks.OnResponseSent != nil {
		r.Hooks.OnResponseSent()
	}
}
