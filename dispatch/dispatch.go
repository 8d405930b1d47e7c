// Package dispatch implements the Request Dispatcher (spec §4.5):
// classifying a parsed DCP frame as an Identify discovery, a Get, or a Set
// request, mutating [identity.State] accordingly, and building the
// response frame (if any) the Response Scheduler should enqueue.
package dispatch

import (
	"github.com/soypat/pndcp"
	"github.com/soypat/pndcp/block"
	"github.com/soypat/pndcp/frame"
	"github.com/soypat/pndcp/identity"
	"github.com/soypat/pndcp/option"
)

// IPNotifier is the "notify" capability of spec §9 ("break this by passing
// the transport an explicit notify capability rather than making the
// dispatcher own the transport"): the one thing a Set of IP parameters
// needs from the transport, kept separate so the dispatcher never holds a
// back-reference to its caller.
type IPNotifier interface {
	UpdateInterface(ip, mask, gateway [4]byte) error
}

// SupportedOptions enumerates the (option, suboption) pairs this core can
// answer in an Identify or Get response, resolving spec §9 Open Question
// (b) in favor of enumeration (see SPEC_FULL.md "DeviceOptions
// enumeration"). Order matches the fixed response block order below, minus
// DeviceOptions itself.
var SupportedOptions = [6][2]byte{
	{byte(option.DeviceProperties), byte(option.SubNameOfStation)},
	{byte(option.DeviceProperties), byte(option.SubDeviceVendor)},
	{byte(option.DeviceProperties), byte(option.SubDeviceRole)},
	{byte(option.DeviceProperties), byte(option.SubDeviceID)},
	{byte(option.DeviceProperties), byte(option.SubDeviceInstance)},
	{byte(option.IP), byte(option.SubIPParameter)},
}

// Dispatcher ties identity state to a transport's IP-update notification
// and classifies/answers incoming frames. It holds no buffers of its own;
// callers supply the response frame to fill.
type Dispatcher struct {
	Identity *identity.State
	Notify   IPNotifier
}

// Outcome reports what Handle did with a request, mirroring the state
// machine of spec §4.5 ("Received → Classified → ... → Sent/Dropped").
type Outcome int

const (
	// OutcomeDropped means the frame was not a recognized request, or was
	// malformed, and nothing further happens.
	OutcomeDropped Outcome = iota
	// OutcomeMutatedOnly means the request was a Set: its NameOfStation and
	// IP blocks (if any) were applied to identity state, other blocks were
	// ignored, and no response is sent (Set requests never generate a DCP response in this core, per
	// spec §4.5 "Other Set targets are accepted as NotSupported silently" —
	// there is no response channel for Set in the wire format consumed
	// here).
	OutcomeMutatedOnly
	// OutcomeResponse means resp was populated and should be handed to the
	// scheduler.
	OutcomeResponse
)

// Handle classifies req and, for Identify/Get requests, builds resp in
// place (resp is reset internally; callers reuse one zero-valued
// frame.Frame across calls to avoid allocation). It returns the outcome;
// the error result is always nil. The scheduler reads the request's
// ResponseDelayFactor from req itself.
func (d *Dispatcher) Handle(req *frame.Frame, resp *frame.Frame) (Outcome, error) {
	switch {
	case isIdentifyRequest(req):
		d.buildIdentityResponse(req, resp)
		return OutcomeResponse, nil
	case req.FrameID == pndcp.FrameIDGetSet && req.Header.ServiceID == pndcp.ServiceIDSet:
		d.applySet(req)
		return OutcomeMutatedOnly, nil
	case req.FrameID == pndcp.FrameIDGetSet && req.Header.ServiceID == pndcp.ServiceIDGet:
		d.buildGetResponse(req, resp)
		return OutcomeResponse, nil
	default:
		return OutcomeDropped, nil
	}
}

// isIdentifyRequest reports whether req is an Identify discovery request:
// FrameID=Request, ServiceID=Identify, destination = the DCP multicast
// address, and exactly one All-selector block (spec §4.5 "Hello-discovery").
func isIdentifyRequest(req *frame.Frame) bool {
	return req.FrameID == pndcp.FrameIDRequest &&
		req.Header.ServiceID == pndcp.ServiceIDIdentify &&
		req.DestinationMAC == pndcp.DCPMulticastMAC &&
		req.NumBlocks == 1 &&
		req.Blocks[0].Kind == option.KindAll
}

func (d *Dispatcher) applySet(req *frame.Frame) {
	for i := 0; i < req.NumBlocks; i++ {
		b := &req.Blocks[i]
		switch b.Kind {
		case option.KindNameOfStation:
			d.Identity.SetName(b.Name())
		case option.KindIPParameter, option.KindFullIPSuite:
			d.Identity.SetIP(b.IP, b.Mask, b.Gateway)
			if d.Notify != nil {
				d.Notify.UpdateInterface(b.IP, b.Mask, b.Gateway)
			}
		}
	}
}

// buildIdentityResponse fills resp with every supported block in the fixed
// order of spec §8 scenario 2: DeviceOptions, NameOfStation, DeviceVendor,
// DeviceRole, DeviceId, DeviceInstance, IpParameter.
func (d *Dispatcher) buildIdentityResponse(req *frame.Frame, resp *frame.Frame) {
	d.startResponse(req, resp)
	d.appendAllSupportedBlocks(resp)
}

// buildGetResponse mirrors Identify for an All selector, or echoes back
// only the blocks whose (option, suboption) pair the request named
// (SPEC_FULL.md "Get response blocks"); a requested pair this device does
// not store is silently omitted.
func (d *Dispatcher) buildGetResponse(req *frame.Frame, resp *frame.Frame) {
	d.startResponse(req, resp)
	if req.NumBlocks == 1 && req.Blocks[0].Kind == option.KindAll {
		d.appendAllSupportedBlocks(resp)
		return
	}
	for i := 0; i < req.NumBlocks; i++ {
		want := req.Blocks[i]
		for _, pair := range SupportedOptions {
			if byte(want.Option) == pair[0] && byte(want.Suboption) == pair[1] {
				d.appendBlockFor(resp, pair)
				break
			}
		}
	}
}

func (d *Dispatcher) startResponse(req *frame.Frame, resp *frame.Frame) {
	*resp = frame.Frame{
		DestinationMAC: req.SourceMAC,
		SourceMAC:      d.Identity.MAC(),
		FrameID:        pndcp.FrameIDResponse,
		Header: frame.Header{
			ServiceID:   req.Header.ServiceID,
			ServiceType: pndcp.ServiceTypeSuccess,
			XID:         req.Header.XID,
		},
	}
}

func (d *Dispatcher) appendAllSupportedBlocks(resp *frame.Frame) {
	devOpts := block.DeviceOptions(SupportedOptions[:])
	resp.AppendBlock(devOpts)
	for _, pair := range SupportedOptions {
		d.appendBlockFor(resp, pair)
	}
}

func (d *Dispatcher) appendBlockFor(resp *frame.Frame, pair [2]byte) {
	switch {
	case pair[0] == byte(option.DeviceProperties) && pair[1] == byte(option.SubNameOfStation):
		b, err := block.NameOfStation(d.Identity.Name())
		if err == nil {
			resp.AppendBlock(b)
		}
	case pair[0] == byte(option.DeviceProperties) && pair[1] == byte(option.SubDeviceVendor):
		b, err := block.DeviceVendor(d.Identity.Vendor())
		if err == nil {
			resp.AppendBlock(b)
		}
	case pair[0] == byte(option.DeviceProperties) && pair[1] == byte(option.SubDeviceRole):
		resp.AppendBlock(block.DeviceRoleBlock(d.Identity.Role()))
	case pair[0] == byte(option.DeviceProperties) && pair[1] == byte(option.SubDeviceID):
		vendorID, deviceID := d.Identity.DeviceIdentifiers()
		resp.AppendBlock(block.DeviceIDBlock(vendorID, deviceID))
	case pair[0] == byte(option.DeviceProperties) && pair[1] == byte(option.SubDeviceInstance):
		resp.AppendBlock(block.DeviceInstance(d.Identity.Instance()))
	case pair[0] == byte(option.IP) && pair[1] == byte(option.SubIPParameter):
		ip, mask, gw := d.Identity.IP()
		info := block.IPSetViaSetRequest
		if d.Identity.IPIsUnset() {
			info = block.IPNotSet
		}
		resp.AppendBlock(block.IPParameter(ip, mask, gw, info))
	}
}
