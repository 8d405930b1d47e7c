package dispatch_test

import (
	"testing"

	"github.com/soypat/pndcp"
	"github.com/soypat/pndcp/block"
	"github.com/soypat/pndcp/dispatch"
	"github.com/soypat/pndcp/frame"
	"github.com/soypat/pndcp/identity"
	"github.com/soypat/pndcp/option"
)

func newTestIdentity() identity.State {
	s := identity.New([6]byte{0x00, 0x00, 0x23, 0x53, 0x4E, 0xFE})
	s.SetName([]byte("plcxb1d0ed"))
	s.SetVendor([]byte("S7-1200"))
	s.SetRole(option.IODevice)
	s.SetDeviceIdentifiers(0x1337, 0x6969)
	s.SetInstance([2]byte{0x00, 0x2A})
	s.SetIP([4]byte{192, 168, 0, 1}, [4]byte{255, 255, 255, 0}, [4]byte{})
	return s
}

func identifyRequest(xid uint32, rdf uint16) frame.Frame {
	var req frame.Frame
	req.DestinationMAC = pndcp.DCPMulticastMAC
	req.SourceMAC = [6]byte{0x52, 0x54, 0x00, 0x8A, 0x3B, 0xA5}
	req.FrameID = pndcp.FrameIDRequest
	req.Header = frame.Header{
		ServiceID:           pndcp.ServiceIDIdentify,
		ServiceType:         pndcp.ServiceTypeRequest,
		XID:                 xid,
		ResponseDelayFactor: rdf,
	}
	req.AppendBlock(block.All())
	return req
}

func TestIdentifyResponseBlockOrder(t *testing.T) {
	id := newTestIdentity()
	d := dispatch.Dispatcher{Identity: &id}
	req := identifyRequest(0x00000166, 192)

	var resp frame.Frame
	outcome, err := d.Handle(&req, &resp)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if outcome != dispatch.OutcomeResponse {
		t.Fatalf("outcome = %v, want OutcomeResponse", outcome)
	}
	if resp.DestinationMAC != req.SourceMAC {
		t.Fatalf("response destination = % x, want request source % x", resp.DestinationMAC, req.SourceMAC)
	}
	if resp.SourceMAC != id.MAC() {
		t.Fatalf("response source = % x, want identity MAC % x", resp.SourceMAC, id.MAC())
	}
	if resp.Header.XID != req.Header.XID {
		t.Fatalf("XID not copied: %d vs %d", resp.Header.XID, req.Header.XID)
	}
	if resp.Header.ServiceType != pndcp.ServiceTypeSuccess {
		t.Fatalf("ServiceType = %v, want Success", resp.Header.ServiceType)
	}

	wantOrder := []option.Kind{
		option.KindDeviceOptions,
		option.KindNameOfStation,
		option.KindDeviceVendor,
		option.KindDeviceRole,
		option.KindDeviceID,
		option.KindDeviceInstance,
		option.KindIPParameter,
	}
	if resp.NumBlocks != len(wantOrder) {
		t.Fatalf("NumBlocks = %d, want %d", resp.NumBlocks, len(wantOrder))
	}
	for i, k := range wantOrder {
		if resp.Blocks[i].Kind != k {
			t.Errorf("block %d kind = %v, want %v", i, resp.Blocks[i].Kind, k)
		}
	}

	var buf [256]byte
	n, err := resp.Build(buf[:])
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if buf[0] != 0x52 || buf[5] != 0xA5 {
		t.Fatalf("built destination = % x, want request source echoed back", buf[0:6])
	}
	wantHeader := []byte{0x05, 0x01, 0x00, 0x00, 0x01, 0x66, 0x00, 0x00}
	if string(buf[16:24]) != string(wantHeader) {
		t.Fatalf("header bytes = % x, want % x...", buf[16:24], wantHeader)
	}
	_ = n
}

func TestSetIPRoundTrip(t *testing.T) {
	id := newTestIdentity()
	notifier := &fakeNotifier{}
	d := dispatch.Dispatcher{Identity: &id, Notify: notifier}

	var req frame.Frame
	req.FrameID = pndcp.FrameIDGetSet
	req.Header = frame.Header{ServiceID: pndcp.ServiceIDSet, ServiceType: pndcp.ServiceTypeRequest, XID: 9}
	req.AppendBlock(block.IPParameter([4]byte{192, 168, 1, 50}, [4]byte{255, 255, 255, 0}, [4]byte{192, 168, 1, 1}, block.IPSetViaSetRequest))

	var resp frame.Frame
	outcome, err := d.Handle(&req, &resp)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if outcome != dispatch.OutcomeMutatedOnly {
		t.Fatalf("outcome = %v, want OutcomeMutatedOnly", outcome)
	}
	ip, mask, gw := id.IP()
	if ip != [4]byte{192, 168, 1, 50} {
		t.Fatalf("identity.IP ip = %v, want 192.168.1.50", ip)
	}
	if mask != [4]byte{255, 255, 255, 0} || gw != [4]byte{192, 168, 1, 1} {
		t.Fatalf("identity mask/gw = %v %v", mask, gw)
	}
	if notifier.calls != 1 {
		t.Fatalf("UpdateInterface called %d times, want 1", notifier.calls)
	}
	if notifier.ip != ip {
		t.Fatalf("notifier saw ip %v, want %v", notifier.ip, ip)
	}
}

func TestUnknownOptionDropsFrameNoResponse(t *testing.T) {
	// spec §8 scenario 6: a block with an unknown option is rejected at
	// parse time, so it never reaches the dispatcher at all; here we
	// confirm the dispatcher independently ignores anything that is not a
	// recognized request shape, producing no response.
	id := newTestIdentity()
	d := dispatch.Dispatcher{Identity: &id}

	var req frame.Frame
	req.FrameID = pndcp.FrameIDHello // not a request/getset frame the dispatcher acts on
	req.Header = frame.Header{ServiceID: pndcp.ServiceIDHello, ServiceType: pndcp.ServiceTypeRequest}

	var resp frame.Frame
	outcome, err := d.Handle(&req, &resp)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if outcome != dispatch.OutcomeDropped {
		t.Fatalf("outcome = %v, want OutcomeDropped", outcome)
	}
}

func TestGetSpecificPairEchoesStoredBlocksOnly(t *testing.T) {
	id := newTestIdentity()
	d := dispatch.Dispatcher{Identity: &id}

	var req frame.Frame
	req.FrameID = pndcp.FrameIDGetSet
	req.Header = frame.Header{ServiceID: pndcp.ServiceIDGet, ServiceType: pndcp.ServiceTypeRequest, XID: 42}
	vendorReq, _ := block.DeviceVendor(nil)
	vendorReq.Option, vendorReq.Suboption = option.DeviceProperties, option.SubDeviceVendor
	req.AppendBlock(vendorReq)

	var resp frame.Frame
	outcome, err := d.Handle(&req, &resp)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if outcome != dispatch.OutcomeResponse {
		t.Fatalf("outcome = %v, want OutcomeResponse", outcome)
	}
	if resp.NumBlocks != 1 || resp.Blocks[0].Kind != option.KindDeviceVendor {
		t.Fatalf("want single DeviceVendor echo block, got %d blocks", resp.NumBlocks)
	}
}

func TestGetAllSelectorMirrorsIdentify(t *testing.T) {
	id := newTestIdentity()
	d := dispatch.Dispatcher{Identity: &id}

	var req frame.Frame
	req.FrameID = pndcp.FrameIDGetSet
	req.Header = frame.Header{ServiceID: pndcp.ServiceIDGet, ServiceType: pndcp.ServiceTypeRequest}
	req.AppendBlock(block.All())

	var resp frame.Frame
	outcome, err := d.Handle(&req, &resp)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if outcome != dispatch.OutcomeResponse || resp.NumBlocks != 7 {
		t.Fatalf("outcome=%v numBlocks=%d, want OutcomeResponse/7", outcome, resp.NumBlocks)
	}
}

type fakeNotifier struct {
	calls int
	ip    [4]byte
}

func (f *fakeNotifier) UpdateInterface(ip, mask, gateway [4]byte) error {
	f.calls++
	f.ip = ip
	return nil
}
