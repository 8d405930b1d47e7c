package pndcp

//go:generate stringer -type=FrameID,ServiceID,ServiceType -linecomment -output stringers.go .

// EtherTypePROFINET is the EtherType carried by every DCP frame (and every
// other PROFINET real-time frame). See IEC 61158-6-10.
const EtherTypePROFINET uint16 = 0x8892

// EtherTypeVLAN is the TPID of an 802.1Q VLAN tag, recognized (not rewritten)
// when present ahead of a DCP frame's real EtherType.
const EtherTypeVLAN uint16 = 0x8100

// Fixed capacities. Overflow of any of these is a dropped frame or dropped
// response, never graceful truncation — see spec §9 "Fixed capacities".
const (
	// MaxBlocks bounds the number of blocks a single frame's parse loop will
	// walk, guaranteeing bounded parse time regardless of a malformed or
	// adversarial DataLength field.
	MaxBlocks = 32
	// OutgoingQueueDepth is the capacity of the scheduler's outgoing packet
	// array.
	OutgoingQueueDepth = 8
	// MaxStationName is the maximum length in octets of a NameOfStation value.
	MaxStationName = 240
	// MaxVendorString is the maximum length in octets of a DeviceVendor value.
	MaxVendorString = 255
	// MaxFrameSize bounds egress frame size.
	MaxFrameSize = 255
)

// DCPMulticastMAC is the destination hardware address of a DCP Identify
// (Hello discovery) request, per spec §6 and resolving Open Question (c) of
// spec §9 in favor of the documented PROFINET standard address.
var DCPMulticastMAC = [6]byte{0x01, 0x0E, 0xCF, 0x00, 0x00, 0x00}

// FrameID identifies the kind of DCP frame carried directly after the
// EtherType (or after the VLAN tag, if present).
type FrameID uint16

const (
	FrameIDHello    FrameID = 0xFEFC // hello
	FrameIDGetSet   FrameID = 0xFEFD // get-set
	FrameIDRequest  FrameID = 0xFEFE // request
	FrameIDResponse FrameID = 0xFEFF // response
)

// ServiceID identifies the DCP service a frame's header addresses.
type ServiceID uint8

const (
	ServiceIDGet      ServiceID = 3 // get
	ServiceIDSet      ServiceID = 4 // set
	ServiceIDIdentify ServiceID = 5 // identify
	ServiceIDHello    ServiceID = 6 // hello
)

// ServiceType identifies whether a header is a request or one of the two
// response outcomes.
type ServiceType uint8

const (
	ServiceTypeRequest      ServiceType = 0 // request
	ServiceTypeSuccess      ServiceType = 1 // success
	ServiceTypeNotSupported ServiceType = 5 // not-supported
)
