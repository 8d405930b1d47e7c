// Package pndcp implements the wire-format core of a PROFINET Discovery and
// Configuration Protocol (DCP) responder: a zero-allocation parser, builder,
// request dispatcher and response scheduler for DCP frames carried directly
// over Ethernet (EtherType 0x8892).
//
// Subpackages split the core along the same lines a DCP frame is built up:
//
//   - [github.com/soypat/pndcp/option] holds the option/suboption registry.
//   - [github.com/soypat/pndcp/block] parses and builds individual DCP blocks.
//   - [github.com/soypat/pndcp/frame] parses and builds the DCP header and
//     the outer Ethernet/VLAN/FrameID framing.
//   - [github.com/soypat/pndcp/identity] holds device identity state.
//   - [github.com/soypat/pndcp/dispatch] classifies requests and produces
//     responses.
//   - [github.com/soypat/pndcp/scheduler] computes response jitter and holds
//     the outgoing packet queue.
package pndcp

import "errors"

// Framing errors.
var (
	ErrShortFrame     = errors.New("pndcp: frame too short")
	ErrNotProfinet    = errors.New("pndcp: not a PROFINET frame")
	ErrUnknownFrameID = errors.New("pndcp: unknown FrameID")
)

// Header errors.
var (
	ErrShortHeader        = errors.New("pndcp: header too short")
	ErrUnknownServiceID   = errors.New("pndcp: unknown ServiceID")
	ErrUnknownServiceType = errors.New("pndcp: unknown ServiceType")
)

// Block errors.
var (
	ErrShortBlock          = errors.New("pndcp: block too short")
	ErrUnknownOption       = errors.New("pndcp: unknown option")
	ErrUnknownSuboption    = errors.New("pndcp: unknown suboption")
	ErrUnsupportedOption   = errors.New("pndcp: option recognized but unsupported by this core")
	ErrUnknownDeviceRole   = errors.New("pndcp: unknown device role")
	ErrBlockLengthOverflow = errors.New("pndcp: block length exceeds frame DataLength")
	ErrTooManyBlocks       = errors.New("pndcp: too many blocks in frame")
	ErrStringTooLong       = errors.New("pndcp: string exceeds declared maximum")
)

// Scheduling errors.
var (
	ErrQueueFull = errors.New("pndcp: outgoing queue full")
)

// Transport errors, surfaced verbatim from collaborators (§6 of the spec).
// The core never constructs these; it only checks for them with errors.Is.
var (
	ErrRxWouldBlock = errors.New("pndcp: receive would block")
	ErrRxTruncated  = errors.New("pndcp: receive buffer truncated")
	ErrRxDMA        = errors.New("pndcp: receive DMA error")
	ErrTxWouldBlock = errors.New("pndcp: transmit would block")
)
