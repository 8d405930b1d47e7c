// Package frame implements the Header Codec and Frame Codec (spec §4.3,
// §4.4): the 10-byte DCP header, the outer Ethernet/VLAN/FrameID framing,
// and the bounded block-walk loop that ties the two together with a
// [github.com/soypat/pndcp/block] codec call per iteration.
package frame

import (
	"encoding/binary"

	"github.com/soypat/pndcp"
)

// sizeHeader is the fixed DCP header length (spec §6 "DCP header").
const sizeHeader = 10

// Header is the 10-byte DCP header carried at the start of every DCP
// payload (spec §3 "DcpHeader").
type Header struct {
	ServiceID           pndcp.ServiceID
	ServiceType         pndcp.ServiceType
	XID                 uint32
	ResponseDelayFactor uint16
	DataLength          uint16
}

// ParseHeader decodes the 10-byte DCP header from the front of buf.
func ParseHeader(buf []byte) (Header, error) {
	var h Header
	if len(buf) < sizeHeader {
		return h, pndcp.ErrShortHeader
	}
	h.ServiceID = pndcp.ServiceID(buf[0])
	h.ServiceType = pndcp.ServiceType(buf[1])
	if !validServiceID(h.ServiceID) {
		return Header{}, pndcp.ErrUnknownServiceID
	}
	if !validServiceType(h.ServiceType) {
		return Header{}, pndcp.ErrUnknownServiceType
	}
	h.XID = binary.BigEndian.Uint32(buf[2:6])
	h.ResponseDelayFactor = binary.BigEndian.Uint16(buf[6:8])
	h.DataLength = binary.BigEndian.Uint16(buf[8:10])
	return h, nil
}

// Encode writes h's 10 bytes to the front of dst.
func (h Header) Encode(dst []byte) (int, error) {
	if len(dst) < sizeHeader {
		return 0, pndcp.ErrShortHeader
	}
	dst[0] = byte(h.ServiceID)
	dst[1] = byte(h.ServiceType)
	binary.BigEndian.PutUint32(dst[2:6], h.XID)
	binary.BigEndian.PutUint16(dst[6:8], h.ResponseDelayFactor)
	binary.BigEndian.PutUint16(dst[8:10], h.DataLength)
	return sizeHeader, nil
}

func validServiceID(id pndcp.ServiceID) bool {
	switch id {
	case pndcp.ServiceIDGet, pndcp.ServiceIDSet, pndcp.ServiceIDIdentify, pndcp.ServiceIDHello:
		return true
	default:
		return false
	}
}

func validServiceType(st pndcp.ServiceType) bool {
	switch st {
	case pndcp.ServiceTypeRequest, pndcp.ServiceTypeSuccess, pndcp.ServiceTypeNotSupported:
		return true
	default:
		return false
	}
}
