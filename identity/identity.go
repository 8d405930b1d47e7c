// Package identity holds the Device Identity State (spec §4.7): the single
// mutable record of a device's station name, vendor string, IP
// configuration, and protocol identifiers, read by Identify/Get responses
// and written only by the Request Dispatcher.
package identity

import (
	"github.com/soypat/pndcp"
	"github.com/soypat/pndcp/internal"
	"github.com/soypat/pndcp/option"
)

// State is the singleton identity record (spec §3 "Identity State"). Reads
// are non-blocking; writes happen only from the dispatcher under the
// single-threaded cooperative model of spec §5, so no synchronization is
// required here.
type State struct {
	mac [6]byte

	nameBuf [pndcp.MaxStationName]byte
	nameLen uint16

	vendorBuf [pndcp.MaxVendorString]byte
	vendorLen uint16

	ip, mask, gateway [4]byte

	vendorID, deviceID uint16
	role               option.DeviceRole
	instance           [2]byte
}

// New returns a State with its immutable MAC set to mac and a default
// IODevice role; every other field starts zeroed.
func New(mac [6]byte) State {
	return State{mac: mac, role: option.IODevice}
}

// MAC returns the device's immutable hardware address.
func (s *State) MAC() [6]byte { return s.mac }

// Name returns the current station name octet string.
func (s *State) Name() []byte { return s.nameBuf[:s.nameLen] }

// SetName overwrites the station name. Returns [pndcp.ErrStringTooLong] if
// name exceeds [pndcp.MaxStationName] octets, leaving the prior value
// untouched.
func (s *State) SetName(name []byte) error {
	if len(name) > len(s.nameBuf) {
		return pndcp.ErrStringTooLong
	}
	n := copy(s.nameBuf[:], name)
	s.nameLen = uint16(n)
	return nil
}

// Vendor returns the current device vendor octet string.
func (s *State) Vendor() []byte { return s.vendorBuf[:s.vendorLen] }

// SetVendor overwrites the device vendor string. Returns
// [pndcp.ErrStringTooLong] if vendor exceeds [pndcp.MaxVendorString] octets.
func (s *State) SetVendor(vendor []byte) error {
	if len(vendor) > len(s.vendorBuf) {
		return pndcp.ErrStringTooLong
	}
	n := copy(s.vendorBuf[:], vendor)
	s.vendorLen = uint16(n)
	return nil
}

// IP returns the current IP address, subnet mask, and gateway.
func (s *State) IP() (ip, mask, gateway [4]byte) { return s.ip, s.mask, s.gateway }

// SetIP overwrites the IP address, subnet mask and gateway. Callers are
// expected to invoke a transport notification afterward (spec §4.7
// "Mutating IP triggers a notification"); this type does not own a
// transport reference, per spec §9 "break this by passing the transport an
// explicit notify capability".
func (s *State) SetIP(ip, mask, gateway [4]byte) {
	s.ip, s.mask, s.gateway = ip, mask, gateway
}

// IPIsUnset reports whether ip/mask/gateway are all 0.0.0.0, the condition
// under which an IpParameter response block reports BlockInfo=IpNotSet
// (spec §8 "BlockInfo presence").
func (s *State) IPIsUnset() bool {
	return internal.IsZeroed(s.ip, s.mask, s.gateway)
}

// DeviceIdentifiers returns the vendor ID and device ID pair.
func (s *State) DeviceIdentifiers() (vendorID, deviceID uint16) { return s.vendorID, s.deviceID }

// SetDeviceIdentifiers sets the vendor ID and device ID pair.
func (s *State) SetDeviceIdentifiers(vendorID, deviceID uint16) {
	s.vendorID, s.deviceID = vendorID, deviceID
}

// Role returns the device's PROFINET role.
func (s *State) Role() option.DeviceRole { return s.role }

// SetRole sets the device's PROFINET role. Returns
// [pndcp.ErrUnknownDeviceRole] for a value outside the enumerated set.
func (s *State) SetRole(r option.DeviceRole) error {
	if !option.ValidDeviceRole(r) {
		return pndcp.ErrUnknownDeviceRole
	}
	s.role = r
	return nil
}

// Instance returns the device instance pair.
func (s *State) Instance() [2]byte { return s.instance }

// SetInstance sets the device instance pair.
func (s *State) SetInstance(instance [2]byte) { s.instance = instance }
