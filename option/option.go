package option

import "github.com/soypat/pndcp"

// Lookup classifies a (Code, Suboption) pair into its [Kind], or returns an
// error from the taxonomy of spec §7: [pndcp.ErrUnknownOption] for an
// option byte outside the registered set (DHCP/Control/DeviceInitiative/
// NMEDomain/ManufacturerSpecific are registered but out of core scope, so
// they classify as [pndcp.ErrUnsupportedOption] instead, per spec §4.2
// "parser must recognise the option code but MAY return UnsupportedOption"),
// [pndcp.ErrUnknownSuboption] for a suboption not defined within its option
// group.
func Lookup(c Code, s Suboption) (Kind, error) {
	switch c {
	case All:
		if s == SubAll {
			return KindAll, nil
		}
		return KindUnknown, pndcp.ErrUnknownSuboption
	case IP:
		switch s {
		case SubMAC:
			return KindMACAddress, nil
		case SubIPParameter:
			return KindIPParameter, nil
		case SubFullIPSuite:
			return KindFullIPSuite, nil
		default:
			return KindUnknown, pndcp.ErrUnknownSuboption
		}
	case DeviceProperties:
		switch s {
		case SubDeviceVendor:
			return KindDeviceVendor, nil
		case SubNameOfStation:
			return KindNameOfStation, nil
		case SubDeviceID:
			return KindDeviceID, nil
		case SubDeviceRole:
			return KindDeviceRole, nil
		case SubDeviceOptions:
			return KindDeviceOptions, nil
		case SubAliasName:
			return KindAliasName, nil
		case SubDeviceInstance:
			return KindDeviceInstance, nil
		case SubOemDeviceID:
			return KindOemDeviceID, nil
		case SubStandardGateway:
			return KindStandardGateway, nil
		case SubRsiProperties:
			return KindRsiProperties, nil
		default:
			return KindUnknown, pndcp.ErrUnknownSuboption
		}
	case DHCP, Control, DeviceInitiative, NMEDomain:
		return KindUnsupported, pndcp.ErrUnsupportedOption
	default:
		if c.IsManufacturerSpecific() {
			return KindUnsupported, pndcp.ErrUnsupportedOption
		}
		return KindUnknown, pndcp.ErrUnknownOption
	}
}
