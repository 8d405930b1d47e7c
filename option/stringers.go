package option

import "strconv"

func (c Code) String() string {
	switch {
	case c == IP:
		return "IP"
	case c == DeviceProperties:
		return "DeviceProperties"
	case c == DHCP:
		return "DHCP"
	case c == Control:
		return "Control"
	case c == DeviceInitiative:
		return "DeviceInitiative"
	case c == NMEDomain:
		return "NMEDomain"
	case c == All:
		return "All"
	case c.IsManufacturerSpecific():
		return "ManufacturerSpecific(0x" + strconv.FormatUint(uint64(c), 16) + ")"
	default:
		return "Code(0x" + strconv.FormatUint(uint64(c), 16) + ")"
	}
}

func (k Kind) String() string {
	switch k {
	case KindAll:
		return "All"
	case KindMACAddress:
		return "MACAddress"
	case KindIPParameter:
		return "IPParameter"
	case KindFullIPSuite:
		return "FullIPSuite"
	case KindDeviceVendor:
		return "DeviceVendor"
	case KindNameOfStation:
		return "NameOfStation"
	case KindDeviceID:
		return "DeviceID"
	case KindDeviceRole:
		return "DeviceRole"
	case KindDeviceOptions:
		return "DeviceOptions"
	case KindAliasName:
		return "AliasName"
	case KindDeviceInstance:
		return "DeviceInstance"
	case KindOemDeviceID:
		return "OemDeviceID"
	case KindStandardGateway:
		return "StandardGateway"
	case KindRsiProperties:
		return "RsiProperties"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

func (r DeviceRole) String() string {
	switch r {
	case IODevice:
		return "IODevice"
	case IOController:
		return "IOController"
	case IOMultidevice:
		return "IOMultidevice"
	case IOSupervisor:
		return "IOSupervisor"
	default:
		return "DeviceRole(" + strconv.Itoa(int(r)) + ")"
	}
}
