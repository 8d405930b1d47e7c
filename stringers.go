package pndcp

import "strconv"

func (id FrameID) String() string {
	switch id {
	case FrameIDHello:
		return "hello"
	case FrameIDGetSet:
		return "get-set"
	case FrameIDRequest:
		return "request"
	case FrameIDResponse:
		return "response"
	default:
		return "FrameID(0x" + strconv.FormatUint(uint64(id), 16) + ")"
	}
}

func (s ServiceID) String() string {
	switch s {
	case ServiceIDGet:
		return "get"
	case ServiceIDSet:
		return "set"
	case ServiceIDIdentify:
		return "identify"
	case ServiceIDHello:
		return "hello"
	default:
		return "ServiceID(" + strconv.Itoa(int(s)) + ")"
	}
}

func (t ServiceType) String() string {
	switch t {
	case ServiceTypeRequest:
		return "request"
	case ServiceTypeSuccess:
		return "success"
	case ServiceTypeNotSupported:
		return "not-supported"
	default:
		return "ServiceType(" + strconv.Itoa(int(t)) + ")"
	}
}
