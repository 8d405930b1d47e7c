package block

import "strconv"

func (bi BlockInfo) String() string {
	switch bi {
	case IPNotSet:
		return "not-set"
	case IPSetViaSetRequest:
		return "set-via-set-request"
	case IPSetViaDHCP:
		return "set-via-dhcp"
	default:
		return "BlockInfo(" + strconv.Itoa(int(bi)) + ")"
	}
}
