package block

import (
	"encoding/binary"

	"github.com/soypat/pndcp"
	"github.com/soypat/pndcp/option"
)

// Parse decodes a single DCP block from the front of buf (spec §4.2
// "Parse"). It returns the parsed block and the number of bytes the block
// occupies on the wire, NOT including a trailing pad byte — padding is a
// frame-level concern handled by the caller (the Frame Codec), since it sits
// between blocks rather than inside one.
func Parse(buf []byte) (Block, int, error) {
	var b Block
	if len(buf) < 4 {
		return b, 0, pndcp.ErrShortBlock
	}
	b.Option = option.Code(buf[0])
	b.Suboption = option.Suboption(buf[1])
	declared := binary.BigEndian.Uint16(buf[2:4])

	if b.Option == option.All && b.Suboption == option.SubAll {
		b.Kind = option.KindAll
		onWire := int(declared) + 4
		if onWire > len(buf) {
			return b, 0, pndcp.ErrShortBlock
		}
		return b, onWire, nil
	}
	if declared < 2 {
		return b, 0, pndcp.ErrShortBlock
	}
	onWire := 4 + int(declared)
	if onWire > len(buf) {
		return b, 0, pndcp.ErrShortBlock
	}
	kind, err := option.Lookup(b.Option, b.Suboption)
	if err != nil {
		return b, 0, err
	}
	b.Kind = kind
	b.BlockInfo = BlockInfo(binary.BigEndian.Uint16(buf[4:6]))
	payload := buf[6:onWire]
	payloadLen := len(payload)

	switch kind {
	case option.KindMACAddress:
		if payloadLen < 6 {
			return b, 0, pndcp.ErrShortBlock
		}
		copy(b.MAC[:], payload[:6])
	case option.KindIPParameter:
		if payloadLen < 12 {
			return b, 0, pndcp.ErrShortBlock
		}
		copy(b.IP[:], payload[0:4])
		copy(b.Mask[:], payload[4:8])
		copy(b.Gateway[:], payload[8:12])
	case option.KindFullIPSuite:
		if payloadLen < 16 {
			return b, 0, pndcp.ErrShortBlock
		}
		copy(b.IP[:], payload[0:4])
		copy(b.Mask[:], payload[4:8])
		copy(b.Gateway[:], payload[8:12])
		copy(b.DNS[:], payload[12:16])
	case option.KindDeviceVendor:
		if err := b.setVendor(payload); err != nil {
			return b, 0, err
		}
	case option.KindNameOfStation:
		if err := b.setName(payload); err != nil {
			return b, 0, err
		}
	case option.KindDeviceID:
		if payloadLen < 4 {
			return b, 0, pndcp.ErrShortBlock
		}
		b.VendorID = binary.BigEndian.Uint16(payload[0:2])
		b.DeviceID = binary.BigEndian.Uint16(payload[2:4])
	case option.KindDeviceRole:
		if payloadLen < 1 {
			return b, 0, pndcp.ErrShortBlock
		}
		b.Role = option.DeviceRole(payload[0])
		if !option.ValidDeviceRole(b.Role) {
			return b, 0, pndcp.ErrUnknownDeviceRole
		}
	case option.KindDeviceInstance:
		if payloadLen < 2 {
			return b, 0, pndcp.ErrShortBlock
		}
		b.Instance[0], b.Instance[1] = payload[0], payload[1]
	case option.KindDeviceOptions:
		if err := b.setOptionPairs(payload); err != nil {
			return b, 0, err
		}
	case option.KindAliasName, option.KindOemDeviceID, option.KindStandardGateway, option.KindRsiProperties:
		if err := b.setRaw(payload); err != nil {
			return b, 0, err
		}
	default:
		return b, 0, pndcp.ErrUnsupportedOption
	}
	return b, onWire, nil
}

func (b *Block) setName(s []byte) error {
	if len(s) > len(b.nameBuf) {
		return pndcp.ErrStringTooLong
	}
	n := copy(b.nameBuf[:], s)
	b.nameLen = uint16(n)
	return nil
}

func (b *Block) setVendor(s []byte) error {
	if len(s) > len(b.vendorBuf) {
		return pndcp.ErrStringTooLong
	}
	n := copy(b.vendorBuf[:], s)
	b.vendorLen = uint16(n)
	return nil
}

func (b *Block) setRaw(p []byte) error {
	if len(p) > len(b.rawBuf) {
		return pndcp.ErrStringTooLong
	}
	n := copy(b.rawBuf[:], p)
	b.rawLen = uint16(n)
	return nil
}

func (b *Block) setOptionPairs(payload []byte) error {
	n := len(payload) / 2
	if n > maxOptionPairs {
		n = maxOptionPairs
	}
	for i := 0; i < n; i++ {
		b.optionPairs[i] = [2]byte{payload[2*i], payload[2*i+1]}
	}
	b.optionPairsLen = uint8(n)
	return nil
}

// EncodedLen returns the number of bytes [Block.Encode] will write for b,
// without a trailing pad byte.
func (b *Block) EncodedLen() int {
	if b.Kind == option.KindAll {
		return 4
	}
	return 6 + b.payloadLen()
}

func (b *Block) payloadLen() int {
	switch b.Kind {
	case option.KindMACAddress:
		return 6
	case option.KindIPParameter:
		return 12
	case option.KindFullIPSuite:
		return 16
	case option.KindDeviceVendor:
		return int(b.vendorLen)
	case option.KindNameOfStation:
		return int(b.nameLen)
	case option.KindDeviceID:
		return 4
	case option.KindDeviceRole:
		return 1
	case option.KindDeviceInstance:
		return 2
	case option.KindDeviceOptions:
		return int(b.optionPairsLen) * 2
	case option.KindAliasName, option.KindOemDeviceID, option.KindStandardGateway, option.KindRsiProperties:
		return int(b.rawLen)
	default:
		return 0
	}
}

// Encode writes b to the front of dst and returns the number of bytes
// written, NOT including a trailing pad byte (spec §4.2 "Build"). Returns
// [pndcp.ErrShortBlock] if dst is too small; this never happens for a
// correctly-sized egress buffer (spec §7 "Encode errors are impossible when
// invariants hold").
func (b *Block) Encode(dst []byte) (int, error) {
	n := b.EncodedLen()
	if len(dst) < n {
		return 0, pndcp.ErrShortBlock
	}
	if b.Kind == option.KindAll {
		dst[0], dst[1] = byte(option.All), byte(option.SubAll)
		binary.BigEndian.PutUint16(dst[2:4], 0)
		return 4, nil
	}
	dst[0], dst[1] = byte(b.Option), byte(b.Suboption)
	binary.BigEndian.PutUint16(dst[2:4], uint16(n-4))
	binary.BigEndian.PutUint16(dst[4:6], uint16(b.BlockInfo))
	payload := dst[6:n]
	switch b.Kind {
	case option.KindMACAddress:
		copy(payload, b.MAC[:])
	case option.KindIPParameter:
		copy(payload[0:4], b.IP[:])
		copy(payload[4:8], b.Mask[:])
		copy(payload[8:12], b.Gateway[:])
	case option.KindFullIPSuite:
		copy(payload[0:4], b.IP[:])
		copy(payload[4:8], b.Mask[:])
		copy(payload[8:12], b.Gateway[:])
		copy(payload[12:16], b.DNS[:])
	case option.KindDeviceVendor:
		copy(payload, b.Vendor())
	case option.KindNameOfStation:
		copy(payload, b.Name())
	case option.KindDeviceID:
		binary.BigEndian.PutUint16(payload[0:2], b.VendorID)
		binary.BigEndian.PutUint16(payload[2:4], b.DeviceID)
	case option.KindDeviceRole:
		payload[0] = byte(b.Role)
	case option.KindDeviceInstance:
		payload[0], payload[1] = b.Instance[0], b.Instance[1]
	case option.KindDeviceOptions:
		for i := 0; i < int(b.optionPairsLen); i++ {
			payload[2*i], payload[2*i+1] = b.optionPairs[i][0], b.optionPairs[i][1]
		}
	case option.KindAliasName, option.KindOemDeviceID, option.KindStandardGateway, option.KindRsiProperties:
		copy(payload, b.Raw())
	}
	return n, nil
}

//
// Constructors. Each sets Option/Suboption/Kind consistently so Encode has
// everything it needs; callers never set those fields directly.
//

// All builds the ALL selector block used by an Identify Request (spec §4.5).
func All() Block {
	return Block{Option: option.All, Suboption: option.SubAll, Kind: option.KindAll}
}

// MACAddress builds an IP-group MacAddress block.
func MACAddress(mac [6]byte) Block {
	return Block{Option: option.IP, Suboption: option.SubMAC, Kind: option.KindMACAddress, MAC: mac}
}

// IPParameter builds an IP-group IpParameter block.
func IPParameter(ip, mask, gateway [4]byte, info BlockInfo) Block {
	return Block{
		Option: option.IP, Suboption: option.SubIPParameter, Kind: option.KindIPParameter,
		IP: ip, Mask: mask, Gateway: gateway, BlockInfo: info,
	}
}

// FullIPSuite builds an IP-group FullIpSuite block.
func FullIPSuite(ip, mask, gateway, dns [4]byte, info BlockInfo) Block {
	return Block{
		Option: option.IP, Suboption: option.SubFullIPSuite, Kind: option.KindFullIPSuite,
		IP: ip, Mask: mask, Gateway: gateway, DNS: dns, BlockInfo: info,
	}
}

// DeviceVendor builds a DeviceProperties-group DeviceVendor block. Returns
// [pndcp.ErrStringTooLong] if s exceeds 255 octets.
func DeviceVendor(s []byte) (Block, error) {
	b := Block{Option: option.DeviceProperties, Suboption: option.SubDeviceVendor, Kind: option.KindDeviceVendor}
	if err := b.setVendor(s); err != nil {
		return Block{}, err
	}
	return b, nil
}

// NameOfStation builds a DeviceProperties-group NameOfStation block.
// Returns [pndcp.ErrStringTooLong] if s exceeds 240 octets.
func NameOfStation(s []byte) (Block, error) {
	b := Block{Option: option.DeviceProperties, Suboption: option.SubNameOfStation, Kind: option.KindNameOfStation}
	if err := b.setName(s); err != nil {
		return Block{}, err
	}
	return b, nil
}

// DeviceIDBlock builds a DeviceProperties-group DeviceID block.
func DeviceIDBlock(vendorID, deviceID uint16) Block {
	return Block{
		Option: option.DeviceProperties, Suboption: option.SubDeviceID, Kind: option.KindDeviceID,
		VendorID: vendorID, DeviceID: deviceID,
	}
}

// DeviceRoleBlock builds a DeviceProperties-group DeviceRole block.
func DeviceRoleBlock(r option.DeviceRole) Block {
	return Block{Option: option.DeviceProperties, Suboption: option.SubDeviceRole, Kind: option.KindDeviceRole, Role: r}
}

// DeviceInstance builds a DeviceProperties-group DeviceInstance block.
func DeviceInstance(instance [2]byte) Block {
	return Block{
		Option: option.DeviceProperties, Suboption: option.SubDeviceInstance, Kind: option.KindDeviceInstance,
		Instance: instance,
	}
}

// DeviceOptions builds a DeviceProperties-group DeviceOptions block
// enumerating the (option, suboption) pairs this device can answer, per
// spec §9 Open Question (b) resolved in favor of enumeration. pairs beyond
// capacity are silently dropped from the listing.
func DeviceOptions(pairs [][2]byte) Block {
	b := Block{Option: option.DeviceProperties, Suboption: option.SubDeviceOptions, Kind: option.KindDeviceOptions}
	n := len(pairs)
	if n > maxOptionPairs {
		n = maxOptionPairs
	}
	copy(b.optionPairs[:n], pairs[:n])
	b.optionPairsLen = uint8(n)
	return b
}
