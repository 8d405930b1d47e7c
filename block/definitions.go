// Package block implements the DCP Block Codec (spec §4.2): parsing and
// building a single DCP block (option byte, suboption byte, big-endian
// length, BlockInfo word, payload) and dispatching on option/suboption to
// one of the typed body variants of spec §3 "DcpBlock".
package block

import "github.com/soypat/pndcp/option"

//go:generate stringer -type=BlockInfo -linecomment -output stringers.go .

// BlockInfo is the 2-byte status word carried by every populated block
// variant (spec §3 "BlockInfo", §6). Its concrete meaning is variant
// specific; only the IP group gives it the three values below, every other
// variant this core builds sets it to 0.
type BlockInfo uint16

const (
	IPNotSet           BlockInfo = 0 // not-set
	IPSetViaSetRequest BlockInfo = 1 // set-via-set-request
	IPSetViaDHCP       BlockInfo = 2 // set-via-dhcp
)

const (
	// maxOptionPairs bounds a DeviceOptions block's advertised pair list.
	// This core advertises 6 pairs (see dispatch.SupportedOptions); the
	// extra headroom lets a peer's DeviceOptions block (were one ever
	// received) list a few more without truncation.
	maxOptionPairs = 12
	// maxRawPayload bounds the opaque payload stored for block variants this
	// core recognizes but assigns no semantics to (AliasName, OemDeviceID,
	// StandardGateway, RsiProperties). Matches the system-wide octet-string
	// maximum (station name, spec §5 "Fixed capacities").
	maxRawPayload = 240
)

// Block is a single parsed or to-be-built DCP block (spec §3 "DcpBlock").
// Unlike the teacher's buffer-view Frame types, Block owns its payload in
// fixed-capacity arrays: strings and opaque payloads are copied out of the
// receive buffer once at parse time (spec §3 "Lifecycle"), since a frame
// holds up to [github.com/soypat/pndcp.MaxBlocks] of these in a plain Go
// array with no backing buffer of its own.
type Block struct {
	Option    option.Code
	Suboption option.Suboption
	Kind      option.Kind
	BlockInfo BlockInfo

	IP, Mask, Gateway, DNS [4]byte
	MAC                    [6]byte

	VendorID, DeviceID uint16
	Instance           [2]byte
	Role               option.DeviceRole

	nameBuf   [240]byte
	nameLen   uint16
	vendorBuf [255]byte
	vendorLen uint16

	optionPairs    [maxOptionPairs][2]byte
	optionPairsLen uint8

	rawBuf [maxRawPayload]byte
	rawLen uint16
}

// Name returns the stored NameOfStation octet string.
func (b *Block) Name() []byte { return b.nameBuf[:b.nameLen] }

// Vendor returns the stored DeviceVendor octet string.
func (b *Block) Vendor() []byte { return b.vendorBuf[:b.vendorLen] }

// OptionPairs returns the (option, suboption) byte pairs of a DeviceOptions
// block, two bytes per pair.
func (b *Block) OptionPairs() [][2]byte { return b.optionPairs[:b.optionPairsLen] }

// Raw returns the opaque payload of an AliasName/OemDeviceID/
// StandardGateway/RsiProperties block.
func (b *Block) Raw() []byte { return b.rawBuf[:b.rawLen] }
