package frame

import (
	"encoding/binary"

	"github.com/soypat/pndcp"
	"github.com/soypat/pndcp/block"
)

// sizeEthNoVLAN is the Ethernet header length up to and including FrameID
// when no 802.1Q tag is present (6 dst + 6 src + 2 EtherType + 2 FrameID).
const sizeEthNoVLAN = 16

// Frame is a fully parsed or to-be-built DCP frame: the outer Ethernet
// addressing, FrameID, header, and the ordered block chain (spec §3
// "DcpFrame"). Blocks are held in a fixed array, never a slice growing off
// the heap, bounded at [pndcp.MaxBlocks].
type Frame struct {
	DestinationMAC [6]byte
	SourceMAC      [6]byte
	VLANPresent    bool
	FrameID        pndcp.FrameID
	Header         Header
	Blocks         [pndcp.MaxBlocks]block.Block
	NumBlocks      int
}

// BlockList returns the frame's populated blocks.
func (f *Frame) BlockList() []block.Block { return f.Blocks[:f.NumBlocks] }

// Validate accumulates structural consistency issues into v for offline
// diagnostic use (an operator inspecting a captured frame, or a pre-send
// sanity check), mirroring the teacher's ValidateSize convention. It is not
// called on the hot receive/send path, where Parse/Build already reject the
// first inconsistency they find.
func (f *Frame) Validate(v *pndcp.Validator) {
	if f.NumBlocks > pndcp.MaxBlocks {
		v.AddError(pndcp.ErrTooManyBlocks)
	}
	declared := 0
	for i := 0; i < f.NumBlocks; i++ {
		n := f.Blocks[i].EncodedLen()
		declared += n
		if n%2 != 0 {
			declared++
		}
	}
	if int(f.Header.DataLength) != 0 && int(f.Header.DataLength) != declared {
		v.AddError(pndcp.ErrBlockLengthOverflow)
	}
}

// AppendBlock appends b to the frame's block chain. It reports
// [pndcp.ErrTooManyBlocks] if the frame is already at capacity.
func (f *Frame) AppendBlock(b block.Block) error {
	if f.NumBlocks >= pndcp.MaxBlocks {
		return pndcp.ErrTooManyBlocks
	}
	f.Blocks[f.NumBlocks] = b
	f.NumBlocks++
	return nil
}

// Parse decodes a DCP frame from buf, recognizing an optional 802.1Q VLAN
// tag ahead of the real EtherType (spec §4.4 "Parse", §6 "Wire format").
// Parse never allocates and never walks more than [pndcp.MaxBlocks] blocks
// regardless of a malformed or adversarial DataLength.
func Parse(buf []byte) (Frame, error) {
	var f Frame
	if len(buf) < sizeEthNoVLAN {
		return f, pndcp.ErrShortFrame
	}
	copy(f.DestinationMAC[:], buf[0:6])
	copy(f.SourceMAC[:], buf[6:12])

	etherTypeOff := 12
	firstType := binary.BigEndian.Uint16(buf[12:14])
	if firstType == pndcp.EtherTypeVLAN {
		f.VLANPresent = true
		etherTypeOff = 16
		if len(buf) < etherTypeOff+4 {
			return f, pndcp.ErrShortFrame
		}
	}
	etherType := binary.BigEndian.Uint16(buf[etherTypeOff : etherTypeOff+2])
	if etherType != pndcp.EtherTypePROFINET {
		return f, pndcp.ErrNotProfinet
	}
	frameIDOff := etherTypeOff + 2
	payloadOff := frameIDOff + 2
	if len(buf) < payloadOff {
		return f, pndcp.ErrShortFrame
	}
	frameID := pndcp.FrameID(binary.BigEndian.Uint16(buf[frameIDOff:payloadOff]))
	if !validFrameID(frameID) {
		return f, pndcp.ErrUnknownFrameID
	}
	f.FrameID = frameID

	payload := buf[payloadOff:]
	hdr, err := ParseHeader(payload)
	if err != nil {
		return f, err
	}
	f.Header = hdr

	dataLen := int(hdr.DataLength)
	blocks := payload[sizeHeader:]
	cursor := 0
	for f.NumBlocks < pndcp.MaxBlocks && cursor < dataLen {
		if cursor+4 > len(blocks) {
			return f, pndcp.ErrShortFrame
		}
		b, blockLen, err := block.Parse(blocks[cursor:])
		if err != nil {
			return f, err
		}
		f.Blocks[f.NumBlocks] = b
		f.NumBlocks++
		cursor += blockLen
		if blockLen%2 != 0 {
			cursor++
		}
	}
	if cursor < dataLen {
		return f, pndcp.ErrTooManyBlocks
	}
	if cursor > dataLen {
		return f, pndcp.ErrBlockLengthOverflow
	}
	return f, nil
}

// Build writes f to the front of dst: Ethernet addressing, the PROFINET
// EtherType, FrameID, the header, and the block chain with pad bytes (spec
// §4.4 "Build"). f.Header.DataLength is recomputed from the encoded blocks
// before the header is written, so callers need not set it themselves. VLAN
// is never emitted, matching spec §4.4 "VLAN is not emitted on responses".
func (f *Frame) Build(dst []byte) (int, error) {
	if len(dst) < sizeEthNoVLAN+sizeHeader {
		return 0, pndcp.ErrShortFrame
	}
	copy(dst[0:6], f.DestinationMAC[:])
	copy(dst[6:12], f.SourceMAC[:])
	binary.BigEndian.PutUint16(dst[12:14], pndcp.EtherTypePROFINET)
	binary.BigEndian.PutUint16(dst[14:16], uint16(f.FrameID))

	headerOff := sizeEthNoVLAN
	blocksOff := headerOff + sizeHeader
	cursor := blocksOff
	for i := 0; i < f.NumBlocks; i++ {
		if cursor > len(dst) {
			return 0, pndcp.ErrShortFrame
		}
		n, err := f.Blocks[i].Encode(dst[cursor:])
		if err != nil {
			return 0, err
		}
		cursor += n
		if n%2 != 0 {
			if cursor >= len(dst) {
				return 0, pndcp.ErrShortFrame
			}
			dst[cursor] = 0
			cursor++
		}
	}
	f.Header.DataLength = uint16(cursor - blocksOff)
	if _, err := f.Header.Encode(dst[headerOff:blocksOff]); err != nil {
		return 0, err
	}
	return cursor, nil
}

func validFrameID(id pndcp.FrameID) bool {
	switch id {
	case pndcp.FrameIDHello, pndcp.FrameIDGetSet, pndcp.FrameIDRequest, pndcp.FrameIDResponse:
		return true
	default:
		return false
	}
}
