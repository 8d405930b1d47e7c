package block

import (
	"bytes"
	"testing"

	"github.com/soypat/pndcp"
	"github.com/soypat/pndcp/option"
)

func TestParseEncodeRoundTrip(t *testing.T) {
	tests := []Block{
		MACAddress([6]byte{0x00, 0x0E, 0xCF, 0x11, 0x22, 0x33}),
		IPParameter([4]byte{192, 168, 0, 1}, [4]byte{255, 255, 255, 0}, [4]byte{}, IPNotSet),
		FullIPSuite([4]byte{192, 168, 0, 1}, [4]byte{255, 255, 255, 0}, [4]byte{192, 168, 0, 254}, [4]byte{8, 8, 8, 8}, IPSetViaDHCP),
		DeviceIDBlock(0x1337, 0x6969),
		DeviceRoleBlock(option.IODevice),
		DeviceInstance([2]byte{0x00, 0x2A}),
	}
	var buf [256]byte
	for i, want := range tests {
		n, err := want.Encode(buf[:])
		if err != nil {
			t.Fatalf("case %d: encode: %v", i, err)
		}
		got, consumed, err := Parse(buf[:n])
		if err != nil {
			t.Fatalf("case %d: parse: %v", i, err)
		}
		if consumed != n {
			t.Fatalf("case %d: consumed %d want %d", i, consumed, n)
		}
		if got != want {
			t.Fatalf("case %d: roundtrip mismatch\nwant %+v\ngot  %+v", i, want, got)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	name, err := NameOfStation([]byte("plcxb1d0ed"))
	if err != nil {
		t.Fatal(err)
	}
	var buf [64]byte
	n, err := name.Encode(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	got, consumed, err := Parse(buf[:n])
	if err != nil {
		t.Fatal(err)
	}
	if consumed != n {
		t.Fatalf("consumed %d want %d", consumed, n)
	}
	if !bytes.Equal(got.Name(), []byte("plcxb1d0ed")) {
		t.Fatalf("name mismatch: %q", got.Name())
	}
}

func TestOddLengthNameOfStation(t *testing.T) {
	// 13-byte name -> declared length = 13+2=15 -> on-wire = 4+15=19 (odd).
	name, err := NameOfStation([]byte("thirteenbytes"))
	if err != nil {
		t.Fatal(err)
	}
	if len(name.Name()) != 13 {
		t.Fatalf("expected fixture name length 13, got %d", len(name.Name()))
	}
	n := name.EncodedLen()
	if n != 19 {
		t.Fatalf("want on-wire length 19, got %d", n)
	}
	if n%2 == 0 {
		t.Fatal("expected odd on-wire length for padding test to be meaningful")
	}
}

func TestAllSelector(t *testing.T) {
	all := All()
	var buf [8]byte
	n, err := all.Encode(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("want 4 bytes for All selector, got %d", n)
	}
	want := []byte{0xFF, 0xFF, 0x00, 0x00}
	if !bytes.Equal(buf[:n], want) {
		t.Fatalf("got % x want % x", buf[:n], want)
	}
	got, consumed, err := Parse(buf[:n])
	if err != nil {
		t.Fatal(err)
	}
	if consumed != 4 || got.Kind != option.KindAll {
		t.Fatalf("got kind=%v consumed=%d", got.Kind, consumed)
	}
}

func TestUnknownOptionRejected(t *testing.T) {
	buf := []byte{0x7E, 0x01, 0x00, 0x02, 0x00, 0x00}
	_, _, err := Parse(buf)
	if err != pndcp.ErrUnknownOption {
		t.Fatalf("want ErrUnknownOption, got %v", err)
	}
}

func TestUnknownSuboptionRejected(t *testing.T) {
	buf := []byte{byte(option.DeviceProperties), 0x63, 0x00, 0x02, 0x00, 0x00}
	_, _, err := Parse(buf)
	if err != pndcp.ErrUnknownSuboption {
		t.Fatalf("want ErrUnknownSuboption, got %v", err)
	}
}

func TestUnsupportedOptionRecognized(t *testing.T) {
	buf := []byte{byte(option.DHCP), 0x01, 0x00, 0x02, 0x00, 0x00}
	_, _, err := Parse(buf)
	if err != pndcp.ErrUnsupportedOption {
		t.Fatalf("want ErrUnsupportedOption, got %v", err)
	}
}

func TestUnknownDeviceRoleRejected(t *testing.T) {
	buf := []byte{byte(option.DeviceProperties), byte(option.SubDeviceRole), 0x00, 0x03, 0x00, 0x00, 0x09}
	_, _, err := Parse(buf)
	if err != pndcp.ErrUnknownDeviceRole {
		t.Fatalf("want ErrUnknownDeviceRole, got %v", err)
	}
}

func TestShortBlockRejected(t *testing.T) {
	_, _, err := Parse([]byte{0x01, 0x02, 0x00})
	if err != pndcp.ErrShortBlock {
		t.Fatalf("want ErrShortBlock, got %v", err)
	}
}

func TestDeviceOptionsBlock(t *testing.T) {
	pairs := [][2]byte{
		{byte(option.DeviceProperties), byte(option.SubNameOfStation)},
		{byte(option.DeviceProperties), byte(option.SubDeviceVendor)},
		{byte(option.IP), byte(option.SubIPParameter)},
	}
	devOpts := DeviceOptions(pairs)
	var buf [64]byte
	n, err := devOpts.Encode(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	got, consumed, err := Parse(buf[:n])
	if err != nil {
		t.Fatal(err)
	}
	if consumed != n {
		t.Fatalf("consumed %d want %d", consumed, n)
	}
	gotPairs := got.OptionPairs()
	if len(gotPairs) != len(pairs) {
		t.Fatalf("want %d pairs got %d", len(pairs), len(gotPairs))
	}
	for i, p := range pairs {
		if gotPairs[i] != p {
			t.Fatalf("pair %d mismatch: want %v got %v", i, p, gotPairs[i])
		}
	}
}
