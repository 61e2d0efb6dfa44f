package decode_test

import (
	"testing"

	"github.com/netkit-go/netkit/decode"
)

func TestDecodeIPv4WithICMPEcho(t *testing.T) {
	t.Parallel()

	var buf []byte
	buf = append(buf, 0x45)             // version 4, IHL 5
	buf = append(buf, 0x00)             // DSCP/ECN
	buf = append(buf, 0x00, 0x20)       // total length 32
	buf = append(buf, 0x12, 0x34)       // identification
	buf = append(buf, 0x00, 0x00)       // flags/frag offset
	buf = append(buf, 64)               // TTL
	buf = append(buf, decode.ProtocolICMP)
	buf = append(buf, 0x00, 0x00)       // checksum
	buf = append(buf, 10, 0, 0, 1)      // src
	buf = append(buf, 10, 0, 0, 2)      // dst

	// ICMP Echo: type 8, code 0, checksum, identifier, sequence, payload.
	buf = append(buf, decode.ICMPEcho, 0, 0x00, 0x00)
	buf = append(buf, 0x00, 0x01) // identifier
	buf = append(buf, 0x00, 0x02) // sequence
	buf = append(buf, 'p', 'i', 'n', 'g')

	p := decode.DecodeIPv4(buf)
	if p.Version != 4 || p.IHL != 5 {
		t.Fatalf("Version/IHL = %d/%d, want 4/5", p.Version, p.IHL)
	}
	if p.Protocol != decode.ProtocolICMP {
		t.Fatalf("Protocol = %d, want ICMP", p.Protocol)
	}
	if p.Src.String() != "10.0.0.1" || p.Dst.String() != "10.0.0.2" {
		t.Fatalf("Src/Dst = %s/%s", p.Src, p.Dst)
	}
	if p.ICMP == nil {
		t.Fatalf("ICMP = nil, want decoded echo message")
	}
	if p.ICMP.Type != decode.ICMPEcho {
		t.Fatalf("ICMP.Type = %d, want Echo", p.ICMP.Type)
	}
	if p.ICMP.Identifier != 1 || p.ICMP.Sequence != 2 {
		t.Fatalf("ICMP identifier/sequence = %d/%d, want 1/2", p.ICMP.Identifier, p.ICMP.Sequence)
	}
	if string(p.ICMP.Payload) != "ping" {
		t.Fatalf("ICMP.Payload = %q, want %q", p.ICMP.Payload, "ping")
	}
}

func TestDecodeIPv4TruncatedOptions(t *testing.T) {
	t.Parallel()

	// IHL = 6 (24-byte header) but only 20 bytes supplied: the extra
	// 4 option bytes and the payload should both decode as empty.
	buf := []byte{
		0x46, 0x00, 0x00, 0x18,
		0x00, 0x00, 0x00, 0x00,
		64, 6, 0x00, 0x00,
		192, 168, 1, 1,
		192, 168, 1, 2,
	}
	p := decode.DecodeIPv4(buf)
	if p.IHL != 6 {
		t.Fatalf("IHL = %d, want 6", p.IHL)
	}
	if len(p.Options) != 0 {
		t.Fatalf("Options = %x, want empty on truncated input", p.Options)
	}
	if len(p.Payload) != 0 {
		t.Fatalf("Payload = %x, want empty on truncated input", p.Payload)
	}
}
