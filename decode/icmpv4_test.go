package decode_test

import (
	"testing"

	"github.com/netkit-go/netkit/decode"
)

func innerIPv4Header(proto byte) []byte {
	var buf []byte
	buf = append(buf, 0x45)       // version 4, IHL 5
	buf = append(buf, 0x00)       // DSCP/ECN
	buf = append(buf, 0x00, 0x14) // total length 20
	buf = append(buf, 0x00, 0x00) // identification
	buf = append(buf, 0x00, 0x00) // flags/frag offset
	buf = append(buf, 64)         // TTL
	buf = append(buf, proto)
	buf = append(buf, 0x00, 0x00)    // checksum
	buf = append(buf, 172, 16, 0, 1) // src
	buf = append(buf, 172, 16, 0, 2) // dst
	return buf
}

func TestDecodeICMPv4DestinationUnreachable(t *testing.T) {
	t.Parallel()

	var buf []byte
	buf = append(buf, decode.ICMPDestinationUnreach, 1, 0x00, 0x00)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00) // unused
	buf = append(buf, innerIPv4Header(decode.ProtocolUDP)...)

	p := decode.DecodeICMPv4(buf)
	if p.Type != decode.ICMPDestinationUnreach || p.Code != 1 {
		t.Fatalf("Type/Code = %d/%d, want 3/1", p.Type, p.Code)
	}
	if p.InnerIPv4 == nil {
		t.Fatalf("InnerIPv4 = nil, want decoded inner datagram")
	}
	if p.InnerIPv4.Src.String() != "172.16.0.1" || p.InnerIPv4.Dst.String() != "172.16.0.2" {
		t.Fatalf("InnerIPv4 Src/Dst = %s/%s", p.InnerIPv4.Src, p.InnerIPv4.Dst)
	}
}

func TestDecodeICMPv4Redirect(t *testing.T) {
	t.Parallel()

	var buf []byte
	buf = append(buf, decode.ICMPRedirect, 0, 0x00, 0x00)
	buf = append(buf, 10, 0, 0, 254) // gateway
	buf = append(buf, innerIPv4Header(decode.ProtocolTCP)...)

	p := decode.DecodeICMPv4(buf)
	if p.Gateway != 0x0A0000FE {
		t.Fatalf("Gateway = %#x, want 0x0a0000fe", p.Gateway)
	}
	if p.InnerIPv4 == nil || p.InnerIPv4.Protocol != decode.ProtocolTCP {
		t.Fatalf("InnerIPv4 missing or wrong protocol: %+v", p.InnerIPv4)
	}
}

func TestDecodeICMPv4ParameterProblem(t *testing.T) {
	t.Parallel()

	var buf []byte
	buf = append(buf, decode.ICMPParameterProblem, 0, 0x00, 0x00)
	buf = append(buf, 20, 0x00, 0x00, 0x00) // pointer + unused
	buf = append(buf, innerIPv4Header(decode.ProtocolICMP)...)

	p := decode.DecodeICMPv4(buf)
	if p.Pointer != 20 {
		t.Fatalf("Pointer = %d, want 20", p.Pointer)
	}
	if p.InnerIPv4 == nil {
		t.Fatalf("InnerIPv4 = nil, want decoded inner datagram")
	}
}

func TestDecodeICMPv4Timestamp(t *testing.T) {
	t.Parallel()

	var buf []byte
	buf = append(buf, decode.ICMPTimestamp, 0, 0x00, 0x00)
	buf = append(buf, 0x00, 0x2a)              // identifier
	buf = append(buf, 0x00, 0x01)              // sequence
	buf = append(buf, 0x00, 0x00, 0x00, 0x64)  // originate
	buf = append(buf, 0x00, 0x00, 0x00, 0x65)  // receive
	buf = append(buf, 0x00, 0x00, 0x00, 0x66)  // transmit

	p := decode.DecodeICMPv4(buf)
	if p.Identifier != 0x2a || p.Sequence != 1 {
		t.Fatalf("Identifier/Sequence = %d/%d, want 42/1", p.Identifier, p.Sequence)
	}
	if p.Originate != 0x64 || p.Receive != 0x65 || p.Transmit != 0x66 {
		t.Fatalf("Originate/Receive/Transmit = %d/%d/%d", p.Originate, p.Receive, p.Transmit)
	}
}

func TestDecodeICMPv4UnknownTypeTruncated(t *testing.T) {
	t.Parallel()

	buf := []byte{99, 0, 0, 0}
	p := decode.DecodeICMPv4(buf)
	if p.Type != 99 {
		t.Fatalf("Type = %d, want 99", p.Type)
	}
	if p.InnerIPv4 != nil || p.Payload != nil {
		t.Fatalf("unknown ICMP type should leave InnerIPv4/Payload unset")
	}
}
