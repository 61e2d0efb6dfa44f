package decode_test

import (
	"testing"

	"github.com/netkit-go/netkit/decode"
)

func TestDecodeTCPOptions(t *testing.T) {
	t.Parallel()

	var buf []byte
	buf = append(buf, 0x1F, 0x90) // src port 8080
	buf = append(buf, 0x00, 0x50) // dst port 80
	buf = append(buf, 0x00, 0x00, 0x00, 0x01) // seq
	buf = append(buf, 0x00, 0x00, 0x00, 0x00) // ack
	buf = append(buf, 0xA0)                   // data offset 10, reserved 0
	buf = append(buf, 0x02)                   // SYN
	buf = append(buf, 0xFF, 0xFF)             // window
	buf = append(buf, 0x00, 0x00)             // checksum
	buf = append(buf, 0x00, 0x00)             // urgent

	buf = append(buf, 0x02, 0x04, 0x05, 0xB4) // MSS 1460
	buf = append(buf, 0x04, 0x02)             // SACK permitted
	buf = append(buf, 0x08, 0x0A,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00) // timestamps
	buf = append(buf, 0x01)             // NOP
	buf = append(buf, 0x03, 0x03, 0x07) // window scale 7

	s := decode.DecodeTCP(buf)
	if s.DataOffset != 10 {
		t.Fatalf("DataOffset = %d, want 10", s.DataOffset)
	}
	if !s.Flags.SYN {
		t.Fatalf("Flags.SYN = false, want true")
	}
	if len(s.Options) != 5 {
		t.Fatalf("len(Options) = %d, want 5", len(s.Options))
	}

	wantKinds := []byte{
		decode.TCPOptMSS,
		decode.TCPOptSACKPermit,
		decode.TCPOptTimestamps,
		decode.TCPOptNOP,
		decode.TCPOptWindowScale,
	}
	for i, k := range wantKinds {
		if s.Options[i].Kind != k {
			t.Fatalf("Options[%d].Kind = %d, want %d", i, s.Options[i].Kind, k)
		}
	}
	if s.Options[0].Value[0] != 0x05 || s.Options[0].Value[1] != 0xB4 {
		t.Fatalf("MSS value = %x, want 05B4 (1460)", s.Options[0].Value)
	}
	if s.Options[4].Value[0] != 7 {
		t.Fatalf("WindowScale value = %d, want 7", s.Options[4].Value[0])
	}
}

func TestDecodeTCPFlagsAndPayload(t *testing.T) {
	t.Parallel()

	buf := []byte{
		0x00, 0x50, 0x1F, 0x90,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
		0x50, 0x18, // offset 5, PSH+ACK
		0x10, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		'h', 'i',
	}
	s := decode.DecodeTCP(buf)
	if s.DataOffset != 5 {
		t.Fatalf("DataOffset = %d, want 5", s.DataOffset)
	}
	if !s.Flags.PSH || !s.Flags.ACK {
		t.Fatalf("Flags = %+v, want PSH+ACK", s.Flags)
	}
	if len(s.Options) != 0 {
		t.Fatalf("Options = %v, want none", s.Options)
	}
	if string(s.Payload) != "hi" {
		t.Fatalf("Payload = %q, want %q", s.Payload, "hi")
	}
}
