package decode

import (
	"github.com/netkit-go/netkit/ipaddr"
)

// IPv4Flags is the 3-bit flags field of an IPv4 header (spec §4.12).
type IPv4Flags struct {
	Reserved  bool
	DontFrag  bool
	MoreFrags bool
}

// IPv4Packet is a decoded IPv4 header plus its payload. Options and
// Payload are borrowed slices into the input buffer.
type IPv4Packet struct {
	Version  byte
	IHL      byte
	DSCP     byte
	ECN      byte
	TotalLen uint16
	ID       uint16
	Flags    IPv4Flags
	FragOff  uint16
	TTL      byte
	Protocol byte
	Checksum uint16
	Src, Dst ipaddr.IPv4Addr

	// Options holds the header bytes beyond the fixed 20-byte header,
	// up to IHL*4. Empty when IHL <= 5.
	Options []byte

	// Payload is buf[IHL*4:TotalLen], clamped to the bytes actually
	// present.
	Payload []byte

	// ICMP is populated when Protocol == ProtocolICMP.
	ICMP *ICMPv4Packet
}

// IPv4 protocol numbers relevant to this package (spec §4.12/§4.13).
const (
	ProtocolICMP = 1
	ProtocolTCP  = 6
	ProtocolUDP  = 17
)

// DecodeIPv4 decodes an IPv4 packet starting at buf[0]. A header that
// claims a protocol of ICMP (1) additionally has its payload decoded
// and attached as ICMP. Truncated input decodes the missing bytes as
// zero/empty rather than failing.
func DecodeIPv4(buf []byte) *IPv4Packet {
	p := &IPv4Packet{}

	verIHL := byteAt(buf, 0)
	p.Version = verIHL >> 4
	p.IHL = verIHL & 0x0F

	tos := byteAt(buf, 1)
	p.DSCP = tos >> 2
	p.ECN = tos & 0x03

	p.TotalLen = beUint16At(buf, 2)
	p.ID = beUint16At(buf, 4)

	flagsFrag := beUint16At(buf, 6)
	p.Flags = IPv4Flags{
		Reserved:  flagsFrag&0x8000 != 0,
		DontFrag:  flagsFrag&0x4000 != 0,
		MoreFrags: flagsFrag&0x2000 != 0,
	}
	p.FragOff = flagsFrag & 0x1FFF

	p.TTL = byteAt(buf, 8)
	p.Protocol = byteAt(buf, 9)
	p.Checksum = beUint16At(buf, 10)

	src, _ := ipaddr.ParseIPv4Address(fixedAt(buf, 12, 4))
	dst, _ := ipaddr.ParseIPv4Address(fixedAt(buf, 16, 4))
	p.Src, p.Dst = src, dst

	headerLen := int(p.IHL) * 4
	if headerLen < 20 {
		headerLen = 20
	}
	if headerLen > 20 {
		p.Options = rangeAt(buf, 20, headerLen)
	}

	payloadEnd := int(p.TotalLen)
	if payloadEnd < headerLen {
		payloadEnd = len(buf)
	}
	p.Payload = rangeAt(buf, headerLen, payloadEnd)

	if p.Protocol == ProtocolICMP {
		p.ICMP = DecodeICMPv4(p.Payload)
	}

	return p
}
