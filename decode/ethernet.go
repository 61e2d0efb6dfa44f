package decode

import (
	"github.com/netkit-go/netkit/ipaddr"
)

// FrameKind distinguishes Ethernet II framing from IEEE 802.3 framing,
// both selected by the value of the 13th/14th byte pair (spec §4.11).
type FrameKind int

const (
	FrameUnknown FrameKind = iota
	EthernetII
	IEEE8023
)

func (k FrameKind) String() string {
	switch k {
	case EthernetII:
		return "EthernetII"
	case IEEE8023:
		return "IEEE802.3"
	default:
		return "Unknown"
	}
}

// ethernetTypeLenBoundary is the spec's split point (§4.11): a
// type/length field of at least this value is an EtherType (Ethernet
// II); below it, the field is the IEEE 802.3 payload length.
const ethernetTypeLenBoundary = 1536

// snapDSAPSSAP, present as both DSAP and SSAP, marks an LLC header as
// carrying a SNAP extension.
const snapDSAPSSAP = 0xAA

// Frame is a decoded Ethernet II or IEEE 802.3 link-layer frame. Fields
// not relevant to Kind are left at their zero value.
type Frame struct {
	Dst, Src ipaddr.MacAddr

	Kind FrameKind

	// EtherType is populated when Kind == EthernetII.
	EtherType uint16

	// Length is the IEEE 802.3 payload-length field, populated when
	// Kind == IEEE8023.
	Length uint16

	// DSAP, SSAP, Control are the 802.2 LLC header, populated when
	// Kind == IEEE8023.
	DSAP, SSAP, Control byte

	// HasSNAP reports whether a SNAP header followed the LLC header
	// (DSAP == SSAP == 0xAA).
	HasSNAP bool
	// SNAPOrg is the SNAP header's 3-byte OUI, populated when HasSNAP.
	SNAPOrg []byte
	// SNAPProtocol is the SNAP header's 2-byte protocol id, populated
	// when HasSNAP.
	SNAPProtocol uint16

	// Payload is the remaining bytes after the link-layer header,
	// borrowed from the input buffer.
	Payload []byte
}

// DecodeEthernet decodes a raw link-layer frame starting at buf[0].
// Ethernet II is assumed whenever the 13th/14th byte pair reads as a
// value >= 1536; otherwise the frame is IEEE 802.3 and the same field
// is the payload length (spec §4.11). Short input degrades gracefully:
// missing bytes decode as zero/empty rather than failing.
func DecodeEthernet(buf []byte) *Frame {
	f := &Frame{}

	dst, _ := ipaddr.ParseMacAddr(fixedAt(buf, 0, 6))
	src, _ := ipaddr.ParseMacAddr(fixedAt(buf, 6, 6))
	f.Dst, f.Src = dst, src

	typeOrLen := beUint16At(buf, 12)

	if typeOrLen >= ethernetTypeLenBoundary {
		f.Kind = EthernetII
		f.EtherType = typeOrLen
		f.Payload = tailAt(buf, 14)
		return f
	}

	f.Kind = IEEE8023
	f.Length = typeOrLen
	f.DSAP = byteAt(buf, 14)
	f.SSAP = byteAt(buf, 15)
	f.Control = byteAt(buf, 16)

	if f.DSAP == snapDSAPSSAP && f.SSAP == snapDSAPSSAP {
		f.HasSNAP = true
		f.SNAPOrg = rangeAt(buf, 17, 20)
		f.SNAPProtocol = beUint16At(buf, 20)
		f.Payload = tailAt(buf, 22)
	} else {
		f.Payload = tailAt(buf, 17)
	}

	return f
}
