package decode

// ICMPv4 message types this package gives type-specific layouts for
// (spec §4.13); any other type decodes with only the common header
// populated and the remainder left in Payload.
const (
	ICMPEchoReply          = 0
	ICMPDestinationUnreach = 3
	ICMPRedirect           = 5
	ICMPEcho               = 8
	ICMPTimeExceeded       = 11
	ICMPParameterProblem   = 12
	ICMPTimestamp          = 13
	ICMPTimestampReply     = 14
)

// ICMPv4Packet is a decoded ICMPv4 message. Only the fields relevant
// to Type/Code are populated; the rest stay at their zero value.
type ICMPv4Packet struct {
	Type     byte
	Code     byte
	Checksum uint16

	// Identifier and Sequence are populated for Echo, EchoReply,
	// Timestamp and TimestampReply.
	Identifier uint16
	Sequence   uint16

	// Gateway is populated for Redirect.
	Gateway uint32

	// Pointer is populated for ParameterProblem.
	Pointer byte

	// Originate, Receive, Transmit are populated for Timestamp and
	// TimestampReply.
	Originate uint32
	Receive   uint32
	Transmit  uint32

	// InnerIPv4 carries the offending datagram's header embedded in
	// DestinationUnreachable, TimeExceeded, Redirect and
	// ParameterProblem messages.
	InnerIPv4 *IPv4Packet

	// Payload is the Echo/EchoReply data, borrowed from the input
	// buffer. Unpopulated for the other message types.
	Payload []byte
}

// DecodeICMPv4 decodes an ICMPv4 message starting at buf[0]. Layout is
// selected by Type per spec §4.13; unrecognized types decode only
// the common 4-byte header.
func DecodeICMPv4(buf []byte) *ICMPv4Packet {
	p := &ICMPv4Packet{
		Type:     byteAt(buf, 0),
		Code:     byteAt(buf, 1),
		Checksum: beUint16At(buf, 2),
	}

	switch p.Type {
	case ICMPEcho, ICMPEchoReply:
		p.Identifier = beUint16At(buf, 4)
		p.Sequence = beUint16At(buf, 6)
		p.Payload = tailAt(buf, 8)

	case ICMPDestinationUnreach, ICMPTimeExceeded:
		p.InnerIPv4 = DecodeIPv4(tailAt(buf, 8))

	case ICMPRedirect:
		p.Gateway = beUint32At(buf, 4)
		p.InnerIPv4 = DecodeIPv4(tailAt(buf, 8))

	case ICMPParameterProblem:
		p.Pointer = byteAt(buf, 4)
		p.InnerIPv4 = DecodeIPv4(tailAt(buf, 8))

	case ICMPTimestamp, ICMPTimestampReply:
		p.Identifier = beUint16At(buf, 4)
		p.Sequence = beUint16At(buf, 6)
		p.Originate = beUint32At(buf, 8)
		p.Receive = beUint32At(buf, 12)
		p.Transmit = beUint32At(buf, 16)
	}

	return p
}
