package decode

// TCP option kinds this package understands the length of (spec
// §4.14). Any other kind with a length byte is preserved verbatim but
// not further interpreted.
const (
	TCPOptEnd         = 0
	TCPOptNOP         = 1
	TCPOptMSS         = 2
	TCPOptWindowScale = 3
	TCPOptSACKPermit  = 4
	TCPOptSACK        = 5
	TCPOptTimestamps  = 8
)

// TCPFlags is the 8-bit flags field of a TCP header.
type TCPFlags struct {
	CWR, ECE, URG, ACK, PSH, RST, SYN, FIN bool
}

// TCPOption is a single decoded TCP option. Kind and the raw option
// bytes (including the kind/length bytes) are always populated; Value
// additionally holds the option's data bytes for the kinds this
// package knows the layout of.
type TCPOption struct {
	Kind  byte
	Raw   []byte
	Value []byte
}

// TCPSegment is a decoded TCP header, its options, and its payload.
type TCPSegment struct {
	SrcPort, DstPort uint16
	Seq, Ack         uint32
	DataOffset       byte
	Reserved         byte
	Flags            TCPFlags
	Window           uint16
	Checksum         uint16
	Urgent           uint16

	Options []TCPOption

	// Payload is buf[DataOffset*4:], borrowed from the input buffer.
	Payload []byte
}

// DecodeTCP decodes a TCP segment starting at buf[0]. Options are
// parsed kind-by-kind until a TCPOptEnd, an unparsable remainder, or
// the end of the options area (DataOffset*4) is reached (spec §4.14).
func DecodeTCP(buf []byte) *TCPSegment {
	s := &TCPSegment{
		SrcPort: beUint16At(buf, 0),
		DstPort: beUint16At(buf, 2),
		Seq:     beUint32At(buf, 4),
		Ack:     beUint32At(buf, 8),
	}

	offsetReserved := byteAt(buf, 12)
	s.DataOffset = offsetReserved >> 4
	s.Reserved = (offsetReserved >> 1) & 0x07

	flagByte := byteAt(buf, 13)
	s.Flags = TCPFlags{
		CWR: flagByte&0x80 != 0,
		ECE: flagByte&0x40 != 0,
		URG: flagByte&0x20 != 0,
		ACK: flagByte&0x10 != 0,
		PSH: flagByte&0x08 != 0,
		RST: flagByte&0x04 != 0,
		SYN: flagByte&0x02 != 0,
		FIN: flagByte&0x01 != 0,
	}

	s.Window = beUint16At(buf, 14)
	s.Checksum = beUint16At(buf, 16)
	s.Urgent = beUint16At(buf, 18)

	headerLen := int(s.DataOffset) * 4
	if headerLen < 20 {
		headerLen = 20
	}

	s.Options = parseTCPOptions(rangeAt(buf, 20, headerLen))
	s.Payload = tailAt(buf, headerLen)

	return s
}

func parseTCPOptions(buf []byte) []TCPOption {
	var opts []TCPOption
	i := 0
	for i < len(buf) {
		kind := buf[i]

		switch kind {
		case TCPOptEnd:
			opts = append(opts, TCPOption{Kind: kind, Raw: buf[i:]})
			return opts
		case TCPOptNOP:
			opts = append(opts, TCPOption{Kind: kind, Raw: buf[i : i+1]})
			i++
			continue
		}

		if i+1 >= len(buf) {
			opts = append(opts, TCPOption{Kind: kind, Raw: buf[i:]})
			return opts
		}

		length := int(buf[i+1])
		if length < 2 || i+length > len(buf) {
			opts = append(opts, TCPOption{Kind: kind, Raw: buf[i:]})
			return opts
		}

		raw := buf[i : i+length]
		opts = append(opts, TCPOption{Kind: kind, Raw: raw, Value: raw[2:]})
		i += length
	}
	return opts
}
