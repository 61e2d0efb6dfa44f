package decode

import "encoding/binary"

// fixedAt copies width bytes starting at start into a freshly allocated
// buffer, zero-filling whatever lies beyond the end of buf. Every
// decoder in this package uses this instead of a bounds-checked panic
// so that a truncated capture decodes into a (mostly empty) view
// instead of failing outright (spec §7: "fields beyond end-of-buffer
// read as empty bytes").
func fixedAt(buf []byte, start, width int) []byte {
	out := make([]byte, width)
	if start >= len(buf) || start < 0 {
		return out
	}
	end := start + width
	if end > len(buf) {
		end = len(buf)
	}
	copy(out, buf[start:end])
	return out
}

// rangeAt returns the bytes of buf in [start, end), borrowed (not
// copied), clamped to the available length. Out-of-range bounds yield
// an empty, non-nil slice rather than a panic.
func rangeAt(buf []byte, start, end int) []byte {
	if start < 0 || start >= len(buf) {
		return buf[:0]
	}
	if end > len(buf) {
		end = len(buf)
	}
	if end < start {
		end = start
	}
	return buf[start:end]
}

// tailAt returns buf[start:], or an empty slice if start is beyond the
// buffer.
func tailAt(buf []byte, start int) []byte {
	return rangeAt(buf, start, len(buf))
}

func beUint16At(buf []byte, start int) uint16 {
	return binary.BigEndian.Uint16(fixedAt(buf, start, 2))
}

func beUint32At(buf []byte, start int) uint32 {
	return binary.BigEndian.Uint32(fixedAt(buf, start, 4))
}

func byteAt(buf []byte, i int) byte {
	if i < 0 || i >= len(buf) {
		return 0
	}
	return buf[i]
}
