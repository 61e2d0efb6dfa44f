package ipaddr

import (
	"fmt"
	"strconv"
	"strings"
)

// MacWidth is the width of a MAC-48 address in bits.
const MacWidth = 48

// MacType identifies which of the three link-layer delivery classes a
// MacAddr falls into.
type MacType int

const (
	// MacUndefined is never returned by Classify; it exists only as the
	// zero value of MacType.
	MacUndefined MacType = iota
	MacUnicast
	MacMulticast
	MacBroadcast
)

func (t MacType) String() string {
	switch t {
	case MacUnicast:
		return "Unicast"
	case MacMulticast:
		return "Multicast"
	case MacBroadcast:
		return "Broadcast"
	default:
		return "Undefined"
	}
}

// MacAddr is an immutable 6-byte MAC-48 address.
type MacAddr struct {
	b [6]byte
}

// ParseMacAddr recognizes and converts any supported MAC address form:
// colon- or hyphen-delimited hex octets ("AA:BB:CC:DD:EE:FF" or
// "aa-bb-cc-dd-ee-ff"), a bare 12-hex-digit string, or a 6-byte
// slice/array.
func ParseMacAddr(input any) (MacAddr, error) {
	switch v := input.(type) {
	case MacAddr:
		return v, nil
	case string:
		b, err := macTextToBytes(v)
		if err != nil {
			return MacAddr{}, err
		}
		return macFromBytes(b)
	case []byte:
		return macFromBytes(v)
	case [6]byte:
		return MacAddr{b: v}, nil
	default:
		return MacAddr{}, fmt.Errorf("unsupported MAC address input %T: %w", input, ErrInvalidAddress)
	}
}

func macTextToBytes(s string) ([]byte, error) {
	cleaned := strings.NewReplacer(":", "", "-", "", ".", "").Replace(s)
	if len(cleaned) != 12 {
		return nil, fmt.Errorf("MAC address %q: want 12 hex digits, got %d: %w", s, len(cleaned), ErrInvalidAddress)
	}
	out := make([]byte, 6)
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseUint(cleaned[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("MAC address %q: invalid octet %q: %w", s, cleaned[i*2:i*2+2], ErrInvalidAddress)
		}
		out[i] = byte(v)
	}
	return out, nil
}

func macFromBytes(b []byte) (MacAddr, error) {
	if len(b) != 6 {
		return MacAddr{}, fmt.Errorf("MAC address needs 6 bytes, got %d: %w", len(b), ErrInvalidAddress)
	}
	var out MacAddr
	copy(out.b[:], b)
	return out, nil
}

// Bytes returns a copy of the address's canonical 6-byte buffer.
func (m MacAddr) Bytes() []byte {
	out := make([]byte, 6)
	copy(out, m.b[:])
	return out
}

// String renders the address as colon-separated uppercase hex octets.
func (m MacAddr) String() string {
	parts := make([]string, 6)
	for i, by := range m.b {
		parts[i] = strings.ToUpper(fmt.Sprintf("%02x", by))
	}
	return strings.Join(parts, ":")
}

// BinaryDigits returns the MSB-first bit sequence of the address, length
// 48.
func (m MacAddr) BinaryDigits() []int {
	return bytesToBits(m.b[:])
}

// AsDecimal reads the address buffer as a 48-bit unsigned integer.
// Unlike IPv4Addr/IPv6Addr, a uint64 is wide enough for the full range
// and is returned directly rather than a *big.Int.
func (m MacAddr) AsDecimal() uint64 {
	var n uint64
	for _, b := range m.b {
		n = n<<8 | uint64(b)
	}
	return n
}

// Equal reports whether two MAC addresses have the same byte-wise value.
func (m MacAddr) Equal(other MacAddr) bool {
	return m.b == other.b
}

// Classify returns the address's link-layer delivery class, checked in
// the mandated Broadcast -> Multicast -> Unicast order: a broadcast
// address also has its I/G bit set, so testing multicast first would
// misclassify it.
func (m MacAddr) Classify() MacType {
	if m.b == ([6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}) {
		return MacBroadcast
	}
	if m.b[0]&0x01 == 0x01 {
		return MacMulticast
	}
	return MacUnicast
}
