package ipaddr

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
)

var cidrPattern = regexp.MustCompile(`^/(\d+)$`)

// IPv4NetMask is an immutable IPv4 netmask. Construction enforces the
// contiguity invariant: the 32-bit pattern must be 1*0*.
type IPv4NetMask struct {
	b [4]byte
}

// ParseIPv4NetMask recognizes and converts any supported IPv4 netmask
// form: dotted-decimal ("255.255.255.0"), CIDR ("/24"), a 4-byte
// slice/array, or an int prefix length. Every form is subject to the
// contiguity check; inputs that fail it are rejected with
// ErrInvalidAddress.
func ParseIPv4NetMask(input any) (IPv4NetMask, error) {
	switch v := input.(type) {
	case IPv4NetMask:
		return v, nil
	case int:
		return ipv4MaskFromPrefix(v)
	case string:
		if m := cidrPattern.FindStringSubmatch(v); m != nil {
			n, _ := strconv.Atoi(m[1])
			return ipv4MaskFromPrefix(n)
		}
		b, err := dottedDecimalToBytes(v, 4)
		if err != nil {
			return IPv4NetMask{}, err
		}
		return ipv4MaskFromBytes(b)
	case []byte:
		return ipv4MaskFromBytes(v)
	case [4]byte:
		return ipv4MaskFromBytes(v[:])
	default:
		return IPv4NetMask{}, fmt.Errorf("unsupported IPv4 netmask input %T: %w", input, ErrInvalidAddress)
	}
}

func ipv4MaskFromPrefix(prefix int) (IPv4NetMask, error) {
	if prefix < 0 || prefix > IPv4Width {
		return IPv4NetMask{}, fmt.Errorf("prefix /%d out of range 0-%d: %w", prefix, IPv4Width, ErrInvalidAddress)
	}
	n := new(big.Int).Lsh(big.NewInt(1), uint(IPv4Width))
	n.Sub(n, big.NewInt(1))
	n.Lsh(n, uint(IPv4Width-prefix))
	n.And(n, allOnes(IPv4Width))
	raw, _ := DecimalToBytesWidth(n, 4)
	return ipv4MaskFromBytes(raw)
}

func allOnes(width int) *big.Int {
	n := new(big.Int).Lsh(big.NewInt(1), uint(width))
	n.Sub(n, big.NewInt(1))
	return n
}

// DecimalToBytesWidth renders n as length big-endian bytes, assuming it
// already fits (internal helper shared by the v4/v6 mask constructors).
func DecimalToBytesWidth(n *big.Int, length int) ([]byte, error) {
	raw := n.Bytes()
	if len(raw) > length {
		return nil, fmt.Errorf("value %s overflows %d bytes: %w", n, length, ErrInvalidAddress)
	}
	out := make([]byte, length)
	copy(out[length-len(raw):], raw)
	return out, nil
}

func ipv4MaskFromBytes(b []byte) (IPv4NetMask, error) {
	if len(b) != 4 {
		return IPv4NetMask{}, fmt.Errorf("IPv4 netmask needs 4 bytes, got %d: %w", len(b), ErrInvalidAddress)
	}
	bits := bytesToBits(b)
	if !bitsContiguous(bits) {
		return IPv4NetMask{}, fmt.Errorf("IPv4 netmask %v is not contiguous (1*0*): %w", b, ErrInvalidAddress)
	}
	var out IPv4NetMask
	copy(out.b[:], b)
	return out, nil
}

// Bytes returns a copy of the mask's canonical 4-byte buffer.
func (m IPv4NetMask) Bytes() []byte {
	out := make([]byte, 4)
	copy(out, m.b[:])
	return out
}

// String renders the mask in dotted-decimal notation.
func (m IPv4NetMask) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", m.b[0], m.b[1], m.b[2], m.b[3])
}

// MaskSize returns the count of leading one bits (the CIDR prefix
// length). Contiguity is guaranteed by construction, so this is always
// well-defined for a constructed IPv4NetMask.
func (m IPv4NetMask) MaskSize() int {
	return countLeadingOnes(bytesToBits(m.b[:]))
}

// BinaryDigits returns the MSB-first bit sequence of the mask.
func (m IPv4NetMask) BinaryDigits() []int {
	return bytesToBits(m.b[:])
}

// Not returns the bitwise complement of the mask (used to derive
// broadcast addresses: addr OR NOT mask).
func (m IPv4NetMask) Not() IPv4Addr {
	var out IPv4Addr
	for i := range out.b {
		out.b[i] = ^m.b[i]
	}
	return out
}

// IPv4WildCard is an IPv4 wildcard mask. Unlike IPv4NetMask, any bit
// pattern is legal: contiguity is not required.
type IPv4WildCard struct {
	b [4]byte
}

// ParseIPv4WildCard recognizes and converts any supported IPv4 wildcard
// form: dotted-decimal string, a 4-byte slice/array. No contiguity check
// is applied.
func ParseIPv4WildCard(input any) (IPv4WildCard, error) {
	switch v := input.(type) {
	case IPv4WildCard:
		return v, nil
	case string:
		b, err := dottedDecimalToBytes(v, 4)
		if err != nil {
			return IPv4WildCard{}, err
		}
		return ipv4WildCardFromBytes(b)
	case []byte:
		return ipv4WildCardFromBytes(v)
	case [4]byte:
		return ipv4WildCardFromBytes(v[:])
	default:
		return IPv4WildCard{}, fmt.Errorf("unsupported IPv4 wildcard input %T: %w", input, ErrInvalidAddress)
	}
}

func ipv4WildCardFromBytes(b []byte) (IPv4WildCard, error) {
	if len(b) != 4 {
		return IPv4WildCard{}, fmt.Errorf("IPv4 wildcard needs 4 bytes, got %d: %w", len(b), ErrInvalidAddress)
	}
	var out IPv4WildCard
	copy(out.b[:], b)
	return out, nil
}

// Bytes returns a copy of the wildcard's canonical 4-byte buffer.
func (w IPv4WildCard) Bytes() []byte {
	out := make([]byte, 4)
	copy(out, w.b[:])
	return out
}

// String renders the wildcard in dotted-decimal notation.
func (w IPv4WildCard) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", w.b[0], w.b[1], w.b[2], w.b[3])
}

// MaskSize returns the popcount of the wildcard's free bits (not a
// prefix length — a wildcard's set bits need not be contiguous).
func (w IPv4WildCard) MaskSize() int {
	return popcount(bytesToBits(w.b[:]))
}

// BinaryDigits returns the MSB-first bit sequence of the wildcard.
func (w IPv4WildCard) BinaryDigits() []int {
	return bytesToBits(w.b[:])
}
