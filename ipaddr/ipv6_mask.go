package ipaddr

import (
	"fmt"
)

// IPv6NetMask is an immutable IPv6 netmask. Construction enforces the
// same contiguity invariant as IPv4NetMask: the 128-bit pattern must be
// 1*0*.
type IPv6NetMask struct {
	b [16]byte
}

// ParseIPv6NetMask recognizes and converts any supported IPv6 netmask
// form: CIDR ("/64"), a colon-hex literal ("ffff:ffff::"), a 16-byte
// slice/array, or an int prefix length. Every form is subject to the
// contiguity check.
func ParseIPv6NetMask(input any) (IPv6NetMask, error) {
	switch v := input.(type) {
	case IPv6NetMask:
		return v, nil
	case int:
		return ipv6MaskFromPrefix(v)
	case string:
		if m := cidrPattern.FindStringSubmatch(v); m != nil {
			n := 0
			for _, c := range m[1] {
				n = n*10 + int(c-'0')
			}
			return ipv6MaskFromPrefix(n)
		}
		b, err := parseIPv6Text(v)
		if err != nil {
			return IPv6NetMask{}, err
		}
		return ipv6MaskFromBytes(b[:])
	case []byte:
		return ipv6MaskFromBytes(v)
	case [16]byte:
		return ipv6MaskFromBytes(v[:])
	default:
		return IPv6NetMask{}, fmt.Errorf("unsupported IPv6 netmask input %T: %w", input, ErrInvalidAddress)
	}
}

func ipv6MaskFromPrefix(prefix int) (IPv6NetMask, error) {
	if prefix < 0 || prefix > IPv6Width {
		return IPv6NetMask{}, fmt.Errorf("prefix /%d out of range 0-%d: %w", prefix, IPv6Width, ErrInvalidAddress)
	}
	n := allOnes(IPv6Width)
	n.Lsh(n, uint(IPv6Width-prefix))
	n.And(n, allOnes(IPv6Width))
	raw, _ := DecimalToBytesWidth(n, 16)
	return ipv6MaskFromBytes(raw)
}

func ipv6MaskFromBytes(b []byte) (IPv6NetMask, error) {
	if len(b) != 16 {
		return IPv6NetMask{}, fmt.Errorf("IPv6 netmask needs 16 bytes, got %d: %w", len(b), ErrInvalidAddress)
	}
	bits := bytesToBits(b)
	if !bitsContiguous(bits) {
		return IPv6NetMask{}, fmt.Errorf("IPv6 netmask %v is not contiguous (1*0*): %w", b, ErrInvalidAddress)
	}
	var out IPv6NetMask
	copy(out.b[:], b)
	return out, nil
}

// Bytes returns a copy of the mask's canonical 16-byte buffer.
func (m IPv6NetMask) Bytes() []byte {
	out := make([]byte, 16)
	copy(out, m.b[:])
	return out
}

// String renders the mask as a CIDR prefix length.
func (m IPv6NetMask) String() string {
	return fmt.Sprintf("/%d", m.MaskSize())
}

// MaskSize returns the count of leading one bits.
func (m IPv6NetMask) MaskSize() int {
	return countLeadingOnes(bytesToBits(m.b[:]))
}

// BinaryDigits returns the MSB-first bit sequence of the mask.
func (m IPv6NetMask) BinaryDigits() []int {
	return bytesToBits(m.b[:])
}

// Not returns the bitwise complement of the mask.
func (m IPv6NetMask) Not() IPv6Addr {
	var out IPv6Addr
	for i := range out.b {
		out.b[i] = ^m.b[i]
	}
	return out
}

// IPv6WildCard is an IPv6 wildcard mask. Any 128-bit pattern is legal:
// contiguity is not required.
type IPv6WildCard struct {
	b [16]byte
}

// ParseIPv6WildCard recognizes and converts any supported IPv6 wildcard
// form: colon-hex textual form, or a 16-byte slice/array. No contiguity
// check is applied.
func ParseIPv6WildCard(input any) (IPv6WildCard, error) {
	switch v := input.(type) {
	case IPv6WildCard:
		return v, nil
	case string:
		b, err := parseIPv6Text(v)
		if err != nil {
			return IPv6WildCard{}, err
		}
		return ipv6WildCardFromBytes(b[:])
	case []byte:
		return ipv6WildCardFromBytes(v)
	case [16]byte:
		return ipv6WildCardFromBytes(v[:])
	default:
		return IPv6WildCard{}, fmt.Errorf("unsupported IPv6 wildcard input %T: %w", input, ErrInvalidAddress)
	}
}

func ipv6WildCardFromBytes(b []byte) (IPv6WildCard, error) {
	if len(b) != 16 {
		return IPv6WildCard{}, fmt.Errorf("IPv6 wildcard needs 16 bytes, got %d: %w", len(b), ErrInvalidAddress)
	}
	var out IPv6WildCard
	copy(out.b[:], b)
	return out, nil
}

// Bytes returns a copy of the wildcard's canonical 16-byte buffer.
func (w IPv6WildCard) Bytes() []byte {
	out := make([]byte, 16)
	copy(out, w.b[:])
	return out
}

// String renders the wildcard in compressed colon-hex notation.
func (w IPv6WildCard) String() string {
	return canonicalIPv6String(w.b)
}

// MaskSize returns the popcount of the wildcard's free bits.
func (w IPv6WildCard) MaskSize() int {
	return popcount(bytesToBits(w.b[:]))
}

// BinaryDigits returns the MSB-first bit sequence of the wildcard.
func (w IPv6WildCard) BinaryDigits() []int {
	return bytesToBits(w.b[:])
}
