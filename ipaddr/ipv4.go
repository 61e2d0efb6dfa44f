package ipaddr

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// IPv4Width is the width of an IPv4 address in bits.
const IPv4Width = 32

// IPv4Addr is an immutable, canonical IPv4 address backed by a 4-byte
// big-endian buffer.
type IPv4Addr struct {
	b [4]byte
}

// ParseIPv4Address recognizes and converts any supported IPv4 address
// form into a canonical IPv4Addr. Supported forms, tried in order:
// dotted-decimal string ("192.168.1.1"), a 4-byte slice/array, a uint32
// decimal value, and a *big.Int decimal value.
func ParseIPv4Address(input any) (IPv4Addr, error) {
	switch v := input.(type) {
	case IPv4Addr:
		return v, nil
	case string:
		b, err := dottedDecimalToBytes(v, 4)
		if err != nil {
			return IPv4Addr{}, err
		}
		return ipv4FromBytes(b)
	case []byte:
		return ipv4FromBytes(v)
	case [4]byte:
		return IPv4Addr{b: v}, nil
	case uint32:
		var b [4]byte
		b[0] = byte(v >> 24)
		b[1] = byte(v >> 16)
		b[2] = byte(v >> 8)
		b[3] = byte(v)
		return IPv4Addr{b: b}, nil
	case *big.Int:
		return ipv4FromBigInt(v)
	default:
		return IPv4Addr{}, fmt.Errorf("unsupported IPv4 address input %T: %w", input, ErrInvalidAddress)
	}
}

func ipv4FromBytes(b []byte) (IPv4Addr, error) {
	if len(b) != 4 {
		return IPv4Addr{}, fmt.Errorf("IPv4 address needs 4 bytes, got %d: %w", len(b), ErrInvalidAddress)
	}
	var out IPv4Addr
	copy(out.b[:], b)
	return out, nil
}

func ipv4FromBigInt(n *big.Int) (IPv4Addr, error) {
	if n.Sign() < 0 || n.BitLen() > IPv4Width {
		return IPv4Addr{}, fmt.Errorf("decimal value %s out of range for IPv4: %w", n, ErrInvalidAddress)
	}
	raw := n.Bytes()
	var b [4]byte
	copy(b[4-len(raw):], raw)
	return IPv4Addr{b: b}, nil
}

// Bytes returns a copy of the address's canonical 4-byte buffer.
func (a IPv4Addr) Bytes() []byte {
	out := make([]byte, 4)
	copy(out, a.b[:])
	return out
}

// String renders the address in dotted-decimal notation.
func (a IPv4Addr) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a.b[0], a.b[1], a.b[2], a.b[3])
}

// AsDecimal reads the address buffer as a big unsigned integer.
func (a IPv4Addr) AsDecimal() *big.Int {
	return new(big.Int).SetBytes(a.b[:])
}

// BinaryDigits returns the MSB-first bit sequence of the address, length
// 32.
func (a IPv4Addr) BinaryDigits() []int {
	return bytesToBits(a.b[:])
}

// Equal reports whether two IPv4 addresses have the same byte-wise value.
func (a IPv4Addr) Equal(other IPv4Addr) bool {
	return a.b == other.b
}

// And returns the bitwise AND of the address with a netmask, as used to
// derive a network id.
func (a IPv4Addr) And(mask IPv4NetMask) IPv4Addr {
	var out IPv4Addr
	for i := range out.b {
		out.b[i] = a.b[i] & mask.b[i]
	}
	return out
}

// Or returns the bitwise OR of the address with another 4-byte value, as
// used to derive a broadcast address (addr OR NOT mask).
func (a IPv4Addr) Or(other IPv4Addr) IPv4Addr {
	var out IPv4Addr
	for i := range out.b {
		out.b[i] = a.b[i] | other.b[i]
	}
	return out
}

// Not returns the bitwise complement of the address.
func (a IPv4Addr) Not() IPv4Addr {
	var out IPv4Addr
	for i := range out.b {
		out.b[i] = ^a.b[i]
	}
	return out
}

// AndNotWildcard returns the address with every wildcard-selected bit
// forced to zero (addr AND NOT wildcard), used by wildcard normalization.
func (a IPv4Addr) AndNotWildcard(wc IPv4WildCard) IPv4Addr {
	var out IPv4Addr
	for i := range out.b {
		out.b[i] = a.b[i] &^ wc.b[i]
	}
	return out
}

// dottedDecimalToBytes parses an N-octet dotted-decimal string (used for
// IPv4 addresses and netmasks, both 4 octets of 0-255).
func dottedDecimalToBytes(s string, octets int) ([]byte, error) {
	parts := strings.Split(s, ".")
	if len(parts) != octets {
		return nil, fmt.Errorf("dotted-decimal %q needs %d octets, got %d: %w", s, octets, len(parts), ErrInvalidAddress)
	}
	out := make([]byte, octets)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("dotted-decimal %q: invalid octet %q: %w", s, p, ErrInvalidAddress)
		}
		out[i] = byte(v)
	}
	return out, nil
}

func bytesToBits(b []byte) []int {
	bits := make([]int, 0, len(b)*8)
	for _, by := range b {
		for i := 7; i >= 0; i-- {
			bits = append(bits, int((by>>uint(i))&1))
		}
	}
	return bits
}

func bitsContiguous(bits []int) bool {
	seenZero := false
	for _, bit := range bits {
		if bit == 1 {
			if seenZero {
				return false
			}
			continue
		}
		seenZero = true
	}
	return true
}

func countLeadingOnes(bits []int) int {
	n := 0
	for _, bit := range bits {
		if bit != 1 {
			break
		}
		n++
	}
	return n
}

func popcount(bits []int) int {
	n := 0
	for _, bit := range bits {
		if bit == 1 {
			n++
		}
	}
	return n
}
