package ipclassify

import (
	"fmt"

	"github.com/netkit-go/netkit/ipaddr"
)

// IPv6Type identifies an IPv6 special-purpose address category.
type IPv6Type int

const (
	IPv6Undefined IPv6Type = iota
	IPv6Unspecified
	IPv6Loopback
	IPv4Mapped
	IPv4Translated
	IPv4IPv6Translation
	IPv6DiscardPrefix
	TeredoTunneling
	IPv6Documentation
	ORCHIDv2
	IPv6To4
	SRv6
	IPv6LinkLocal
	IPv6Multicast
	UniqueLocal
	GlobalUnicast
)

func (t IPv6Type) String() string {
	switch t {
	case IPv6Unspecified:
		return "Unspecified"
	case IPv6Loopback:
		return "Loopback"
	case IPv4Mapped:
		return "IPv4Mapped"
	case IPv4Translated:
		return "IPv4Translated"
	case IPv4IPv6Translation:
		return "IPv4IPv6Translation"
	case IPv6DiscardPrefix:
		return "DiscardPrefix"
	case TeredoTunneling:
		return "TeredoTunneling"
	case IPv6Documentation:
		return "Documentation"
	case ORCHIDv2:
		return "ORCHIDv2"
	case IPv6To4:
		return "6to4"
	case SRv6:
		return "SRv6"
	case IPv6LinkLocal:
		return "LinkLocal"
	case IPv6Multicast:
		return "Multicast"
	case UniqueLocal:
		return "UniqueLocal"
	case GlobalUnicast:
		return "GlobalUnicast"
	default:
		return "UndefinedType"
	}
}

type ipv6Block struct {
	addr ipaddr.IPv6Addr
	mask ipaddr.IPv6NetMask
}

func mustIPv6Block(cidr string) ipv6Block {
	host, mask, err := ipaddr.StandardizeIPv6Subnet(cidr)
	if err != nil {
		panic(err)
	}
	return ipv6Block{addr: host.And(mask), mask: mask}
}

func (b ipv6Block) lowHigh() (ipaddr.IPv6Addr, ipaddr.IPv6Addr) {
	low := b.addr.And(b.mask)
	high := low.Or(b.mask.Not())
	return low, high
}

func (b ipv6Block) contains(a ipaddr.IPv6Addr) bool {
	return a.And(b.mask).Equal(b.addr)
}

type ipv6Rule struct {
	tag    IPv6Type
	blocks []ipv6Block
}

// ipv6Rules is the ordered rule table mandated for IPv6 host
// classification: Unspecified, Loopback, IPv4Mapped, IPv4Translated,
// IPv4IPv6Translation, DiscardPrefix, TeredoTunneling, Documentation,
// ORCHIDv2, 6to4, SRv6, LinkLocal, Multicast, UniqueLocal,
// GlobalUnicast.
var ipv6Rules = []ipv6Rule{
	{IPv6Unspecified, []ipv6Block{mustIPv6Block("::/128")}},
	{IPv6Loopback, []ipv6Block{mustIPv6Block("::1/128")}},
	{IPv4Mapped, []ipv6Block{mustIPv6Block("::ffff:0:0/96")}},
	{IPv4Translated, []ipv6Block{mustIPv6Block("::ffff:0:0:0/96")}},
	{IPv4IPv6Translation, []ipv6Block{
		mustIPv6Block("64:ff9b::/96"),
		mustIPv6Block("64:ff9b:1::/48"),
	}},
	{IPv6DiscardPrefix, []ipv6Block{mustIPv6Block("100::/64")}},
	{TeredoTunneling, []ipv6Block{mustIPv6Block("2001::/32")}},
	{IPv6Documentation, []ipv6Block{
		mustIPv6Block("2001:db8::/32"),
		mustIPv6Block("3fff::/20"),
	}},
	{ORCHIDv2, []ipv6Block{mustIPv6Block("2001:20::/28")}},
	{IPv6To4, []ipv6Block{mustIPv6Block("2002::/16")}},
	{SRv6, []ipv6Block{mustIPv6Block("5f00::/16")}},
	{IPv6LinkLocal, []ipv6Block{mustIPv6Block("fe80::/64")}},
	{IPv6Multicast, []ipv6Block{mustIPv6Block("ff00::/8")}},
	{UniqueLocal, []ipv6Block{mustIPv6Block("fc00::/7")}},
	{GlobalUnicast, []ipv6Block{mustIPv6Block("2000::/3")}},
}

// ClassifyIPv6Host returns the first rule in the ordered IPv6 table
// whose blocks contain addr, or IPv6Undefined if none fire.
func ClassifyIPv6Host(host any) (IPv6Type, error) {
	addr, err := ipaddr.ParseIPv6Address(host)
	if err != nil {
		return IPv6Undefined, fmt.Errorf("classify IPv6 host: %w: %v", ErrTypeMismatch, err)
	}

	for _, rule := range ipv6Rules {
		if ipv6AnyContains(rule.blocks, addr) {
			return rule.tag, nil
		}
	}
	return IPv6Undefined, nil
}

func ipv6AnyContains(blocks []ipv6Block, addr ipaddr.IPv6Addr) bool {
	for _, b := range blocks {
		if b.contains(addr) {
			return true
		}
	}
	return false
}

// ClassifyIPv6Subnet applies every rule (no short-circuit) and returns
// the full set of matched tags for the subnet [network, last address].
// IPv6 has no distinguished public/non-public split, so every rule
// uses the plain range-overlap test.
func ClassifyIPv6Subnet(networkID ipaddr.IPv6Addr, mask ipaddr.IPv6NetMask) []IPv6Type {
	low := networkID.And(mask)
	high := low.Or(mask.Not())

	var matched []IPv6Type
	for _, rule := range ipv6Rules {
		if ipv6RangeOverlapsAny(rule.blocks, low, high) {
			matched = append(matched, rule.tag)
		}
	}
	return matched
}

func ipv6RangeOverlapsAny(blocks []ipv6Block, low, high ipaddr.IPv6Addr) bool {
	for _, b := range blocks {
		bLow, bHigh := b.lowHigh()
		if ipv6LE(low, bHigh) && ipv6LE(bLow, high) {
			return true
		}
	}
	return false
}

func ipv6LE(a, b ipaddr.IPv6Addr) bool {
	return a.AsDecimal().Cmp(b.AsDecimal()) <= 0
}
