// Package ipclassify tags IPv4/IPv6 hosts and subnets against the IANA
// special-purpose address registry.
//
// Classification is a static, ordered table of (tag, blocks) rules
// rather than a polymorphic chain-of-responsibility: each rule is a
// plain data row, and host classification short-circuits on the first
// row whose blocks contain the address while subnet classification
// evaluates every row and returns the full matched set.
package ipclassify

import (
	"errors"
	"fmt"

	"github.com/netkit-go/netkit/ipaddr"
)

// ErrTypeMismatch is returned when the host address passed to Classify
// is not a valid address of the family being classified.
var ErrTypeMismatch = errors.New("address family mismatch")

// IPv4Type identifies an IPv4 special-purpose address category.
type IPv4Type int

const (
	IPv4Undefined IPv4Type = iota
	IPv4Unspecified
	IPv4LimitedBroadcast
	IPv4CurrentNetwork
	IPv4Private
	IPv4Public
	IPv4Documentation
	IPv4Multicast
	IPv4LinkLocal
	IPv4Loopback
	IPv4DSLite
	IPv4CarrierNAT
	IPv4BenchmarkTesting
	IPv4ToIPv4Relay
	IPv4Reserved
)

func (t IPv4Type) String() string {
	switch t {
	case IPv4Unspecified:
		return "Unspecified"
	case IPv4LimitedBroadcast:
		return "LimitedBroadcast"
	case IPv4CurrentNetwork:
		return "CurrentNetwork"
	case IPv4Private:
		return "Private"
	case IPv4Public:
		return "Public"
	case IPv4Documentation:
		return "Documentation"
	case IPv4Multicast:
		return "Multicast"
	case IPv4LinkLocal:
		return "LinkLocal"
	case IPv4Loopback:
		return "Loopback"
	case IPv4DSLite:
		return "DSLite"
	case IPv4CarrierNAT:
		return "CarrierNAT"
	case IPv4BenchmarkTesting:
		return "BenchmarkTesting"
	case IPv4ToIPv4Relay:
		return "IPv6ToIPv4Relay"
	case IPv4Reserved:
		return "Reserved"
	default:
		return "UndefinedType"
	}
}

type ipv4Block struct {
	addr ipaddr.IPv4Addr
	mask ipaddr.IPv4NetMask
}

func mustIPv4Block(cidr string) ipv4Block {
	host, mask, err := ipclassifySplitCIDR4(cidr)
	if err != nil {
		panic(err)
	}
	return ipv4Block{addr: host, mask: mask}
}

func ipclassifySplitCIDR4(cidr string) (ipaddr.IPv4Addr, ipaddr.IPv4NetMask, error) {
	addr, mask, err := ipaddr.StandardizeIPv4Subnet(cidr)
	if err != nil {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, err
	}
	return addr.And(mask), mask, nil
}

func (b ipv4Block) lowHigh() (ipaddr.IPv4Addr, ipaddr.IPv4Addr) {
	low := b.addr.And(b.mask)
	high := low.Or(b.mask.Not())
	return low, high
}

func (b ipv4Block) contains(a ipaddr.IPv4Addr) bool {
	return a.And(b.mask).Equal(b.addr)
}

type ipv4Rule struct {
	tag    IPv4Type
	blocks []ipv4Block
}

// ipv4Rules is the ordered rule table mandated for IPv4 host
// classification: Unspecified, LimitedBroadcast, CurrentNetwork,
// Private, Public, Documentation, Multicast, LinkLocal, Loopback,
// DSLite, CarrierNAT, BenchmarkTesting, IPv6ToIPv4Relay, Reserved.
var ipv4Rules = []ipv4Rule{
	{IPv4Unspecified, []ipv4Block{mustIPv4Block("0.0.0.0/32")}},
	{IPv4LimitedBroadcast, []ipv4Block{mustIPv4Block("255.255.255.255/32")}},
	{IPv4CurrentNetwork, []ipv4Block{mustIPv4Block("0.0.0.0/8")}},
	{IPv4Private, []ipv4Block{
		mustIPv4Block("10.0.0.0/8"),
		mustIPv4Block("172.16.0.0/12"),
		mustIPv4Block("192.168.0.0/16"),
	}},
	{IPv4Public, ipv4NonPublicBlocks()},
	{IPv4Documentation, []ipv4Block{
		mustIPv4Block("192.0.2.0/24"),
		mustIPv4Block("198.51.100.0/24"),
		mustIPv4Block("203.0.113.0/24"),
		mustIPv4Block("233.252.0.0/24"),
	}},
	{IPv4Multicast, []ipv4Block{mustIPv4Block("224.0.0.0/4")}},
	{IPv4LinkLocal, []ipv4Block{mustIPv4Block("169.254.0.0/16")}},
	{IPv4Loopback, []ipv4Block{mustIPv4Block("127.0.0.0/8")}},
	{IPv4DSLite, []ipv4Block{mustIPv4Block("192.0.0.0/24")}},
	{IPv4CarrierNAT, []ipv4Block{mustIPv4Block("100.64.0.0/10")}},
	{IPv4BenchmarkTesting, []ipv4Block{mustIPv4Block("198.18.0.0/15")}},
	{IPv4ToIPv4Relay, []ipv4Block{mustIPv4Block("192.88.99.0/24")}},
	{IPv4Reserved, []ipv4Block{mustIPv4Block("240.0.0.0/4")}},
}

// ipv4NonPublicBlocks is the list of blocks reserved not to be public;
// it mirrors the source's PUBLIC enum member, which lists every block
// an address must avoid to be considered publicly routable.
func ipv4NonPublicBlocks() []ipv4Block {
	cidrs := []string{
		"0.0.0.0/8", "10.0.0.0/8", "100.64.0.0/10", "127.0.0.0/8", "169.254.0.0/16",
		"172.16.0.0/12", "192.0.0.0/24", "192.0.2.0/24", "192.88.99.0/24", "192.168.0.0/16",
		"198.18.0.0/15", "198.51.100.0/24", "203.0.113.0/24", "224.0.0.0/4", "233.252.0.0/24",
		"240.0.0.0/4", "255.255.255.255/32",
	}
	blocks := make([]ipv4Block, len(cidrs))
	for i, c := range cidrs {
		blocks[i] = mustIPv4Block(c)
	}
	return blocks
}

// ClassifyIPv4Host returns the first rule in the ordered IPv4 table
// whose blocks contain addr, or IPv4Undefined if none fire.
func ClassifyIPv4Host(host any) (IPv4Type, error) {
	addr, err := ipaddr.ParseIPv4Address(host)
	if err != nil {
		return IPv4Undefined, fmt.Errorf("classify IPv4 host: %w: %v", ErrTypeMismatch, err)
	}

	for _, rule := range ipv4Rules {
		if rule.tag == IPv4Public {
			if ipv4NoneContain(rule.blocks, addr) {
				return IPv4Public, nil
			}
			continue
		}
		if ipv4AnyContains(rule.blocks, addr) {
			return rule.tag, nil
		}
	}
	return IPv4Undefined, nil
}

func ipv4AnyContains(blocks []ipv4Block, addr ipaddr.IPv4Addr) bool {
	for _, b := range blocks {
		if b.contains(addr) {
			return true
		}
	}
	return false
}

func ipv4NoneContain(blocks []ipv4Block, addr ipaddr.IPv4Addr) bool {
	return !ipv4AnyContains(blocks, addr)
}

// ClassifyIPv4Subnet applies every rule (no short-circuit) and returns
// the full set of matched tags for the subnet [network, broadcast].
// Firing is range overlap, not containment. Public fires iff the
// subnet is not fully contained in any single non-public block and at
// least one address in it is outside some non-public block.
func ClassifyIPv4Subnet(networkID ipaddr.IPv4Addr, mask ipaddr.IPv4NetMask) []IPv4Type {
	low := networkID.And(mask)
	high := low.Or(mask.Not())

	var matched []IPv4Type
	for _, rule := range ipv4Rules {
		if rule.tag == IPv4Public {
			if ipv4SubnetIsPublic(low, high, ipv4NonPublicBlocks()) {
				matched = append(matched, IPv4Public)
			}
			continue
		}
		if ipv4RangeOverlapsAny(rule.blocks, low, high) {
			matched = append(matched, rule.tag)
		}
	}
	return matched
}

func ipv4RangeOverlapsAny(blocks []ipv4Block, low, high ipaddr.IPv4Addr) bool {
	for _, b := range blocks {
		bLow, bHigh := b.lowHigh()
		if ipv4LE(low, bHigh) && ipv4LE(bLow, high) {
			return true
		}
	}
	return false
}

// ipv4SubnetIsPublic mirrors the source's two-pass reserved-range check:
// a subnet fully inside any single non-public block is never public;
// otherwise it is public as soon as it pokes outside any one block's
// boundaries.
func ipv4SubnetIsPublic(low, high ipaddr.IPv4Addr, nonPublic []ipv4Block) bool {
	start, end := low.AsDecimal(), high.AsDecimal()
	for _, b := range nonPublic {
		bLow, bHigh := b.lowHigh()
		rs, re := bLow.AsDecimal(), bHigh.AsDecimal()
		if rs.Cmp(start) <= 0 && start.Cmp(re) <= 0 && rs.Cmp(end) <= 0 && end.Cmp(re) <= 0 {
			return false
		}
	}
	for _, b := range nonPublic {
		bLow, bHigh := b.lowHigh()
		rs, re := bLow.AsDecimal(), bHigh.AsDecimal()
		if start.Cmp(rs) < 0 || end.Cmp(re) > 0 {
			return true
		}
	}
	return false
}

func ipv4LE(a, b ipaddr.IPv4Addr) bool {
	return a.AsDecimal().Cmp(b.AsDecimal()) <= 0
}
