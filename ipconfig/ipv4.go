package ipconfig

import (
	"fmt"
	"math/big"

	"github.com/netkit-go/netkit/ipaddr"
	"github.com/netkit-go/netkit/ipclassify"
	"github.com/netkit-go/netkit/ipsubnet"
)

// IPv4HostConfig pairs an IPv4 address with its netmask and derives the
// network id, broadcast address, and IANA classification.
type IPv4HostConfig struct {
	addr ipaddr.IPv4Addr
	mask ipaddr.IPv4NetMask
}

// NewIPv4HostConfig builds a host config from any form accepted by
// ipaddr.StandardizeIPv4Subnet: a combined "A.B.C.D/N" string, or an
// address and mask passed separately.
func NewIPv4HostConfig(args ...any) (*IPv4HostConfig, error) {
	addr, mask, err := ipaddr.StandardizeIPv4Subnet(args...)
	if err != nil {
		return nil, err
	}
	return &IPv4HostConfig{addr: addr, mask: mask}, nil
}

func (c *IPv4HostConfig) Addr() ipaddr.IPv4Addr     { return c.addr }
func (c *IPv4HostConfig) Mask() ipaddr.IPv4NetMask  { return c.mask }
func (c *IPv4HostConfig) NetworkID() ipaddr.IPv4Addr { return c.addr.And(c.mask) }
func (c *IPv4HostConfig) BroadcastIP() ipaddr.IPv4Addr {
	return ipsubnet.BroadcastIPv4(c.addr, c.mask)
}

// IPType classifies the host address against the IANA special-purpose
// table.
func (c *IPv4HostConfig) IPType() (ipclassify.IPv4Type, error) {
	return ipclassify.ClassifyIPv4Host(c.addr)
}

// TotalHosts returns 2^(32-prefix), the subnet's total address count.
func (c *IPv4HostConfig) TotalHosts() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(ipaddr.IPv4Width-c.mask.MaskSize()))
}

// UsableHosts returns TotalHosts minus network id and broadcast, except
// for the RFC 3021 /31 point-to-point link (both addresses usable) and
// /32 (the address itself, as a single host route).
func (c *IPv4HostConfig) UsableHosts() *big.Int {
	switch c.mask.MaskSize() {
	case ipaddr.IPv4Width:
		return big.NewInt(1)
	case ipaddr.IPv4Width - 1:
		return big.NewInt(2)
	default:
		return new(big.Int).Sub(c.TotalHosts(), big.NewInt(2))
	}
}

func (c *IPv4HostConfig) String() string {
	return fmt.Sprintf("%s/%d", c.addr, c.mask.MaskSize())
}

// IPv4SubnetConfig extends IPv4HostConfig with subnet-wide operations:
// first/last usable host, membership tests, division and merge.
type IPv4SubnetConfig struct {
	IPv4HostConfig
}

// NewIPv4SubnetConfig builds a subnet config the same way as
// NewIPv4HostConfig; the address is normalized to its network id.
func NewIPv4SubnetConfig(args ...any) (*IPv4SubnetConfig, error) {
	addr, mask, err := ipaddr.StandardizeIPv4Subnet(args...)
	if err != nil {
		return nil, err
	}
	return &IPv4SubnetConfig{IPv4HostConfig{addr: addr.And(mask), mask: mask}}, nil
}

// FirstHost returns the subnet's first usable host address.
func (c *IPv4SubnetConfig) FirstHost() (ipaddr.IPv4Addr, error) {
	return ipsubnet.FirstHostIPv4(c.addr, c.mask)
}

// LastHost returns the subnet's last usable host address.
func (c *IPv4SubnetConfig) LastHost() (ipaddr.IPv4Addr, error) {
	return ipsubnet.LastHostIPv4(c.addr, c.mask)
}

// SubnetRange returns [network id, broadcast].
func (c *IPv4SubnetConfig) SubnetRange() [2]ipaddr.IPv4Addr {
	return [2]ipaddr.IPv4Addr{c.NetworkID(), c.BroadcastIP()}
}

// IPTypes returns every IANA tag whose block overlaps this subnet.
func (c *IPv4SubnetConfig) IPTypes() []ipclassify.IPv4Type {
	return ipclassify.ClassifyIPv4Subnet(c.addr, c.mask)
}

// Hosts streams every usable host address, FirstHost through LastHost,
// in ascending order on the returned channel, which is closed once
// exhausted. A /32 yields no addresses.
func (c *IPv4SubnetConfig) Hosts() <-chan ipaddr.IPv4Addr {
	out := make(chan ipaddr.IPv4Addr)
	go func() {
		defer close(out)
		first, err := c.FirstHost()
		if err != nil {
			return
		}
		last, err := c.LastHost()
		if err != nil {
			return
		}
		cur := new(big.Int).Set(first.AsDecimal())
		end := last.AsDecimal()
		for cur.Cmp(end) <= 0 {
			addr, err := ipaddr.ParseIPv4Address(new(big.Int).Set(cur))
			if err != nil {
				return
			}
			out <- addr
			cur.Add(cur, big.NewInt(1))
		}
	}()
	return out
}

// IsWithin reports whether addr belongs to this subnet.
func (c *IPv4SubnetConfig) IsWithin(addr any) (bool, error) {
	a, err := ipaddr.ParseIPv4Address(addr)
	if err != nil {
		return false, err
	}
	return ipsubnet.IsWithinIPv4(c.addr, c.mask, a), nil
}

// Divide splits the subnet into every subnet of the target prefix
// length.
func (c *IPv4SubnetConfig) Divide(target int) ([]*IPv4SubnetConfig, error) {
	networks, mask, err := ipsubnet.DivideIPv4(c.addr, c.mask, target)
	if err != nil {
		return nil, err
	}
	out := make([]*IPv4SubnetConfig, len(networks))
	for i, n := range networks {
		out[i] = &IPv4SubnetConfig{IPv4HostConfig{addr: n, mask: mask}}
	}
	return out, nil
}

// MergeIPv4Subnets merges a non-empty set of subnets into the smallest
// single subnet that fully covers them, or fails.
func MergeIPv4Subnets(subnets ...*IPv4SubnetConfig) (*IPv4SubnetConfig, error) {
	if len(subnets) == 0 {
		return nil, fmt.Errorf("merge requires at least one subnet: %w", ErrInvalidArgument)
	}
	networks := make([]ipaddr.IPv4Addr, len(subnets))
	masks := make([]ipaddr.IPv4NetMask, len(subnets))
	for i, s := range subnets {
		networks[i] = s.addr
		masks[i] = s.mask
	}
	network, mask, err := ipsubnet.MergeIPv4(networks, masks)
	if err != nil {
		return nil, err
	}
	return &IPv4SubnetConfig{IPv4HostConfig{addr: network, mask: mask}}, nil
}

// MinimumWildcardIPv4Subnets computes the minimal wildcard config
// covering every given subnet.
func MinimumWildcardIPv4Subnets(subnets ...*IPv4SubnetConfig) (*IPv4WildCardConfig, error) {
	if len(subnets) == 0 {
		return nil, fmt.Errorf("minimum wildcard requires at least one subnet: %w", ErrInvalidArgument)
	}
	networks := make([]ipaddr.IPv4Addr, len(subnets))
	masks := make([]ipaddr.IPv4NetMask, len(subnets))
	for i, s := range subnets {
		networks[i] = s.addr
		masks[i] = s.mask
	}
	addr, wc, err := ipsubnet.MinimumWildcardIPv4(networks, masks)
	if err != nil {
		return nil, err
	}
	return &IPv4WildCardConfig{addr: addr, wildcard: wc}, nil
}

func (c *IPv4SubnetConfig) String() string {
	return fmt.Sprintf("%s/%d", c.addr, c.mask.MaskSize())
}

// IPv4WildCardConfig pairs an IPv4 address with a wildcard mask.
type IPv4WildCardConfig struct {
	addr     ipaddr.IPv4Addr
	wildcard ipaddr.IPv4WildCard
}

// NewIPv4WildCardConfig builds a wildcard config from any form accepted
// by ipaddr.StandardizeIPv4Wildcard.
func NewIPv4WildCardConfig(args ...any) (*IPv4WildCardConfig, error) {
	addr, wc, err := ipaddr.StandardizeIPv4Wildcard(args...)
	if err != nil {
		return nil, err
	}
	return &IPv4WildCardConfig{addr: addr.AndNotWildcard(wc), wildcard: wc}, nil
}

func (c *IPv4WildCardConfig) Addr() ipaddr.IPv4Addr         { return c.addr }
func (c *IPv4WildCardConfig) Wildcard() ipaddr.IPv4WildCard { return c.wildcard }

// TotalHosts returns 2^popcount(wildcard).
func (c *IPv4WildCardConfig) TotalHosts() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(c.wildcard.MaskSize()))
}

// Hosts streams every address selected by the wildcard mask, in
// ascending free-bit-combination order.
func (c *IPv4WildCardConfig) Hosts() <-chan ipaddr.IPv4Addr {
	out := make(chan ipaddr.IPv4Addr)
	go func() {
		defer close(out)
		var freeIdx []int
		wcBits := c.wildcard.BinaryDigits()
		baseBits := c.addr.BinaryDigits()
		for i, b := range wcBits {
			if b == 1 {
				freeIdx = append(freeIdx, i)
			}
		}
		total := 1 << uint(len(freeIdx))
		for combo := 0; combo < total; combo++ {
			bits := make([]int, len(baseBits))
			copy(bits, baseBits)
			for j, idx := range freeIdx {
				bits[idx] = (combo >> uint(len(freeIdx)-1-j)) & 1
			}
			addr, err := ipaddr.ParseIPv4Address(bitsToIPv4Bytes(bits))
			if err != nil {
				return
			}
			out <- addr
		}
	}()
	return out
}

// IsWithin reports whether addr matches every fixed (non-wildcard) bit
// of this configuration.
func (c *IPv4WildCardConfig) IsWithin(addr any) (bool, error) {
	a, err := ipaddr.ParseIPv4Address(addr)
	if err != nil {
		return false, err
	}
	return a.AndNotWildcard(c.wildcard).Equal(c.addr), nil
}

func (c *IPv4WildCardConfig) String() string {
	return fmt.Sprintf("%s %s", c.addr, c.wildcard)
}

func bitsToIPv4Bytes(bits []int) []byte {
	out := make([]byte, len(bits)/8)
	for i, bit := range bits {
		if bit == 1 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
