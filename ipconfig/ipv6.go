package ipconfig

import (
	"fmt"
	"math/big"

	"github.com/netkit-go/netkit/ipaddr"
	"github.com/netkit-go/netkit/ipclassify"
	"github.com/netkit-go/netkit/ipsubnet"
)

// IPv6HostConfig is IPv4HostConfig's IPv6 counterpart.
type IPv6HostConfig struct {
	addr ipaddr.IPv6Addr
	mask ipaddr.IPv6NetMask
}

// NewIPv6HostConfig builds a host config from any form accepted by
// ipaddr.StandardizeIPv6Subnet.
func NewIPv6HostConfig(args ...any) (*IPv6HostConfig, error) {
	addr, mask, err := ipaddr.StandardizeIPv6Subnet(args...)
	if err != nil {
		return nil, err
	}
	return &IPv6HostConfig{addr: addr, mask: mask}, nil
}

func (c *IPv6HostConfig) Addr() ipaddr.IPv6Addr      { return c.addr }
func (c *IPv6HostConfig) Mask() ipaddr.IPv6NetMask   { return c.mask }
func (c *IPv6HostConfig) NetworkID() ipaddr.IPv6Addr { return c.addr.And(c.mask) }

// IPType classifies the host address against the IANA special-purpose
// table.
func (c *IPv6HostConfig) IPType() (ipclassify.IPv6Type, error) {
	return ipclassify.ClassifyIPv6Host(c.addr)
}

// TotalHosts returns 2^(128-prefix).
func (c *IPv6HostConfig) TotalHosts() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(ipaddr.IPv6Width-c.mask.MaskSize()))
}

func (c *IPv6HostConfig) String() string {
	return fmt.Sprintf("%s/%d", c.addr, c.mask.MaskSize())
}

// IPv6SubnetConfig is IPv4SubnetConfig's IPv6 counterpart. IPv6 has no
// broadcast address, so every address in the range including the
// network id is a usable host.
type IPv6SubnetConfig struct {
	IPv6HostConfig
}

// NewIPv6SubnetConfig builds a subnet config the same way as
// NewIPv6HostConfig; the address is normalized to its network id.
func NewIPv6SubnetConfig(args ...any) (*IPv6SubnetConfig, error) {
	addr, mask, err := ipaddr.StandardizeIPv6Subnet(args...)
	if err != nil {
		return nil, err
	}
	return &IPv6SubnetConfig{IPv6HostConfig{addr: addr.And(mask), mask: mask}}, nil
}

// FirstHost returns the network id.
func (c *IPv6SubnetConfig) FirstHost() (ipaddr.IPv6Addr, error) {
	return ipsubnet.FirstHostIPv6(c.addr, c.mask)
}

// LastHost returns the last address in the subnet's range.
func (c *IPv6SubnetConfig) LastHost() (ipaddr.IPv6Addr, error) {
	return ipsubnet.LastHostIPv6(c.addr, c.mask)
}

// SubnetRange returns [network id, last address].
func (c *IPv6SubnetConfig) SubnetRange() [2]ipaddr.IPv6Addr {
	return [2]ipaddr.IPv6Addr{c.NetworkID(), ipsubnet.LastAddrIPv6(c.addr, c.mask)}
}

// Hosts streams every address in the subnet's inclusive range in
// ascending order, including the network id (IPv6 has no broadcast
// address to exclude). The caller is responsible for bounding
// iteration on wide prefixes.
func (c *IPv6SubnetConfig) Hosts() <-chan ipaddr.IPv6Addr {
	out := make(chan ipaddr.IPv6Addr)
	go func() {
		defer close(out)
		cur := new(big.Int).Set(c.NetworkID().AsDecimal())
		last := ipsubnet.LastAddrIPv6(c.addr, c.mask).AsDecimal()
		for cur.Cmp(last) <= 0 {
			addr, err := ipaddr.ParseIPv6Address(new(big.Int).Set(cur))
			if err != nil {
				return
			}
			out <- addr
			cur.Add(cur, big.NewInt(1))
		}
	}()
	return out
}

// IPTypes returns every IANA tag whose block overlaps this subnet.
func (c *IPv6SubnetConfig) IPTypes() []ipclassify.IPv6Type {
	return ipclassify.ClassifyIPv6Subnet(c.addr, c.mask)
}

// IsWithin reports whether addr belongs to this subnet.
func (c *IPv6SubnetConfig) IsWithin(addr any) (bool, error) {
	a, err := ipaddr.ParseIPv6Address(addr)
	if err != nil {
		return false, err
	}
	return ipsubnet.IsWithinIPv6(c.addr, c.mask, a), nil
}

// Divide splits the subnet into every subnet of the target prefix
// length.
func (c *IPv6SubnetConfig) Divide(target int) ([]*IPv6SubnetConfig, error) {
	networks, mask, err := ipsubnet.DivideIPv6(c.addr, c.mask, target)
	if err != nil {
		return nil, err
	}
	out := make([]*IPv6SubnetConfig, len(networks))
	for i, n := range networks {
		out[i] = &IPv6SubnetConfig{IPv6HostConfig{addr: n, mask: mask}}
	}
	return out, nil
}

// MergeIPv6Subnets merges a non-empty set of subnets into the smallest
// single subnet that fully covers them, or fails.
func MergeIPv6Subnets(subnets ...*IPv6SubnetConfig) (*IPv6SubnetConfig, error) {
	if len(subnets) == 0 {
		return nil, fmt.Errorf("merge requires at least one subnet: %w", ErrInvalidArgument)
	}
	networks := make([]ipaddr.IPv6Addr, len(subnets))
	masks := make([]ipaddr.IPv6NetMask, len(subnets))
	for i, s := range subnets {
		networks[i] = s.addr
		masks[i] = s.mask
	}
	network, mask, err := ipsubnet.MergeIPv6(networks, masks)
	if err != nil {
		return nil, err
	}
	return &IPv6SubnetConfig{IPv6HostConfig{addr: network, mask: mask}}, nil
}

// MinimumWildcardIPv6Subnets computes the minimal wildcard config
// covering every given subnet.
func MinimumWildcardIPv6Subnets(subnets ...*IPv6SubnetConfig) (*IPv6WildCardConfig, error) {
	if len(subnets) == 0 {
		return nil, fmt.Errorf("minimum wildcard requires at least one subnet: %w", ErrInvalidArgument)
	}
	networks := make([]ipaddr.IPv6Addr, len(subnets))
	masks := make([]ipaddr.IPv6NetMask, len(subnets))
	for i, s := range subnets {
		networks[i] = s.addr
		masks[i] = s.mask
	}
	addr, wc, err := ipsubnet.MinimumWildcardIPv6(networks, masks)
	if err != nil {
		return nil, err
	}
	return &IPv6WildCardConfig{addr: addr, wildcard: wc}, nil
}

func (c *IPv6SubnetConfig) String() string {
	return fmt.Sprintf("%s/%d", c.addr, c.mask.MaskSize())
}

// IPv6WildCardConfig pairs an IPv6 address with a wildcard mask.
type IPv6WildCardConfig struct {
	addr     ipaddr.IPv6Addr
	wildcard ipaddr.IPv6WildCard
}

// NewIPv6WildCardConfig builds a wildcard config from any form accepted
// by ipaddr.StandardizeIPv6Wildcard.
func NewIPv6WildCardConfig(args ...any) (*IPv6WildCardConfig, error) {
	addr, wc, err := ipaddr.StandardizeIPv6Wildcard(args...)
	if err != nil {
		return nil, err
	}
	return &IPv6WildCardConfig{addr: addr.AndNotWildcard(wc), wildcard: wc}, nil
}

func (c *IPv6WildCardConfig) Addr() ipaddr.IPv6Addr         { return c.addr }
func (c *IPv6WildCardConfig) Wildcard() ipaddr.IPv6WildCard { return c.wildcard }

// TotalHosts returns 2^popcount(wildcard).
func (c *IPv6WildCardConfig) TotalHosts() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(c.wildcard.MaskSize()))
}

// IsWithin reports whether addr matches every fixed (non-wildcard) bit
// of this configuration.
func (c *IPv6WildCardConfig) IsWithin(addr any) (bool, error) {
	a, err := ipaddr.ParseIPv6Address(addr)
	if err != nil {
		return false, err
	}
	return a.AndNotWildcard(c.wildcard).Equal(c.addr), nil
}

func (c *IPv6WildCardConfig) String() string {
	return fmt.Sprintf("%s %s", c.addr, c.wildcard)
}
