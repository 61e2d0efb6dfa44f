package ipconfig

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/netkit-go/netkit/ipaddr"
	"github.com/netkit-go/netkit/ipclassify"
	"golang.org/x/sync/errgroup"
)

// ipv6TypeBlocks is factory_ipv4's ipv4TypeBlocks counterpart. IPv6 has
// no distinguished "Public" tag (see ipclassify.ClassifyIPv6Host), so
// there is no rejection-sampling case here.
var ipv6TypeBlocks = map[ipclassify.IPv6Type][]string{
	ipclassify.IPv6Undefined:        {"::/0"},
	ipclassify.IPv6Unspecified:      {"::/128"},
	ipclassify.IPv6Loopback:         {"::1/128"},
	ipclassify.IPv4Mapped:           {"::ffff:0:0/96"},
	ipclassify.IPv4Translated:       {"::ffff:0:0:0/96"},
	ipclassify.IPv4IPv6Translation:  {"64:ff9b::/96", "64:ff9b:1::/48"},
	ipclassify.IPv6DiscardPrefix:    {"100::/64"},
	ipclassify.TeredoTunneling:      {"2001::/32"},
	ipclassify.IPv6Documentation:    {"2001:db8::/32", "3fff::/20"},
	ipclassify.ORCHIDv2:             {"2001:20::/28"},
	ipclassify.IPv6To4:              {"2002::/16"},
	ipclassify.SRv6:                 {"5f00::/16"},
	ipclassify.IPv6LinkLocal:        {"fe80::/64"},
	ipclassify.IPv6Multicast:        {"ff00::/8"},
	ipclassify.UniqueLocal:          {"fc00::/7"},
	ipclassify.GlobalUnicast:        {"2000::/3"},
}

// IPv6Factory is IPv4Factory's IPv6 counterpart. The cache is guarded
// by mu for the same reason as IPv4Factory's.
type IPv6Factory struct {
	mu          sync.Mutex
	subnetCache map[ipclassify.IPv6Type][]*IPv6SubnetConfig
}

// NewIPv6Factory returns a ready-to-use factory.
func NewIPv6Factory() *IPv6Factory {
	return &IPv6Factory{subnetCache: make(map[ipclassify.IPv6Type][]*IPv6SubnetConfig)}
}

// Host builds a single host config.
func (f *IPv6Factory) Host(input any) (*IPv6HostConfig, error) {
	return NewIPv6HostConfig(input)
}

// Subnet builds a single subnet config.
func (f *IPv6Factory) Subnet(input any) (*IPv6SubnetConfig, error) {
	return NewIPv6SubnetConfig(input)
}

// Wildcard builds a single wildcard config.
func (f *IPv6Factory) Wildcard(input any) (*IPv6WildCardConfig, error) {
	return NewIPv6WildCardConfig(input)
}

// BatchHosts mirrors IPv4Factory.BatchHosts.
func (f *IPv6Factory) BatchHosts(ctx context.Context, inputs []string, dedup bool) ([]*IPv6HostConfig, error) {
	items := prepareBatchInputs(inputs, dedup)
	results := make([]*IPv6HostConfig, len(items))
	g, ctx := errgroup.WithContext(ctx)
	for i, in := range items {
		i, in := i, in
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			cfg, err := f.Host(in)
			if err != nil {
				return fmt.Errorf("batch host %q: %w", in, err)
			}
			results[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BatchSubnets mirrors IPv4Factory.BatchSubnets.
func (f *IPv6Factory) BatchSubnets(ctx context.Context, inputs []string, dedup bool) ([]*IPv6SubnetConfig, error) {
	items := prepareBatchInputs(inputs, dedup)
	results := make([]*IPv6SubnetConfig, len(items))
	g, ctx := errgroup.WithContext(ctx)
	for i, in := range items {
		i, in := i, in
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			cfg, err := f.Subnet(in)
			if err != nil {
				return fmt.Errorf("batch subnet %q: %w", in, err)
			}
			results[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (f *IPv6Factory) subnetsForType(ctx context.Context, tag ipclassify.IPv6Type) ([]*IPv6SubnetConfig, error) {
	f.mu.Lock()
	if cached, ok := f.subnetCache[tag]; ok {
		f.mu.Unlock()
		return cached, nil
	}
	f.mu.Unlock()

	blocks, ok := ipv6TypeBlocks[tag]
	if !ok {
		return nil, fmt.Errorf("unknown IPv6 classification tag %v: %w", tag, ErrInvalidArgument)
	}
	subnets, err := f.BatchSubnets(ctx, blocks, false)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	if cached, ok := f.subnetCache[tag]; ok {
		f.mu.Unlock()
		return cached, nil
	}
	f.subnetCache[tag] = subnets
	f.mu.Unlock()
	return subnets, nil
}

func (f *IPv6Factory) randomSourceSubnet(ctx context.Context, tag ipclassify.IPv6Type) (*IPv6SubnetConfig, error) {
	subnets, err := f.subnetsForType(ctx, tag)
	if err != nil {
		return nil, err
	}
	idx, err := cryptoRandInt(0, len(subnets)-1)
	if err != nil {
		return nil, err
	}
	return subnets[idx], nil
}

// randomize mirrors IPv4Factory.randomize for the 128-bit address width.
func (f *IPv6Factory) randomize(source *IPv6SubnetConfig) (ipaddr.IPv6Addr, ipaddr.IPv6NetMask, error) {
	originalPrefix := source.Mask().MaskSize()
	prefix, err := cryptoRandInt(originalPrefix, ipaddr.IPv6Width)
	if err != nil {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6NetMask{}, err
	}
	mask, err := ipaddr.ParseIPv6NetMask(prefix)
	if err != nil {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6NetMask{}, err
	}
	hostBits := ipaddr.IPv6Width - originalPrefix
	randomHost, err := cryptoRandBits(hostBits)
	if err != nil {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6NetMask{}, err
	}
	combined := new(big.Int).Or(source.Addr().AsDecimal(), randomHost)
	addr, err := ipaddr.ParseIPv6Address(combined)
	if err != nil {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6NetMask{}, err
	}
	return addr, mask, nil
}

// RandomHost generates a random IPv6 host address within a random
// subnet drawn from tag's source blocks.
func (f *IPv6Factory) RandomHost(ctx context.Context, tag ipclassify.IPv6Type) (*IPv6HostConfig, error) {
	source, err := f.randomSourceSubnet(ctx, tag)
	if err != nil {
		return nil, err
	}
	addr, mask, err := f.randomize(source)
	if err != nil {
		return nil, err
	}
	return &IPv6HostConfig{addr: addr, mask: mask}, nil
}

// RandomSubnet is RandomHost's subnet counterpart.
func (f *IPv6Factory) RandomSubnet(ctx context.Context, tag ipclassify.IPv6Type) (*IPv6SubnetConfig, error) {
	source, err := f.randomSourceSubnet(ctx, tag)
	if err != nil {
		return nil, err
	}
	addr, mask, err := f.randomize(source)
	if err != nil {
		return nil, err
	}
	return &IPv6SubnetConfig{IPv6HostConfig{addr: addr.And(mask), mask: mask}}, nil
}

// RandomHostsBatch generates n random host configs concurrently.
func (f *IPv6Factory) RandomHostsBatch(ctx context.Context, tag ipclassify.IPv6Type, n int) ([]*IPv6HostConfig, error) {
	results := make([]*IPv6HostConfig, n)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			cfg, err := f.RandomHost(ctx, tag)
			if err != nil {
				return err
			}
			results[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RandomSubnetsBatch generates n random subnet configs concurrently.
func (f *IPv6Factory) RandomSubnetsBatch(ctx context.Context, tag ipclassify.IPv6Type, n int) ([]*IPv6SubnetConfig, error) {
	results := make([]*IPv6SubnetConfig, n)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			cfg, err := f.RandomSubnet(ctx, tag)
			if err != nil {
				return err
			}
			results[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
