package ipconfig

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/netkit-go/netkit/ipaddr"
	"github.com/netkit-go/netkit/ipclassify"
	"golang.org/x/sync/errgroup"
)

// ipv4TypeBlocks gives each classification tag its source CIDR blocks,
// used to pick a starting point for random generation. IPv4Undefined
// stands for "no constraint" and draws from the full address space.
var ipv4TypeBlocks = map[ipclassify.IPv4Type][]string{
	ipclassify.IPv4Undefined:        {"0.0.0.0/0"},
	ipclassify.IPv4Unspecified:      {"0.0.0.0/32"},
	ipclassify.IPv4LimitedBroadcast: {"255.255.255.255/32"},
	ipclassify.IPv4CurrentNetwork:   {"0.0.0.0/8"},
	ipclassify.IPv4Private: {
		"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16",
	},
	ipclassify.IPv4Public: {"0.0.0.0/0"},
	ipclassify.IPv4Documentation: {
		"192.0.2.0/24", "198.51.100.0/24", "203.0.113.0/24", "233.252.0.0/24",
	},
	ipclassify.IPv4Multicast:        {"224.0.0.0/4"},
	ipclassify.IPv4LinkLocal:        {"169.254.0.0/16"},
	ipclassify.IPv4Loopback:         {"127.0.0.0/8"},
	ipclassify.IPv4DSLite:           {"192.0.0.0/24"},
	ipclassify.IPv4CarrierNAT:       {"100.64.0.0/10"},
	ipclassify.IPv4BenchmarkTesting: {"198.18.0.0/15"},
	ipclassify.IPv4ToIPv4Relay:      {"192.88.99.0/24"},
	ipclassify.IPv4Reserved:         {"240.0.0.0/4"},
}

// IPv4Factory builds Host/Subnet/Wildcard configs from flexible input
// and generates random ones constrained to an IANA classification tag.
// It caches the source-subnet pool for each tag it has been asked for.
// The cache is guarded by mu since RandomHostsBatch/RandomSubnetsBatch
// fan concurrent callers into subnetsForType.
type IPv4Factory struct {
	mu          sync.Mutex
	subnetCache map[ipclassify.IPv4Type][]*IPv4SubnetConfig
}

// NewIPv4Factory returns a ready-to-use factory.
func NewIPv4Factory() *IPv4Factory {
	return &IPv4Factory{subnetCache: make(map[ipclassify.IPv4Type][]*IPv4SubnetConfig)}
}

// Host builds a single host config.
func (f *IPv4Factory) Host(input any) (*IPv4HostConfig, error) {
	return NewIPv4HostConfig(input)
}

// Subnet builds a single subnet config.
func (f *IPv4Factory) Subnet(input any) (*IPv4SubnetConfig, error) {
	return NewIPv4SubnetConfig(input)
}

// Wildcard builds a single wildcard config.
func (f *IPv4Factory) Wildcard(input any) (*IPv4WildCardConfig, error) {
	return NewIPv4WildCardConfig(input)
}

// BatchHosts builds a host config for every input concurrently. When
// dedup is false, results preserve input order; when dedup is true,
// duplicate input strings are dropped and results are sorted by input
// text before being built. If any input fails, the first error is
// returned and no results are.
func (f *IPv4Factory) BatchHosts(ctx context.Context, inputs []string, dedup bool) ([]*IPv4HostConfig, error) {
	items := prepareBatchInputs(inputs, dedup)
	results := make([]*IPv4HostConfig, len(items))
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

// BatchSubnets is BatchHosts' subnet counterpart.
func (f *IPv4Factory) BatchSubnets(ctx context.Context, inputs []string, dedup bool) ([]*IPv4SubnetConfig, error) {
	items := prepareBatchInputs(inputs, dedup)
	results := make([]*IPv4SubnetConfig, len(items))
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

func prepareBatchInputs(inputs []string, dedup bool) []string {
	if !dedup {
		return inputs
	}
	seen := make(map[string]struct{}, len(inputs))
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in]; ok {
			continue
		}
		seen[in] = struct{}{}
		out = append(out, in)
	}
	sort.Strings(out)
	return out
}

func (f *IPv4Factory) subnetsForType(ctx context.Context, tag ipclassify.IPv4Type) ([]*IPv4SubnetConfig, error) {
	f.mu.Lock()
	if cached, ok := f.subnetCache[tag]; ok {
		f.mu.Unlock()
		return cached, nil
	}
	f.mu.Unlock()

	blocks, ok := ipv4TypeBlocks[tag]
	if !ok {
		return nil, fmt.Errorf("unknown IPv4 classification tag %v: %w", tag, ErrInvalidArgument)
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

func (f *IPv4Factory) randomSourceSubnet(ctx context.Context, tag ipclassify.IPv4Type) (*IPv4SubnetConfig, error) {
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

// randomize picks a uniform random prefix between the source subnet's
// own prefix and the address width, then a uniform random host-bit
// pattern, and returns the resulting (address, mask) pair.
func (f *IPv4Factory) randomize(source *IPv4SubnetConfig) (ipaddr.IPv4Addr, ipaddr.IPv4NetMask, error) {
	originalPrefix := source.Mask().MaskSize()
	prefix, err := cryptoRandInt(originalPrefix, ipaddr.IPv4Width)
	if err != nil {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, err
	}
	mask, err := ipaddr.ParseIPv4NetMask(prefix)
	if err != nil {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, err
	}
	hostBits := ipaddr.IPv4Width - originalPrefix
	randomHost, err := cryptoRandBits(hostBits)
	if err != nil {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, err
	}
	combined := new(big.Int).Or(source.Addr().AsDecimal(), randomHost)
	addr, err := ipaddr.ParseIPv4Address(combined)
	if err != nil {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, err
	}
	return addr, mask, nil
}

// RandomHost generates a random IPv4 host address within a random
// subnet drawn from tag's source blocks. IPv4Public additionally
// rejection-samples until the result classifies as Public.
func (f *IPv4Factory) RandomHost(ctx context.Context, tag ipclassify.IPv4Type) (*IPv4HostConfig, error) {
	source, err := f.randomSourceSubnet(ctx, tag)
	if err != nil {
		return nil, err
	}
	addr, mask, err := f.randomize(source)
	if err != nil {
		return nil, err
	}
	if tag == ipclassify.IPv4Public {
		got, err := ipclassify.ClassifyIPv4Host(addr)
		if err != nil {
			return nil, err
		}
		if got != ipclassify.IPv4Public {
			return f.RandomHost(ctx, tag)
		}
	}
	return &IPv4HostConfig{addr: addr, mask: mask}, nil
}

// RandomSubnet is RandomHost's subnet counterpart.
func (f *IPv4Factory) RandomSubnet(ctx context.Context, tag ipclassify.IPv4Type) (*IPv4SubnetConfig, error) {
	source, err := f.randomSourceSubnet(ctx, tag)
	if err != nil {
		return nil, err
	}
	addr, mask, err := f.randomize(source)
	if err != nil {
		return nil, err
	}
	if tag == ipclassify.IPv4Public {
		got, err := ipclassify.ClassifyIPv4Host(addr)
		if err != nil {
			return nil, err
		}
		if got != ipclassify.IPv4Public {
			return f.RandomSubnet(ctx, tag)
		}
	}
	return &IPv4SubnetConfig{IPv4HostConfig{addr: addr.And(mask), mask: mask}}, nil
}

// RandomHostsBatch generates n random host configs concurrently.
func (f *IPv4Factory) RandomHostsBatch(ctx context.Context, tag ipclassify.IPv4Type, n int) ([]*IPv4HostConfig, error) {
	results := make([]*IPv4HostConfig, n)
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
func (f *IPv4Factory) RandomSubnetsBatch(ctx context.Context, tag ipclassify.IPv4Type, n int) ([]*IPv4SubnetConfig, error) {
	results := make([]*IPv4SubnetConfig, n)
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
