package ipsubnet

import (
	"fmt"
	"math/big"

	"github.com/netkit-go/netkit/ipaddr"
)

// DivideIPv6 is DivideIPv4's IPv6 counterpart.
func DivideIPv6(networkID ipaddr.IPv6Addr, mask ipaddr.IPv6NetMask, target int) ([]ipaddr.IPv6Addr, ipaddr.IPv6NetMask, error) {
	current := mask.MaskSize()
	if target <= current || target > ipaddr.IPv6Width {
		return nil, ipaddr.IPv6NetMask{}, fmt.Errorf("target prefix /%d must be in %d-%d: %w", target, current+1, ipaddr.IPv6Width, ErrInvalidArgument)
	}
	targetMask, err := ipaddr.ParseIPv6NetMask(target)
	if err != nil {
		return nil, ipaddr.IPv6NetMask{}, err
	}

	hostBits := ipaddr.IPv6Width - target
	count := 1 << uint(target-current)
	base := networkID.And(mask).AsDecimal()

	out := make([]ipaddr.IPv6Addr, count)
	for k := 0; k < count; k++ {
		shifted := new(big.Int).Lsh(big.NewInt(int64(k)), uint(hostBits))
		id := new(big.Int).Or(shifted, base)
		addr, err := ipaddr.ParseIPv6Address(id)
		if err != nil {
			return nil, ipaddr.IPv6NetMask{}, err
		}
		out[k] = addr
	}
	return out, targetMask, nil
}

// FirstHostIPv6 returns the network id: IPv6 has no broadcast address,
// so the entire range including the network id is usable.
func FirstHostIPv6(networkID ipaddr.IPv6Addr, mask ipaddr.IPv6NetMask) (ipaddr.IPv6Addr, error) {
	if mask.MaskSize() == ipaddr.IPv6Width {
		return ipaddr.IPv6Addr{}, fmt.Errorf("/128 subnet: %w", ErrNoUsableHosts)
	}
	return networkID.And(mask), nil
}

// LastHostIPv6 returns the network id OR the mask's complement: the
// last address in the subnet's range.
func LastHostIPv6(networkID ipaddr.IPv6Addr, mask ipaddr.IPv6NetMask) (ipaddr.IPv6Addr, error) {
	if mask.MaskSize() == ipaddr.IPv6Width {
		return ipaddr.IPv6Addr{}, fmt.Errorf("/128 subnet: %w", ErrNoUsableHosts)
	}
	return LastAddrIPv6(networkID, mask), nil
}

// LastAddrIPv6 returns the subnet's last address (network id OR the
// mask's complement), with no /128 restriction.
func LastAddrIPv6(networkID ipaddr.IPv6Addr, mask ipaddr.IPv6NetMask) ipaddr.IPv6Addr {
	return networkID.And(mask).Or(mask.Not())
}

// IsWithinIPv6 reports whether addr belongs to networkID/mask.
func IsWithinIPv6(networkID ipaddr.IPv6Addr, mask ipaddr.IPv6NetMask, addr ipaddr.IPv6Addr) bool {
	return addr.And(mask).Equal(networkID.And(mask))
}

// MergeIPv6 is MergeIPv4's IPv6 counterpart.
func MergeIPv6(networks []ipaddr.IPv6Addr, masks []ipaddr.IPv6NetMask) (ipaddr.IPv6Addr, ipaddr.IPv6NetMask, error) {
	if len(networks) == 0 || len(networks) != len(masks) {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6NetMask{}, fmt.Errorf("merge requires matching non-empty network/mask lists: %w", ErrInvalidArgument)
	}

	largest, smallest := masks[0].MaskSize(), masks[0].MaskSize()
	bitLists := make([][]int, len(networks))
	maskLists := make([][]int, len(networks))
	for i := range networks {
		bitLists[i] = networks[i].And(masks[i]).BinaryDigits()
		maskLists[i] = masks[i].BinaryDigits()
		if s := masks[i].MaskSize(); s > largest {
			largest = s
		} else if s < smallest {
			smallest = s
		}
	}

	targetPrefix := -1
	for pos := 0; pos < ipaddr.IPv6Width; pos++ {
		ref := bitLists[0][pos]
		agree := true
		for i := 1; i < len(bitLists); i++ {
			if bitLists[i][pos] != ref {
				agree = false
				break
			}
		}
		if !agree {
			break
		}
		targetPrefix = pos + 1
		if targetPrefix == smallest {
			break
		}
	}
	if targetPrefix < 0 {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6NetMask{}, fmt.Errorf("no common prefix: %w", ErrCannotMerge)
	}

	required := bitCombinations(largest - targetPrefix)
	covered := make(map[string]struct{})
	for i := range networks {
		for _, combo := range expandByHostBits(bitLists[i][targetPrefix:largest], maskLists[i][targetPrefix:largest]) {
			covered[combo] = struct{}{}
		}
	}
	for _, combo := range required {
		if _, ok := covered[combo]; !ok {
			return ipaddr.IPv6Addr{}, ipaddr.IPv6NetMask{}, fmt.Errorf("merge window of %d bits not fully covered: %w", largest-targetPrefix, ErrCannotMerge)
		}
	}

	mergedMask, err := ipaddr.ParseIPv6NetMask(targetPrefix)
	if err != nil {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6NetMask{}, err
	}
	return networks[0].And(masks[0]), mergedMask, nil
}

// MinimumWildcardIPv6 is MinimumWildcardIPv4's IPv6 counterpart.
func MinimumWildcardIPv6(networks []ipaddr.IPv6Addr, masks []ipaddr.IPv6NetMask) (ipaddr.IPv6Addr, ipaddr.IPv6WildCard, error) {
	if len(networks) == 0 || len(networks) != len(masks) {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6WildCard{}, fmt.Errorf("minimum wildcard requires matching non-empty network/mask lists: %w", ErrInvalidArgument)
	}

	maxHostBits := 0
	bitLists := make([][]int, len(networks))
	for i := range networks {
		bitLists[i] = networks[i].BinaryDigits()
		if h := ipaddr.IPv6Width - masks[i].MaskSize(); h > maxHostBits {
			maxHostBits = h
		}
	}

	addrBits := make([]int, ipaddr.IPv6Width)
	maskBits := make([]int, ipaddr.IPv6Width)
	for pos := 0; pos < ipaddr.IPv6Width; pos++ {
		ref := bitLists[0][pos]
		agree := true
		for i := 1; i < len(bitLists); i++ {
			if bitLists[i][pos] != ref {
				agree = false
				break
			}
		}
		if agree {
			addrBits[pos] = ref
			maskBits[pos] = 0
		} else {
			addrBits[pos] = 0
			maskBits[pos] = 1
		}
	}
	for pos := ipaddr.IPv6Width - maxHostBits; pos < ipaddr.IPv6Width; pos++ {
		maskBits[pos] = 1
	}

	addr, err := ipaddr.ParseIPv6Address(bitsToBytes(addrBits))
	if err != nil {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6WildCard{}, err
	}
	wc, err := ipaddr.ParseIPv6WildCard(bitsToBytes(maskBits))
	if err != nil {
		return ipaddr.IPv6Addr{}, ipaddr.IPv6WildCard{}, err
	}
	return addr, wc, nil
}
