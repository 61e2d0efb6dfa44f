package ipsubnet

import (
	"fmt"
	"math/big"

	"github.com/netkit-go/netkit/ipaddr"
)

// DivideIPv4 splits the subnet rooted at networkID/mask into every
// subnet of the target prefix length, in ascending network-id order.
// target must be strictly greater than the current prefix and no wider
// than 32 bits.
func DivideIPv4(networkID ipaddr.IPv4Addr, mask ipaddr.IPv4NetMask, target int) ([]ipaddr.IPv4Addr, ipaddr.IPv4NetMask, error) {
	current := mask.MaskSize()
	if target <= current || target > ipaddr.IPv4Width {
		return nil, ipaddr.IPv4NetMask{}, fmt.Errorf("target prefix /%d must be in %d-%d: %w", target, current+1, ipaddr.IPv4Width, ErrInvalidArgument)
	}
	targetMask, err := ipaddr.ParseIPv4NetMask(target)
	if err != nil {
		return nil, ipaddr.IPv4NetMask{}, err
	}

	hostBits := ipaddr.IPv4Width - target
	count := 1 << uint(target-current)
	base := networkID.And(mask).AsDecimal()

	out := make([]ipaddr.IPv4Addr, count)
	for k := 0; k < count; k++ {
		shifted := new(big.Int).Lsh(big.NewInt(int64(k)), uint(hostBits))
		id := new(big.Int).Or(shifted, base)
		addr, err := ipaddr.ParseIPv4Address(id)
		if err != nil {
			return nil, ipaddr.IPv4NetMask{}, err
		}
		out[k] = addr
	}
	return out, targetMask, nil
}

// FirstHostIPv4 returns the first usable host address in the subnet.
// /32 has no usable hosts; /31 treats the network id itself as the
// first host (RFC 3021).
func FirstHostIPv4(networkID ipaddr.IPv4Addr, mask ipaddr.IPv4NetMask) (ipaddr.IPv4Addr, error) {
	switch mask.MaskSize() {
	case ipaddr.IPv4Width:
		return ipaddr.IPv4Addr{}, fmt.Errorf("/32 subnet: %w", ErrNoUsableHosts)
	case ipaddr.IPv4Width - 1:
		return networkID.And(mask), nil
	default:
		n := new(big.Int).Add(networkID.And(mask).AsDecimal(), big.NewInt(1))
		return ipaddr.ParseIPv4Address(n)
	}
}

// LastHostIPv4 returns the last usable host address in the subnet.
func LastHostIPv4(networkID ipaddr.IPv4Addr, mask ipaddr.IPv4NetMask) (ipaddr.IPv4Addr, error) {
	broadcast := BroadcastIPv4(networkID, mask)
	switch mask.MaskSize() {
	case ipaddr.IPv4Width:
		return ipaddr.IPv4Addr{}, fmt.Errorf("/32 subnet: %w", ErrNoUsableHosts)
	case ipaddr.IPv4Width - 1:
		return broadcast, nil
	default:
		n := new(big.Int).Sub(broadcast.AsDecimal(), big.NewInt(1))
		return ipaddr.ParseIPv4Address(n)
	}
}

// BroadcastIPv4 returns the subnet's broadcast address (network id OR
// the mask's complement).
func BroadcastIPv4(networkID ipaddr.IPv4Addr, mask ipaddr.IPv4NetMask) ipaddr.IPv4Addr {
	return networkID.And(mask).Or(mask.Not())
}

// IsWithinIPv4 reports whether addr belongs to networkID/mask.
func IsWithinIPv4(networkID ipaddr.IPv4Addr, mask ipaddr.IPv4NetMask, addr ipaddr.IPv4Addr) bool {
	return addr.And(mask).Equal(networkID.And(mask))
}

// MergeIPv4 finds the largest prefix t* such that the common MSB prefix
// of every subnet's network id, taken to length t*, fully covers the
// bit combinations contributed by the inputs across [t*, maxPrefix).
// On success it returns the merged network id and mask; otherwise
// ErrCannotMerge.
func MergeIPv4(networks []ipaddr.IPv4Addr, masks []ipaddr.IPv4NetMask) (ipaddr.IPv4Addr, ipaddr.IPv4NetMask, error) {
	if len(networks) == 0 || len(networks) != len(masks) {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, fmt.Errorf("merge requires matching non-empty network/mask lists: %w", ErrInvalidArgument)
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
	for pos := 0; pos < ipaddr.IPv4Width; pos++ {
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
		return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, fmt.Errorf("no common prefix: %w", ErrCannotMerge)
	}

	required := bitCombinations(largest - targetPrefix)
	covered := make(map[string]struct{})
	for i := range networks {
		for _, combo := range expandByHostBits(bitLists[i][targetPrefix:largest], maskLists[i][targetPrefix:largest]) {
			covered[combo] = struct{}{}
		}
	}
	if len(covered) != len(required) {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, fmt.Errorf("merge window of %d bits not fully covered: %w", largest-targetPrefix, ErrCannotMerge)
	}
	for _, combo := range required {
		if _, ok := covered[combo]; !ok {
			return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, fmt.Errorf("merge window of %d bits not fully covered: %w", largest-targetPrefix, ErrCannotMerge)
		}
	}

	mergedMask, err := ipaddr.ParseIPv4NetMask(targetPrefix)
	if err != nil {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4NetMask{}, err
	}
	return networks[0].And(masks[0]), mergedMask, nil
}

// MinimumWildcardIPv4 computes the minimal wildcard address/mask pair
// that covers every given subnet: bits where all network ids agree
// become fixed wildcard-address bits with the wildcard-mask bit clear;
// disagreeing bits float (mask bit set). The low H bits of the mask are
// then forced free, H being the widest host field among the inputs.
func MinimumWildcardIPv4(networks []ipaddr.IPv4Addr, masks []ipaddr.IPv4NetMask) (ipaddr.IPv4Addr, ipaddr.IPv4WildCard, error) {
	if len(networks) == 0 || len(networks) != len(masks) {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4WildCard{}, fmt.Errorf("minimum wildcard requires matching non-empty network/mask lists: %w", ErrInvalidArgument)
	}

	maxHostBits := 0
	bitLists := make([][]int, len(networks))
	for i := range networks {
		bitLists[i] = networks[i].BinaryDigits()
		if h := ipaddr.IPv4Width - masks[i].MaskSize(); h > maxHostBits {
			maxHostBits = h
		}
	}

	addrBits := make([]int, ipaddr.IPv4Width)
	maskBits := make([]int, ipaddr.IPv4Width)
	for pos := 0; pos < ipaddr.IPv4Width; pos++ {
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
	for pos := ipaddr.IPv4Width - maxHostBits; pos < ipaddr.IPv4Width; pos++ {
		maskBits[pos] = 1
	}

	addr, err := bitsToIPv4Addr(addrBits)
	if err != nil {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4WildCard{}, err
	}
	wc, err := bitsToIPv4WildCard(maskBits)
	if err != nil {
		return ipaddr.IPv4Addr{}, ipaddr.IPv4WildCard{}, err
	}
	return addr, wc, nil
}

func bitsToIPv4Addr(bits []int) (ipaddr.IPv4Addr, error) {
	return ipaddr.ParseIPv4Address(bitsToBytes(bits))
}

func bitsToIPv4WildCard(bits []int) (ipaddr.IPv4WildCard, error) {
	return ipaddr.ParseIPv4WildCard(bitsToBytes(bits))
}

func bitsToBytes(bits []int) []byte {
	out := make([]byte, len(bits)/8)
	for i, bit := range bits {
		if bit == 1 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// bitCombinations enumerates every n-bit binary string, e.g. n=2 gives
// {"00","01","10","11"}.
func bitCombinations(n int) []string {
	if n <= 0 {
		return []string{""}
	}
	out := make([]string, 0, 1<<uint(n))
	for i := 0; i < 1<<uint(n); i++ {
		out = append(out, fmt.Sprintf("%0*b", n, i))
	}
	return out
}

// expandByHostBits expands a subnet's bits within a window into every
// concrete bit combination the subnet actually covers: fixed where the
// subnet's own mask bit is 1, free-varying where it is 0.
func expandByHostBits(bits, maskBits []int) []string {
	var freeIdx []int
	for i, m := range maskBits {
		if m == 0 {
			freeIdx = append(freeIdx, i)
		}
	}
	base := make([]byte, len(bits))
	for i, b := range bits {
		base[i] = byte('0' + b)
	}
	if len(freeIdx) == 0 {
		return []string{string(base)}
	}
	out := make([]string, 0, 1<<uint(len(freeIdx)))
	for combo := 0; combo < 1<<uint(len(freeIdx)); combo++ {
		cur := make([]byte, len(base))
		copy(cur, base)
		for j, idx := range freeIdx {
			bit := (combo >> uint(len(freeIdx)-1-j)) & 1
			cur[idx] = byte('0' + bit)
		}
		out = append(out, string(cur))
	}
	return out
}
