package ipaddr

import (
	"fmt"
	"strings"
)

// StandardizeIPv4Subnet accepts a flexible IPv4 (host, netmask) spelling
// and returns the parsed pair. Recognized forms, tried in this order:
// a combined "A.B.C.D/N" or "A.B.C.D M.M.M.M" string, or an address and
// netmask passed as two separate values.
func StandardizeIPv4Subnet(args ...any) (IPv4Addr, IPv4NetMask, error) {
	if len(args) == 1 {
		s, ok := args[0].(string)
		if !ok {
			return IPv4Addr{}, IPv4NetMask{}, fmt.Errorf("single-argument form requires a string: %w", ErrInvalidArgument)
		}
		hostPart, maskPart, err := splitHostAndMask(s)
		if err != nil {
			return IPv4Addr{}, IPv4NetMask{}, err
		}
		host, err := ParseIPv4Address(hostPart)
		if err != nil {
			return IPv4Addr{}, IPv4NetMask{}, err
		}
		mask, err := ParseIPv4NetMask(maskPart)
		if err != nil {
			return IPv4Addr{}, IPv4NetMask{}, err
		}
		return host, mask, nil
	}
	if len(args) == 2 {
		host, err := ParseIPv4Address(args[0])
		if err != nil {
			return IPv4Addr{}, IPv4NetMask{}, err
		}
		mask, err := ParseIPv4NetMask(args[1])
		if err != nil {
			return IPv4Addr{}, IPv4NetMask{}, err
		}
		return host, mask, nil
	}
	return IPv4Addr{}, IPv4NetMask{}, fmt.Errorf("expected 1 or 2 arguments, got %d: %w", len(args), ErrInvalidArgument)
}

// StandardizeIPv4Wildcard is StandardizeIPv4Subnet's wildcard-mask
// counterpart.
func StandardizeIPv4Wildcard(args ...any) (IPv4Addr, IPv4WildCard, error) {
	if len(args) == 1 {
		s, ok := args[0].(string)
		if !ok {
			return IPv4Addr{}, IPv4WildCard{}, fmt.Errorf("single-argument form requires a string: %w", ErrInvalidArgument)
		}
		hostPart, maskPart, err := splitHostAndMask(s)
		if err != nil {
			return IPv4Addr{}, IPv4WildCard{}, err
		}
		host, err := ParseIPv4Address(hostPart)
		if err != nil {
			return IPv4Addr{}, IPv4WildCard{}, err
		}
		wc, err := ParseIPv4WildCard(maskPart)
		if err != nil {
			return IPv4Addr{}, IPv4WildCard{}, err
		}
		return host, wc, nil
	}
	if len(args) == 2 {
		host, err := ParseIPv4Address(args[0])
		if err != nil {
			return IPv4Addr{}, IPv4WildCard{}, err
		}
		wc, err := ParseIPv4WildCard(args[1])
		if err != nil {
			return IPv4Addr{}, IPv4WildCard{}, err
		}
		return host, wc, nil
	}
	return IPv4Addr{}, IPv4WildCard{}, fmt.Errorf("expected 1 or 2 arguments, got %d: %w", len(args), ErrInvalidArgument)
}

// StandardizeIPv6Subnet is StandardizeIPv4Subnet's IPv6 counterpart:
// "addr/N" or "addr maskliteral", or two separate values.
func StandardizeIPv6Subnet(args ...any) (IPv6Addr, IPv6NetMask, error) {
	if len(args) == 1 {
		s, ok := args[0].(string)
		if !ok {
			return IPv6Addr{}, IPv6NetMask{}, fmt.Errorf("single-argument form requires a string: %w", ErrInvalidArgument)
		}
		hostPart, maskPart, err := splitHostAndMask(s)
		if err != nil {
			return IPv6Addr{}, IPv6NetMask{}, err
		}
		host, err := ParseIPv6Address(hostPart)
		if err != nil {
			return IPv6Addr{}, IPv6NetMask{}, err
		}
		mask, err := ParseIPv6NetMask(maskPart)
		if err != nil {
			return IPv6Addr{}, IPv6NetMask{}, err
		}
		return host, mask, nil
	}
	if len(args) == 2 {
		host, err := ParseIPv6Address(args[0])
		if err != nil {
			return IPv6Addr{}, IPv6NetMask{}, err
		}
		mask, err := ParseIPv6NetMask(args[1])
		if err != nil {
			return IPv6Addr{}, IPv6NetMask{}, err
		}
		return host, mask, nil
	}
	return IPv6Addr{}, IPv6NetMask{}, fmt.Errorf("expected 1 or 2 arguments, got %d: %w", len(args), ErrInvalidArgument)
}

// StandardizeIPv6Wildcard is StandardizeIPv6Subnet's wildcard-mask
// counterpart.
func StandardizeIPv6Wildcard(args ...any) (IPv6Addr, IPv6WildCard, error) {
	if len(args) == 1 {
		s, ok := args[0].(string)
		if !ok {
			return IPv6Addr{}, IPv6WildCard{}, fmt.Errorf("single-argument form requires a string: %w", ErrInvalidArgument)
		}
		hostPart, maskPart, err := splitHostAndMask(s)
		if err != nil {
			return IPv6Addr{}, IPv6WildCard{}, err
		}
		host, err := ParseIPv6Address(hostPart)
		if err != nil {
			return IPv6Addr{}, IPv6WildCard{}, err
		}
		wc, err := ParseIPv6WildCard(maskPart)
		if err != nil {
			return IPv6Addr{}, IPv6WildCard{}, err
		}
		return host, wc, nil
	}
	if len(args) == 2 {
		host, err := ParseIPv6Address(args[0])
		if err != nil {
			return IPv6Addr{}, IPv6WildCard{}, err
		}
		wc, err := ParseIPv6WildCard(args[1])
		if err != nil {
			return IPv6Addr{}, IPv6WildCard{}, err
		}
		return host, wc, nil
	}
	return IPv6Addr{}, IPv6WildCard{}, fmt.Errorf("expected 1 or 2 arguments, got %d: %w", len(args), ErrInvalidArgument)
}

// splitHostAndMask splits a combined "host/mask" or "host mask" spelling
// into its two textual halves. CIDR form is tried first, then a single
// run of whitespace.
func splitHostAndMask(s string) (host, mask string, err error) {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '/'); idx != -1 {
		return s[:idx], s[idx:], nil
	}
	fields := strings.Fields(s)
	if len(fields) == 2 {
		return fields[0], fields[1], nil
	}
	return "", "", fmt.Errorf("standardized input %q: want \"host/mask\" or \"host mask\": %w", s, ErrInvalidArgument)
}
