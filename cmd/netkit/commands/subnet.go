package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/netkit-go/netkit/ipaddr"
	"github.com/netkit-go/netkit/ipsubnet"
)

func subnetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subnet",
		Short: "Subnet algebra: divide, merge, minimal covering wildcard",
	}

	cmd.AddCommand(subnetDivideCmd())
	cmd.AddCommand(subnetMergeCmd())
	cmd.AddCommand(subnetWildcardCmd())

	return cmd
}

func subnetDivideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "divide <network>/<prefix> <target>",
		Short: "Split a subnet into 2^(target-prefix) equal subnets",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			network, prefix, err := splitCIDR(args[0])
			if err != nil {
				return err
			}
			target, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse target prefix %q: %w", args[1], err)
			}

			if v4, err := ipaddr.ParseIPv4Address(network); err == nil {
				mask, err := ipaddr.ParseIPv4NetMask("/" + prefix)
				if err != nil {
					return fmt.Errorf("parse prefix /%s: %w", prefix, err)
				}
				nets, _, err := ipsubnet.DivideIPv4(v4, mask, target)
				if err != nil {
					return fmt.Errorf("divide: %w", err)
				}
				for _, n := range nets {
					fmt.Printf("%s/%d\n", n, target)
				}
				return nil
			}

			v6, err := ipaddr.ParseIPv6Address(network)
			if err != nil {
				return fmt.Errorf("parse %q as IPv4 or IPv6: %w", network, err)
			}
			mask, err := ipaddr.ParseIPv6NetMask("/" + prefix)
			if err != nil {
				return fmt.Errorf("parse prefix /%s: %w", prefix, err)
			}
			nets, _, err := ipsubnet.DivideIPv6(v6, mask, target)
			if err != nil {
				return fmt.Errorf("divide: %w", err)
			}
			for _, n := range nets {
				fmt.Printf("%s/%d\n", n, target)
			}
			return nil
		},
	}
}

func subnetMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <network>/<prefix>...",
		Short: "Merge two or more equal-size adjacent subnets into one supernet",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if v4nets, v4masks, ok := parseIPv4CIDRs(args); ok {
				net, mask, err := ipsubnet.MergeIPv4(v4nets, v4masks)
				if err != nil {
					return fmt.Errorf("merge: %w", err)
				}
				fmt.Printf("%s %s\n", net, mask)
				return nil
			}

			v6nets, v6masks, err := parseIPv6CIDRs(args)
			if err != nil {
				return err
			}
			net, mask, err := ipsubnet.MergeIPv6(v6nets, v6masks)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			fmt.Printf("%s %s\n", net, mask)
			return nil
		},
	}
}

func subnetWildcardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wildcard <network>/<prefix>...",
		Short: "Compute the minimal wildcard mask covering the given subnets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if v4nets, v4masks, ok := parseIPv4CIDRs(args); ok {
				addr, wc, err := ipsubnet.MinimumWildcardIPv4(v4nets, v4masks)
				if err != nil {
					return fmt.Errorf("wildcard: %w", err)
				}
				fmt.Printf("%s %s\n", addr, wc)
				return nil
			}

			v6nets, v6masks, err := parseIPv6CIDRs(args)
			if err != nil {
				return err
			}
			addr, wc, err := ipsubnet.MinimumWildcardIPv6(v6nets, v6masks)
			if err != nil {
				return fmt.Errorf("wildcard: %w", err)
			}
			fmt.Printf("%s %s\n", addr, wc)
			return nil
		},
	}
}

// parseIPv4CIDRs parses every "<network>/<prefix>" argument as IPv4. ok
// is false if any argument fails to parse as IPv4, signaling the
// caller to retry as IPv6.
func parseIPv4CIDRs(args []string) (nets []ipaddr.IPv4Addr, masks []ipaddr.IPv4NetMask, ok bool) {
	for _, arg := range args {
		network, prefix, err := splitCIDR(arg)
		if err != nil {
			return nil, nil, false
		}
		addr, err := ipaddr.ParseIPv4Address(network)
		if err != nil {
			return nil, nil, false
		}
		mask, err := ipaddr.ParseIPv4NetMask("/" + prefix)
		if err != nil {
			return nil, nil, false
		}
		nets = append(nets, addr)
		masks = append(masks, mask)
	}
	return nets, masks, true
}

// parseIPv6CIDRs parses every "<network>/<prefix>" argument as IPv6.
func parseIPv6CIDRs(args []string) ([]ipaddr.IPv6Addr, []ipaddr.IPv6NetMask, error) {
	nets := make([]ipaddr.IPv6Addr, 0, len(args))
	masks := make([]ipaddr.IPv6NetMask, 0, len(args))
	for _, arg := range args {
		network, prefix, err := splitCIDR(arg)
		if err != nil {
			return nil, nil, err
		}
		addr, err := ipaddr.ParseIPv6Address(network)
		if err != nil {
			return nil, nil, fmt.Errorf("parse %q as IPv4 or IPv6: %w", network, err)
		}
		mask, err := ipaddr.ParseIPv6NetMask("/" + prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("parse prefix /%s: %w", prefix, err)
		}
		nets = append(nets, addr)
		masks = append(masks, mask)
	}
	return nets, masks, nil
}
