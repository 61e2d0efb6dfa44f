package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netkit-go/netkit/ipaddr"
	"github.com/netkit-go/netkit/ipclassify"
)

// errMalformedCIDR indicates a "<network>/<prefix>" argument could not
// be split into its two parts.
var errMalformedCIDR = errors.New("expected <network>/<prefix>")

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify an address or subnet under IANA special-purpose registries",
	}

	cmd.AddCommand(classifyHostCmd())
	cmd.AddCommand(classifySubnetCmd())

	return cmd
}

func classifyHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "host <address>",
		Short: "Classify a single IPv4 or IPv6 host address",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			addr := args[0]

			if v4, err := ipaddr.ParseIPv4Address(addr); err == nil {
				typ, err := ipclassify.ClassifyIPv4Host(v4)
				if err != nil {
					return fmt.Errorf("classify %s: %w", addr, err)
				}
				fmt.Printf("%s: %s\n", addr, typ)
				return nil
			}

			v6, err := ipaddr.ParseIPv6Address(addr)
			if err != nil {
				return fmt.Errorf("parse %q as IPv4 or IPv6: %w", addr, err)
			}
			typ, err := ipclassify.ClassifyIPv6Host(v6)
			if err != nil {
				return fmt.Errorf("classify %s: %w", addr, err)
			}
			fmt.Printf("%s: %s\n", addr, typ)
			return nil
		},
	}
}

func classifySubnetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subnet <network>/<prefix>",
		Short: "Classify an IPv4 or IPv6 subnet under IANA special-purpose registries",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			network, prefix, err := splitCIDR(args[0])
			if err != nil {
				return err
			}

			if v4, err := ipaddr.ParseIPv4Address(network); err == nil {
				mask, err := ipaddr.ParseIPv4NetMask("/" + prefix)
				if err != nil {
					return fmt.Errorf("parse prefix /%s: %w", prefix, err)
				}
				types := ipclassify.ClassifyIPv4Subnet(v4, mask)
				fmt.Printf("%s/%s: %s\n", network, prefix, joinTypes(types))
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
			types := ipclassify.ClassifyIPv6Subnet(v6, mask)
			fmt.Printf("%s/%s: %s\n", network, prefix, joinTypes(types))
			return nil
		},
	}
}

// splitCIDR splits "<network>/<prefix>" into its two parts.
func splitCIDR(s string) (network, prefix string, err error) {
	network, prefix, ok := strings.Cut(s, "/")
	if !ok || network == "" || prefix == "" {
		return "", "", fmt.Errorf("%q: %w", s, errMalformedCIDR)
	}
	return network, prefix, nil
}

func joinTypes[T fmt.Stringer](types []T) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
