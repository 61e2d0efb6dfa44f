package ipconfig_test

import (
	"context"
	"testing"

	"github.com/netkit-go/netkit/ipclassify"
	"github.com/netkit-go/netkit/ipconfig"
)

func TestIPv6HostConfig(t *testing.T) {
	t.Parallel()

	cfg, err := ipconfig.NewIPv6HostConfig("2001:db8::1/32")
	if err != nil {
		t.Fatalf("NewIPv6HostConfig: unexpected error: %v", err)
	}
	if got := cfg.NetworkID().String(); got != "2001:DB8::" {
		t.Fatalf("NetworkID = %s, want 2001:DB8::", got)
	}
	typ, err := cfg.IPType()
	if err != nil {
		t.Fatalf("IPType: unexpected error: %v", err)
	}
	if typ != ipclassify.IPv6Documentation {
		t.Fatalf("IPType = %v, want Documentation", typ)
	}
}

func TestIPv6SubnetConfigFirstLastHost(t *testing.T) {
	t.Parallel()

	cfg, err := ipconfig.NewIPv6SubnetConfig("2001:db8::/126")
	if err != nil {
		t.Fatalf("NewIPv6SubnetConfig: unexpected error: %v", err)
	}
	first, err := cfg.FirstHost()
	if err != nil {
		t.Fatalf("FirstHost: unexpected error: %v", err)
	}
	if got := first.String(); got != "2001:DB8::" {
		t.Fatalf("FirstHost = %s, want 2001:DB8::", got)
	}
	last, err := cfg.LastHost()
	if err != nil {
		t.Fatalf("LastHost: unexpected error: %v", err)
	}
	if got := last.String(); got != "2001:DB8::3" {
		t.Fatalf("LastHost = %s, want 2001:DB8::3", got)
	}
}

func TestIPv6FactoryRandomHostRespectsTag(t *testing.T) {
	t.Parallel()

	f := ipconfig.NewIPv6Factory()
	for i := 0; i < 10; i++ {
		cfg, err := f.RandomHost(context.Background(), ipclassify.IPv6LinkLocal)
		if err != nil {
			t.Fatalf("RandomHost: unexpected error: %v", err)
		}
		typ, err := cfg.IPType()
		if err != nil {
			t.Fatalf("IPType: unexpected error: %v", err)
		}
		if typ != ipclassify.IPv6LinkLocal {
			t.Fatalf("RandomHost(LinkLocal) classified as %v", typ)
		}
	}
}

func TestIPv6WildCardConfig(t *testing.T) {
	t.Parallel()

	a, err := ipconfig.NewIPv6SubnetConfig("2001:db8:1::/48")
	if err != nil {
		t.Fatalf("NewIPv6SubnetConfig a: unexpected error: %v", err)
	}
	b, err := ipconfig.NewIPv6SubnetConfig("2001:db8:3::/48")
	if err != nil {
		t.Fatalf("NewIPv6SubnetConfig b: unexpected error: %v", err)
	}
	wc, err := ipconfig.MinimumWildcardIPv6Subnets(a, b)
	if err != nil {
		t.Fatalf("MinimumWildcardIPv6Subnets: unexpected error: %v", err)
	}
	within, err := wc.IsWithin("2001:db8:3::1")
	if err != nil {
		t.Fatalf("IsWithin: unexpected error: %v", err)
	}
	if !within {
		t.Fatal("IsWithin(2001:db8:3::1) = false, want true")
	}
}
