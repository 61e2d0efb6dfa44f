package ipconfig_test

import (
	"context"
	"testing"

	"github.com/netkit-go/netkit/ipclassify"
	"github.com/netkit-go/netkit/ipconfig"
)

func TestIPv4HostConfig(t *testing.T) {
	t.Parallel()

	cfg, err := ipconfig.NewIPv4HostConfig("192.168.1.10/24")
	if err != nil {
		t.Fatalf("NewIPv4HostConfig: unexpected error: %v", err)
	}
	if got := cfg.NetworkID().String(); got != "192.168.1.0" {
		t.Fatalf("NetworkID = %s, want 192.168.1.0", got)
	}
	if got := cfg.BroadcastIP().String(); got != "192.168.1.255" {
		t.Fatalf("BroadcastIP = %s, want 192.168.1.255", got)
	}
	if got := cfg.TotalHosts().Int64(); got != 256 {
		t.Fatalf("TotalHosts = %d, want 256", got)
	}
	if got := cfg.UsableHosts().Int64(); got != 254 {
		t.Fatalf("UsableHosts = %d, want 254", got)
	}
	typ, err := cfg.IPType()
	if err != nil {
		t.Fatalf("IPType: unexpected error: %v", err)
	}
	if typ != ipclassify.IPv4Private {
		t.Fatalf("IPType = %v, want Private", typ)
	}
}

func TestIPv4HostConfigUsableHostsEdgeCases(t *testing.T) {
	t.Parallel()

	slash31, err := ipconfig.NewIPv4HostConfig("10.0.0.0/31")
	if err != nil {
		t.Fatalf("NewIPv4HostConfig /31: unexpected error: %v", err)
	}
	if got := slash31.UsableHosts().Int64(); got != 2 {
		t.Fatalf("UsableHosts(/31) = %d, want 2 (RFC 3021 point-to-point link)", got)
	}

	slash32, err := ipconfig.NewIPv4HostConfig("10.0.0.1/32")
	if err != nil {
		t.Fatalf("NewIPv4HostConfig /32: unexpected error: %v", err)
	}
	if got := slash32.UsableHosts().Int64(); got != 1 {
		t.Fatalf("UsableHosts(/32) = %d, want 1", got)
	}
}

func TestIPv4SubnetConfigFirstLastHost(t *testing.T) {
	t.Parallel()

	cfg, err := ipconfig.NewIPv4SubnetConfig("192.168.1.5/30")
	if err != nil {
		t.Fatalf("NewIPv4SubnetConfig: unexpected error: %v", err)
	}
	if got := cfg.NetworkID().String(); got != "192.168.1.4" {
		t.Fatalf("NetworkID = %s, want 192.168.1.4 (address must be normalized)", got)
	}
	first, err := cfg.FirstHost()
	if err != nil {
		t.Fatalf("FirstHost: unexpected error: %v", err)
	}
	if got := first.String(); got != "192.168.1.5" {
		t.Fatalf("FirstHost = %s, want 192.168.1.5", got)
	}
	last, err := cfg.LastHost()
	if err != nil {
		t.Fatalf("LastHost: unexpected error: %v", err)
	}
	if got := last.String(); got != "192.168.1.6" {
		t.Fatalf("LastHost = %s, want 192.168.1.6", got)
	}
}

func TestIPv4SubnetConfigDivideAndMerge(t *testing.T) {
	t.Parallel()

	cfg, err := ipconfig.NewIPv4SubnetConfig("10.0.0.0/8")
	if err != nil {
		t.Fatalf("NewIPv4SubnetConfig: unexpected error: %v", err)
	}
	parts, err := cfg.Divide(10)
	if err != nil {
		t.Fatalf("Divide: unexpected error: %v", err)
	}
	if len(parts) != 4 {
		t.Fatalf("Divide(/10) = %d subnets, want 4", len(parts))
	}

	merged, err := ipconfig.MergeIPv4Subnets(parts...)
	if err != nil {
		t.Fatalf("MergeIPv4Subnets: unexpected error: %v", err)
	}
	if merged.String() != cfg.String() {
		t.Fatalf("merged subnet = %s, want %s", merged, cfg)
	}

	if _, err := ipconfig.MergeIPv4Subnets(parts[0], parts[2]); err == nil {
		t.Fatal("MergeIPv4Subnets of non-adjacent parts: want error, got nil")
	}
}

func TestIPv4WildCardConfig(t *testing.T) {
	t.Parallel()

	a, err := ipconfig.NewIPv4SubnetConfig("192.168.1.0/24")
	if err != nil {
		t.Fatalf("NewIPv4SubnetConfig a: unexpected error: %v", err)
	}
	b, err := ipconfig.NewIPv4SubnetConfig("192.168.3.0/24")
	if err != nil {
		t.Fatalf("NewIPv4SubnetConfig b: unexpected error: %v", err)
	}
	wc, err := ipconfig.MinimumWildcardIPv4Subnets(a, b)
	if err != nil {
		t.Fatalf("MinimumWildcardIPv4Subnets: unexpected error: %v", err)
	}
	if got := wc.Addr().String(); got != "192.168.1.0" {
		t.Fatalf("wildcard addr = %s, want 192.168.1.0", got)
	}
	if got := wc.Wildcard().String(); got != "0.0.2.255" {
		t.Fatalf("wildcard mask = %s, want 0.0.2.255", got)
	}

	within, err := wc.IsWithin("192.168.3.42")
	if err != nil {
		t.Fatalf("IsWithin: unexpected error: %v", err)
	}
	if !within {
		t.Fatal("IsWithin(192.168.3.42) = false, want true")
	}
}

func TestIPv4FactoryBatch(t *testing.T) {
	t.Parallel()

	f := ipconfig.NewIPv4Factory()
	hosts, err := f.BatchHosts(context.Background(), []string{"10.0.0.1/24", "10.0.0.2/24"}, false)
	if err != nil {
		t.Fatalf("BatchHosts: unexpected error: %v", err)
	}
	if len(hosts) != 2 {
		t.Fatalf("BatchHosts len = %d, want 2", len(hosts))
	}

	dedup, err := f.BatchHosts(context.Background(), []string{"10.0.0.1/24", "10.0.0.1/24", "10.0.0.2/24"}, true)
	if err != nil {
		t.Fatalf("BatchHosts dedup: unexpected error: %v", err)
	}
	if len(dedup) != 2 {
		t.Fatalf("BatchHosts dedup len = %d, want 2", len(dedup))
	}
}

func TestIPv4FactoryRandomHostRespectsTag(t *testing.T) {
	t.Parallel()

	f := ipconfig.NewIPv4Factory()
	for i := 0; i < 20; i++ {
		cfg, err := f.RandomHost(context.Background(), ipclassify.IPv4Private)
		if err != nil {
			t.Fatalf("RandomHost: unexpected error: %v", err)
		}
		typ, err := cfg.IPType()
		if err != nil {
			t.Fatalf("IPType: unexpected error: %v", err)
		}
		if typ != ipclassify.IPv4Private {
			t.Fatalf("RandomHost(Private) classified as %v", typ)
		}
	}
}

func TestIPv4FactoryRandomHostPublicRejectionSamples(t *testing.T) {
	t.Parallel()

	f := ipconfig.NewIPv4Factory()
	cfg, err := f.RandomHost(context.Background(), ipclassify.IPv4Public)
	if err != nil {
		t.Fatalf("RandomHost: unexpected error: %v", err)
	}
	typ, err := cfg.IPType()
	if err != nil {
		t.Fatalf("IPType: unexpected error: %v", err)
	}
	if typ != ipclassify.IPv4Public {
		t.Fatalf("RandomHost(Public) classified as %v, want Public", typ)
	}
}
