package ipaddr_test

import (
	"testing"

	"github.com/netkit-go/netkit/ipaddr"
)

func TestStandardizeIPv4Subnet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []any
		wantHost    string
		wantMaskLen int
		wantErr     bool
	}{
		{name: "cidr form", args: []any{"192.168.1.10/24"}, wantHost: "192.168.1.10", wantMaskLen: 24},
		{name: "space-separated dotted mask", args: []any{"192.168.1.10 255.255.255.0"}, wantHost: "192.168.1.10", wantMaskLen: 24},
		{name: "two-value form", args: []any{"10.0.0.1", "/8"}, wantHost: "10.0.0.1", wantMaskLen: 8},
		{name: "no separator", args: []any{"10.0.0.1"}, wantErr: true},
		{name: "wrong arity", args: []any{"a", "b", "c"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			host, mask, err := ipaddr.StandardizeIPv4Subnet(tc.args...)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("StandardizeIPv4Subnet(%v): want error, got nil", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("StandardizeIPv4Subnet(%v): unexpected error: %v", tc.args, err)
			}
			if host.String() != tc.wantHost {
				t.Fatalf("host = %s, want %s", host, tc.wantHost)
			}
			if mask.MaskSize() != tc.wantMaskLen {
				t.Fatalf("mask size = %d, want %d", mask.MaskSize(), tc.wantMaskLen)
			}
		})
	}
}

func TestStandardizeIPv4Wildcard(t *testing.T) {
	t.Parallel()

	host, wc, err := ipaddr.StandardizeIPv4Wildcard("192.168.1.0 0.0.0.255")
	if err != nil {
		t.Fatalf("StandardizeIPv4Wildcard: unexpected error: %v", err)
	}
	if host.String() != "192.168.1.0" {
		t.Fatalf("host = %s, want 192.168.1.0", host)
	}
	if wc.MaskSize() != 8 {
		t.Fatalf("wildcard mask size = %d, want 8", wc.MaskSize())
	}
}

func TestStandardizeIPv6Subnet(t *testing.T) {
	t.Parallel()

	host, mask, err := ipaddr.StandardizeIPv6Subnet("2001:db8::1/32")
	if err != nil {
		t.Fatalf("StandardizeIPv6Subnet: unexpected error: %v", err)
	}
	if mask.MaskSize() != 32 {
		t.Fatalf("mask size = %d, want 32", mask.MaskSize())
	}
	if host.String() != "2001:DB8::1" {
		t.Fatalf("host = %s, want 2001:DB8::1", host)
	}
}

func TestStandardizeIPv6Wildcard(t *testing.T) {
	t.Parallel()

	wantHost, err := ipaddr.ParseIPv6Address("2001:db8::1")
	if err != nil {
		t.Fatalf("ParseIPv6Address: unexpected error: %v", err)
	}
	wantWC, err := ipaddr.ParseIPv6WildCard("::ff")
	if err != nil {
		t.Fatalf("ParseIPv6WildCard: unexpected error: %v", err)
	}

	host, wc, err := ipaddr.StandardizeIPv6Wildcard(wantHost, wantWC)
	if err != nil {
		t.Fatalf("StandardizeIPv6Wildcard: unexpected error: %v", err)
	}
	if host.String() != "2001:DB8::1" {
		t.Fatalf("host = %s, want 2001:DB8::1", host)
	}
	if wc.MaskSize() != 8 {
		t.Fatalf("wildcard mask size = %d, want 8", wc.MaskSize())
	}
}
