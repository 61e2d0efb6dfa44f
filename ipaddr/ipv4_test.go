package ipaddr_test

import (
	"testing"

	"github.com/netkit-go/netkit/ipaddr"
)

func TestParseIPv4Address(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{name: "dotted decimal", input: "192.168.1.1", want: "192.168.1.1"},
		{name: "bytes", input: []byte{10, 0, 0, 1}, want: "10.0.0.1"},
		{name: "array", input: [4]byte{172, 16, 0, 1}, want: "172.16.0.1"},
		{name: "uint32", input: uint32(0x01020304), want: "1.2.3.4"},
		{name: "too many octets", input: "1.2.3.4.5", wantErr: true},
		{name: "octet overflow", input: "1.2.3.256", wantErr: true},
		{name: "unsupported type", input: 3.14, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ipaddr.ParseIPv4Address(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseIPv4Address(%v): want error, got nil", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIPv4Address(%v): unexpected error: %v", tc.input, err)
			}
			if got.String() != tc.want {
				t.Fatalf("ParseIPv4Address(%v) = %q, want %q", tc.input, got.String(), tc.want)
			}
		})
	}
}

func TestIPv4NetMaskContiguity(t *testing.T) {
	t.Parallel()

	if _, err := ipaddr.ParseIPv4NetMask("255.255.0.255"); err == nil {
		t.Fatal("non-contiguous netmask: want error, got nil")
	}

	m, err := ipaddr.ParseIPv4NetMask("/24")
	if err != nil {
		t.Fatalf("ParseIPv4NetMask(/24): unexpected error: %v", err)
	}
	if m.String() != "255.255.255.0" {
		t.Fatalf("ParseIPv4NetMask(/24) = %q, want 255.255.255.0", m.String())
	}
	if m.MaskSize() != 24 {
		t.Fatalf("MaskSize() = %d, want 24", m.MaskSize())
	}
}

func TestIPv4WildCardAllowsNonContiguous(t *testing.T) {
	t.Parallel()

	wc, err := ipaddr.ParseIPv4WildCard("0.0.248.255")
	if err != nil {
		t.Fatalf("ParseIPv4WildCard: unexpected error: %v", err)
	}
	if wc.MaskSize() != 13 {
		t.Fatalf("MaskSize() = %d, want 13", wc.MaskSize())
	}
}

func TestIPv4BroadcastDerivation(t *testing.T) {
	t.Parallel()

	addr, err := ipaddr.ParseIPv4Address("192.168.1.37")
	if err != nil {
		t.Fatalf("ParseIPv4Address: unexpected error: %v", err)
	}
	mask, err := ipaddr.ParseIPv4NetMask("/24")
	if err != nil {
		t.Fatalf("ParseIPv4NetMask: unexpected error: %v", err)
	}
	network := addr.And(mask)
	broadcast := network.Or(mask.Not())
	if network.String() != "192.168.1.0" {
		t.Fatalf("network = %q, want 192.168.1.0", network.String())
	}
	if broadcast.String() != "192.168.1.255" {
		t.Fatalf("broadcast = %q, want 192.168.1.255", broadcast.String())
	}
}
