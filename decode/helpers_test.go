package decode_test

import "github.com/netkit-go/netkit/ipaddr"

func parseMac(s string) ([]byte, error) {
	mac, err := ipaddr.ParseMacAddr(s)
	if err != nil {
		return nil, err
	}
	return mac.Bytes(), nil
}
