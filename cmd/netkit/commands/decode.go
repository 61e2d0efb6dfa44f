package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netkit-go/netkit/decode"
)

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file-or-hex>",
		Short: "Decode a captured link-layer frame (Ethernet/IEEE 802.3, IPv4, ICMPv4, TCP)",
		Long: "Decode reads a raw captured frame -- either a binary file or a hex " +
			"string -- and prints every layer it recognizes, from Ethernet/IEEE " +
			"802.3 down through IPv4/ICMPv4/TCP.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			buf, err := readFrame(args[0])
			if err != nil {
				return err
			}

			frame := decode.DecodeEthernet(buf)
			collector.IncDecode("ethernet")
			printFrame(frame)

			payload := frame.Payload
			isIPv4 := frame.Kind == decode.EthernetII && frame.EtherType == 0x0800
			if frame.Kind == decode.IEEE8023 && frame.HasSNAP && frame.SNAPProtocol == 0x0800 {
				isIPv4 = true
			}
			if !isIPv4 {
				return nil
			}

			ip := decode.DecodeIPv4(payload)
			collector.IncDecode("ipv4")
			printIPv4(ip)

			switch ip.Protocol {
			case decode.ProtocolICMP:
				collector.IncDecode("icmpv4")
				printICMP(ip.ICMP)
			case decode.ProtocolTCP:
				tcp := decode.DecodeTCP(ip.Payload)
				collector.IncDecode("tcp")
				printTCP(tcp)
			}

			return nil
		},
	}
}

// readFrame loads the raw frame either from a file path or, if the
// argument decodes cleanly as hex, from the hex string itself.
func readFrame(arg string) ([]byte, error) {
	if buf, err := hex.DecodeString(strings.TrimSpace(arg)); err == nil && len(arg) > 0 {
		return buf, nil
	}
	buf, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", arg, err)
	}
	return buf, nil
}

func printFrame(f *decode.Frame) {
	fmt.Printf("Ethernet: %s -> %s kind=%s\n", f.Src, f.Dst, f.Kind)
	switch f.Kind {
	case decode.EthernetII:
		fmt.Printf("  EtherType=%#04x\n", f.EtherType)
	case decode.IEEE8023:
		fmt.Printf("  Length=%#04x LLC=%02x/%02x/%02x SNAP=%v\n",
			f.Length, f.DSAP, f.SSAP, f.Control, f.HasSNAP)
	}
}

func printIPv4(p *decode.IPv4Packet) {
	fmt.Printf("IPv4: %s -> %s proto=%d ttl=%d len=%d\n", p.Src, p.Dst, p.Protocol, p.TTL, p.TotalLen)
}

func printICMP(m *decode.ICMPv4Packet) {
	if m == nil {
		return
	}
	fmt.Printf("ICMPv4: type=%d code=%d id=%d seq=%d\n", m.Type, m.Code, m.Identifier, m.Sequence)
}

func printTCP(s *decode.TCPSegment) {
	fmt.Printf("TCP: %d -> %d seq=%d ack=%d flags=%+v options=%d\n",
		s.SrcPort, s.DstPort, s.Seq, s.Ack, s.Flags, len(s.Options))
}
