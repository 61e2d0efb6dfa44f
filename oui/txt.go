package oui

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// txtSectionMarkers maps a section header line (spec §6) to the
// registry type whose records follow it, until the next marker.
var txtSectionMarkers = map[string]Type{
	"IAB Range":          IAB,
	"OUI-36/MA-S Range":  MA_S,
	"OUI-28/MA-M Range":  MA_M,
	"OUI/MA-L":           MA_L,
	"CID":                CID,
}

// hexLineRe matches the first line of a TXT record: the dash-delimited
// 3-byte OUI in hex, the "(hex)" marker, and the organization name.
var hexLineRe = regexp.MustCompile(`^([0-9A-Fa-f]{2}-[0-9A-Fa-f]{2}-[0-9A-Fa-f]{2})\s+\(hex\)\s*(.*)$`)

// rangeLineRe matches the second line: either a dash-separated
// start-end hex range (IAB/MA-S/MA-M) or a single hex identifier
// (MA-L/CID), followed by the "(base 16)" marker and organization.
var rangeLineRe = regexp.MustCompile(`^([0-9A-Fa-f]+)(?:-([0-9A-Fa-f]+))?\s+\(base 16\)\s*(.*)$`)

// ParseTXT decodes one IEEE OUI TXT distribution (spec §6). Records
// that fail to parse are skipped and counted rather than aborting the
// file, mirroring ParseCSV.
func ParseTXT(r io.Reader) (records []Record, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentType Type
	var pendingHex, pendingOrg string
	haveHex := false

	flush := func(rangeLine string) {
		if !haveHex {
			return
		}
		rec, ok := parseTXTRecord(currentType, pendingHex, pendingOrg, rangeLine)
		haveHex = false
		if !ok {
			skipped++
			return
		}
		records = append(records, rec)
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if typ, ok := txtSectionMarkers[trimmed]; ok {
			currentType = typ
			continue
		}

		if trimmed == "" {
			continue
		}

		if m := hexLineRe.FindStringSubmatch(trimmed); m != nil {
			pendingHex, pendingOrg = m[1], m[2]
			haveHex = true
			continue
		}

		if haveHex && rangeLineRe.MatchString(trimmed) {
			flush(trimmed)
			continue
		}

		// Address continuation line (1-3 lines); ignored for Record
		// fields other than the first, which ParseTXT does not carry
		// forward (spec's Record.Address is populated from the CSV
		// form; the TXT form's free-text address lines are not part
		// of the fixed schema).
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read OUI TXT: %w", err)
	}

	return records, skipped, nil
}

func parseTXTRecord(typ Type, hexLine, org, rangeLine string) (Record, bool) {
	if typ == Undefined {
		return Record{}, false
	}
	m := rangeLineRe.FindStringSubmatch(rangeLine)
	if m == nil {
		return Record{}, false
	}

	ouiID := strings.ToUpper(strings.ReplaceAll(hexLine, "-", ""))
	if len(ouiID) != 6 {
		return Record{}, false
	}

	var startHex, endHex string
	var startDecimal, endDecimal uint64
	var err error
	if m[2] != "" {
		// Dash-separated start-end range (IAB/MA-S/MA-M).
		startHex, endHex, startDecimal, endDecimal, err = rangeToFullHex(m[1], m[2])
	} else {
		// Single identifier implies the full OUI range (MA-L/CID).
		startHex, endHex, startDecimal, endDecimal, err = rangeToFullHex(ouiID, ouiID)
	}
	if err != nil {
		return Record{}, false
	}

	organization := org
	if m[3] != "" {
		organization = strings.TrimSpace(m[3])
	}

	return Record{
		OUIID:        ouiID,
		StartHex:     startHex,
		EndHex:       endHex,
		StartDecimal: startDecimal,
		EndDecimal:   endDecimal,
		BlockSize:    typ.blockSize(),
		Type:         typ,
		Organization: strings.TrimSpace(organization),
	}, true
}
