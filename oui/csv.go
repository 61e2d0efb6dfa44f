package oui

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvRegistryNames maps the CSV "Registry" column's spelling (spec §6)
// to a Type.
var csvRegistryNames = map[string]Type{
	"IAB":   IAB,
	"MA-S":  MA_S,
	"MA-M":  MA_M,
	"MA-L":  MA_L,
	"CID":   CID,
}

// ParseCSV decodes one IEEE OUI CSV distribution: columns Registry,
// Assignment, Organization Name, Organization Address (spec §6). A
// malformed row is skipped and counted in skipped rather than aborting
// the whole file (spec §7: "OUI ingestion errors on a malformed record
// skip that record; the loader records the count but continues").
func ParseCSV(r io.Reader) (records []Record, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read OUI CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}

	start := 0
	if looksLikeHeader(rows[0]) {
		start = 1
	}

	for _, row := range rows[start:] {
		rec, ok := parseCSVRow(row)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func looksLikeHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "Registry")
}

func parseCSVRow(row []string) (Record, bool) {
	if len(row) < 4 {
		return Record{}, false
	}
	typ, ok := csvRegistryNames[strings.ToUpper(strings.TrimSpace(row[0]))]
	if !ok {
		return Record{}, false
	}
	assignment := strings.ReplaceAll(strings.TrimSpace(row[1]), "-", "")
	organization := strings.TrimSpace(row[2])
	address := strings.TrimSpace(row[3])

	if len(assignment) != typ.assignmentHexDigits() {
		return Record{}, false
	}

	ouiID, startHex, endHex, startDecimal, endDecimal, err := assignmentToRange(assignment)
	if err != nil {
		return Record{}, false
	}

	return Record{
		OUIID:        ouiID,
		StartHex:     startHex,
		EndHex:       endHex,
		StartDecimal: startDecimal,
		EndDecimal:   endDecimal,
		BlockSize:    typ.blockSize(),
		Type:         typ,
		Organization: organization,
		Address:      address,
	}, true
}
