package oui_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/netkit-go/netkit/ipaddr"
	"github.com/netkit-go/netkit/oui"
)

const sampleCSV = `Registry,Assignment,Organization Name,Organization Address
MA-L,08BFB8,ASUSTEK COMPUTER INC.,"No.15,Lide Rd., Beitou"
MA-M,70B3D57,Some Company,Somewhere
IAB,0050C2100,IEEE REGISTRATION AUTHORITY,Piscataway NJ
`

func TestParseCSV(t *testing.T) {
	t.Parallel()

	records, skipped, err := oui.ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	maL := records[0]
	if maL.OUIID != "08BFB8" {
		t.Fatalf("OUIID = %s, want 08BFB8", maL.OUIID)
	}
	if maL.StartHex != "08BFB8000000" || maL.EndHex != "08BFB8FFFFFF" {
		t.Fatalf("MA-L range = %s-%s, want 08BFB8000000-08BFB8FFFFFF", maL.StartHex, maL.EndHex)
	}
	if maL.Type != oui.MA_L {
		t.Fatalf("Type = %v, want MA-L", maL.Type)
	}
}

const sampleTXT = `
IAB Range

00-50-C2   (hex)		IEEE REGISTRATION AUTHORITY
0050C2100-0050C2100    (base 16)		IEEE REGISTRATION AUTHORITY
			Piscataway NJ 08854
			UNITED STATES

OUI/MA-L

08-BF-B8   (hex)		ASUSTek COMPUTER INC.
08BFB8     (base 16)		ASUSTek COMPUTER INC.
			4F., No. 150, Li-Te Rd.
			Taipei 11259
			TAIWAN
`

func TestParseTXT(t *testing.T) {
	t.Parallel()

	records, skipped, err := oui.ParseTXT(strings.NewReader(sampleTXT))
	if err != nil {
		t.Fatalf("ParseTXT: unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	iab := records[0]
	if iab.Type != oui.IAB {
		t.Fatalf("Type = %v, want IAB", iab.Type)
	}
	if iab.OUIID != "0050C2" {
		t.Fatalf("OUIID = %s, want 0050C2", iab.OUIID)
	}

	maL := records[1]
	if maL.StartHex != "08BFB8000000" || maL.EndHex != "08BFB8FFFFFF" {
		t.Fatalf("MA-L range = %s-%s, want full OUI span", maL.StartHex, maL.EndHex)
	}
	if maL.Organization != "ASUSTek COMPUTER INC." {
		t.Fatalf("Organization = %q, want ASUSTek COMPUTER INC.", maL.Organization)
	}
}

func TestStoreUpsertAndLookup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "oui.gob")

	store, err := oui.Open(path)
	if err != nil {
		t.Fatalf("Open: unexpected error: %v", err)
	}

	records, _, err := oui.ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: unexpected error: %v", err)
	}

	inserted, updated, err := store.BatchUpsert(records)
	if err != nil {
		t.Fatalf("BatchUpsert: unexpected error: %v", err)
	}
	if inserted != 3 || updated != 0 {
		t.Fatalf("BatchUpsert = (%d, %d), want (3, 0)", inserted, updated)
	}

	// Reloading is idempotent: the same records upsert as all-updated.
	inserted, updated, err = store.BatchUpsert(records)
	if err != nil {
		t.Fatalf("BatchUpsert (reload): unexpected error: %v", err)
	}
	if inserted != 0 || updated != 3 {
		t.Fatalf("BatchUpsert (reload) = (%d, %d), want (0, 3)", inserted, updated)
	}

	mac, err := ipaddr.ParseMacAddr("08:BF:B8:34:C6:A4")
	if err != nil {
		t.Fatalf("ParseMacAddr: unexpected error: %v", err)
	}
	hits := store.Lookup(mac)
	if len(hits) != 1 {
		t.Fatalf("Lookup(08:BF:B8:34:C6:A4) = %d hits, want 1", len(hits))
	}
	if hits[0].Organization != "ASUSTEK COMPUTER INC." {
		t.Fatalf("Organization = %q, want ASUSTEK COMPUTER INC.", hits[0].Organization)
	}

	miss, err := ipaddr.ParseMacAddr("AA:BB:CC:DD:EE:FF")
	if err != nil {
		t.Fatalf("ParseMacAddr: unexpected error: %v", err)
	}
	if got := store.Lookup(miss); got != nil {
		t.Fatalf("Lookup(AA:BB:CC:DD:EE:FF) = %v, want nil", got)
	}

	// A fresh Open of the same path must see the persisted rows.
	reopened, err := oui.Open(path)
	if err != nil {
		t.Fatalf("reopen: unexpected error: %v", err)
	}
	if reopened.Len() != 3 {
		t.Fatalf("reopened.Len() = %d, want 3", reopened.Len())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store file missing: %v", err)
	}
}

func TestStoreLookupOverlappingRanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := oui.Open(filepath.Join(dir, "oui.gob"))
	if err != nil {
		t.Fatalf("Open: unexpected error: %v", err)
	}

	maL, _, err := oui.ParseCSV(strings.NewReader("Registry,Assignment,Organization Name,Organization Address\nMA-L,08BFB8,Wide Org,Addr\n"))
	if err != nil {
		t.Fatalf("ParseCSV MA-L: unexpected error: %v", err)
	}
	iab, _, err := oui.ParseCSV(strings.NewReader("Registry,Assignment,Organization Name,Organization Address\nIAB,08BFB8100,Narrow Org,Addr\n"))
	if err != nil {
		t.Fatalf("ParseCSV IAB: unexpected error: %v", err)
	}

	if _, _, err := store.BatchUpsert(append(maL, iab...)); err != nil {
		t.Fatalf("BatchUpsert: unexpected error: %v", err)
	}

	mac, err := ipaddr.ParseMacAddr("08:BF:B8:10:00:05")
	if err != nil {
		t.Fatalf("ParseMacAddr: unexpected error: %v", err)
	}
	hits := store.Lookup(mac)
	if len(hits) != 2 {
		t.Fatalf("Lookup = %d hits, want 2 (both the MA-L superset and the nested IAB block)", len(hits))
	}
}
